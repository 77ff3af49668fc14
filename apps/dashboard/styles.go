package dashboard

import (
	"land-regen/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2E7D32"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(11)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#2E7D32")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	upStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(models.ColorHex("green")))
)

// statusStyle colors a risk label per models.StatusColor
func statusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(models.ColorHex(models.StatusColor(status))))
}

func renderButton(label string, focused bool) string {
	if focused {
		return focusedButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
