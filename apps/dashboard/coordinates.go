package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"

	"land-regen/internal/models"
	"land-regen/shared/config"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrFetchNDVI is shown for any failed NDVI request
const ErrFetchNDVI = "Failed to fetch NDVI data"

// Backend is the part of the backend client the dashboard needs
type Backend interface {
	FetchNDVI(ctx context.Context, lat, lon string) (*models.NDVIResult, error)
	DetectDegradation(ctx context.Context, req models.DegradationRequest) (*models.DegradationResult, error)
}

type ndviFetchedMsg struct {
	result *models.NDVIResult
	err    error
}

// CoordinatePanel holds the coordinate inputs and the fetched NDVI series
type CoordinatePanel struct {
	ctx     context.Context
	backend Backend

	lat textinput.Model
	lon textinput.Model

	data    *models.NDVIResult
	loading bool
	err     string

	spinner     spinner.Model
	chartHeight int
}

func NewCoordinatePanel(ctx context.Context, backend Backend, cfg *config.DashboardConfig) CoordinatePanel {
	lat := textinput.New()
	lat.Placeholder = "Latitude"
	lat.SetValue(cfg.DefaultLatitude)
	lat.CharLimit = 32
	lat.Width = 20

	lon := textinput.New()
	lon.Placeholder = "Longitude"
	lon.SetValue(cfg.DefaultLongitude)
	lon.CharLimit = 32
	lon.Width = 20

	s := spinner.New()
	s.Spinner = spinner.Dot

	return CoordinatePanel{
		ctx:         ctx,
		backend:     backend,
		lat:         lat,
		lon:         lon,
		spinner:     s,
		chartHeight: cfg.ChartHeight,
	}
}

func (p CoordinatePanel) Latitude() string { return p.lat.Value() }
func (p CoordinatePanel) Longitude() string { return p.lon.Value() }
func (p CoordinatePanel) Data() *models.NDVIResult { return p.data }
func (p CoordinatePanel) Loading() bool { return p.loading }
func (p CoordinatePanel) Err() string { return p.err }

// Fetch starts an NDVI request for the current inputs. A request already in
// flight is not cancelled; whichever response arrives last is kept.
func (p CoordinatePanel) Fetch() (CoordinatePanel, tea.Cmd) {
	p.loading = true
	p.err = ""

	ctx, backend := p.ctx, p.backend
	lat, lon := p.lat.Value(), p.lon.Value()
	fetch := func() tea.Msg {
		result, err := backend.FetchNDVI(ctx, lat, lon)
		return ndviFetchedMsg{result: result, err: err}
	}

	return p, tea.Batch(fetch, p.spinner.Tick)
}

func (p CoordinatePanel) Update(msg tea.Msg) (CoordinatePanel, tea.Cmd) {
	switch msg := msg.(type) {
	case ndviFetchedMsg:
		p.loading = false
		if msg.err != nil {
			log.Printf("NDVI fetch failed: %v", msg.err)
			p.err = ErrFetchNDVI
			return p, nil
		}
		p.data = msg.result
		p.err = ""
		return p, nil

	case spinner.TickMsg:
		if !p.loading || msg.ID != p.spinner.ID() {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	return p, nil
}

// updateInput forwards key input to the focused coordinate field
func (p CoordinatePanel) updateInput(field focusField, msg tea.Msg) (CoordinatePanel, tea.Cmd) {
	var cmd tea.Cmd
	switch field {
	case focusLat:
		p.lat, cmd = p.lat.Update(msg)
	case focusLon:
		p.lon, cmd = p.lon.Update(msg)
	}
	return p, cmd
}

func (p *CoordinatePanel) setFocus(field focusField) tea.Cmd {
	p.lat.Blur()
	p.lon.Blur()
	switch field {
	case focusLat:
		return p.lat.Focus()
	case focusLon:
		return p.lon.Focus()
	}
	return nil
}

func (p CoordinatePanel) View(focused focusField) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("NDVI Time Series"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Latitude") + p.lat.View() + "\n")
	b.WriteString(labelStyle.Render("Longitude") + p.lon.View() + "\n\n")
	b.WriteString(renderButton("Fetch NDVI", focused == focusFetch))
	b.WriteString("\n")

	if body := p.body(); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	return b.String()
}

// body renders the loading, error and result states in that order
func (p CoordinatePanel) body() string {
	var b strings.Builder

	if p.loading {
		b.WriteString(p.spinner.View() + " Loading...\n")
	}
	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n")
	}
	if p.data != nil {
		b.WriteString(renderNDVI(p.data, p.chartHeight))
	}
	return b.String()
}

// renderNDVI shows the list and chart for a recognized series, otherwise
// the raw response body
func renderNDVI(data *models.NDVIResult, chartHeight int) string {
	if !data.HasSeries {
		return data.Pretty() + "\n"
	}

	var b strings.Builder
	for _, line := range SeriesLines(data) {
		b.WriteString(line + "\n")
	}

	if chart := renderChart(ChartPoints(data), chartHeight); chart != "" {
		b.WriteString("\n" + chart + "\n")
	}
	return b.String()
}

// SeriesLines formats one "date: value" line per ndvi value
func SeriesLines(data *models.NDVIResult) []string {
	entries := data.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %s", e.Date, models.FormatScore(e.Value))
	}
	return lines
}
