package dashboard

import (
	"context"
	"log"
	"strings"

	"land-regen/internal/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrDetect is shown for any failed degradation request
const ErrDetect = "Failed to fetch AI result"

type degradationDetectedMsg struct {
	result *models.DegradationResult
	err    error
}

// DetectionPanel submits the current coordinates and series for an AI
// soil degradation assessment
type DetectionPanel struct {
	ctx     context.Context
	backend Backend

	result  *models.DegradationResult
	loading bool
	err     string

	spinner spinner.Model
}

func NewDetectionPanel(ctx context.Context, backend Backend) DetectionPanel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return DetectionPanel{
		ctx:     ctx,
		backend: backend,
		spinner: s,
	}
}

func (p DetectionPanel) Result() *models.DegradationResult { return p.result }
func (p DetectionPanel) Loading() bool { return p.loading }
func (p DetectionPanel) Err() string { return p.err }

// Detect clears any previous result and requests a new assessment. The
// coordinates are parsed here and nowhere else; bad text is sent as null.
func (p DetectionPanel) Detect(lat, lon string, data *models.NDVIResult) (DetectionPanel, tea.Cmd) {
	p.loading = true
	p.err = ""
	p.result = nil

	req := models.NewDegradationRequest(lat, lon, data)
	if req.Lat.IsNaN() || req.Lon.IsNaN() {
		log.Printf("Warning: submitting unparseable coordinates lat=%q lon=%q", lat, lon)
	}

	ctx, backend := p.ctx, p.backend
	detect := func() tea.Msg {
		result, err := backend.DetectDegradation(ctx, req)
		return degradationDetectedMsg{result: result, err: err}
	}

	return p, tea.Batch(detect, p.spinner.Tick)
}

func (p DetectionPanel) Update(msg tea.Msg) (DetectionPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case degradationDetectedMsg:
		p.loading = false
		if msg.err != nil {
			log.Printf("Degradation detection failed: %v", msg.err)
			p.err = ErrDetect
			return p, nil
		}
		p.result = msg.result
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

func (p DetectionPanel) View(focused bool) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("AI Soil Degradation Detection"))
	b.WriteString("\n\n")
	b.WriteString(renderButton("Detect Soil Degradation", focused))
	b.WriteString("\n")

	if p.loading {
		b.WriteString("\n" + p.spinner.View() + " Analyzing...\n")
	}
	if p.err != "" {
		b.WriteString("\n" + errorStyle.Render(p.err) + "\n")
	}
	if p.result != nil {
		b.WriteString("\n" + renderAssessment(p.result))
	}
	return b.String()
}

func renderAssessment(r *models.DegradationResult) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Score") + models.FormatScore(r.DegradationScore) + "\n")
	b.WriteString(labelStyle.Render("Status") + statusStyle(r.Status).Render(r.Status) + "\n")
	b.WriteString(labelStyle.Render("Advice") + r.Recommendation + "\n")
	return b.String()
}
