package dashboard

import (
	"context"
	"fmt"
	"io"

	"land-regen/internal/models"
	"land-regen/shared/config"
)

// RunOnce fetches NDVI for the configured default coordinates, runs a
// detection on the result and writes both panels to w. Request failures
// are reported in the output the same way the dashboard shows them.
func RunOnce(ctx context.Context, cfg *config.Config, backend Backend, w io.Writer) error {
	coords := NewCoordinatePanel(ctx, backend, &cfg.Dashboard)
	lat, lon := coords.Latitude(), coords.Longitude()

	coords, _ = coords.Fetch()
	result, err := backend.FetchNDVI(ctx, lat, lon)
	coords, _ = coords.Update(ndviFetchedMsg{result: result, err: err})

	if _, err := fmt.Fprintf(w, "%s\n\nLatitude: %s\nLongitude: %s\n\n%s\n",
		headingStyle.Render("NDVI Time Series"), lat, lon, coords.body()); err != nil {
		return fmt.Errorf("failed to write NDVI panel: %w", err)
	}

	detect := NewDetectionPanel(ctx, backend)
	detect, _ = detect.Detect(lat, lon, coords.Data())
	assessment, err := backend.DetectDegradation(ctx, models.NewDegradationRequest(lat, lon, coords.Data()))
	detect, _ = detect.Update(degradationDetectedMsg{result: assessment, err: err})

	var body string
	switch {
	case detect.Err() != "":
		body = errorStyle.Render(detect.Err()) + "\n"
	case detect.Result() != nil:
		body = renderAssessment(detect.Result())
	}

	if _, err := fmt.Fprintf(w, "%s\n\n%s", headingStyle.Render("AI Soil Degradation Detection"), body); err != nil {
		return fmt.Errorf("failed to write detection panel: %w", err)
	}
	return nil
}
