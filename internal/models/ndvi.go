package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NDVIResult is the body returned by the NASA Earthdata endpoint.
// Raw is kept verbatim so unrecognized shapes can still be shown.
type NDVIResult struct {
	Raw       json.RawMessage `json:"-"`
	Dates     []string        `json:"dates"`
	NDVI      []float64       `json:"ndvi"`
	Message   string          `json:"message,omitempty"`
	HasSeries bool            `json:"-"`
}

// SeriesEntry is one index-aligned (date, value) pair
type SeriesEntry struct {
	Date  string
	Value float64
}

// ParseNDVIResult accepts any valid JSON document. Only an object with a
// numeric "ndvi" array is treated as a vegetation series.
func ParseNDVIResult(body []byte) (*NDVIResult, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	result := &NDVIResult{Raw: json.RawMessage(bytes.TrimSpace(body))}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Valid JSON but not an object (array, string, number...)
		return result, nil
	}

	if raw, ok := fields["ndvi"]; ok {
		var values []float64
		if err := json.Unmarshal(raw, &values); err == nil && values != nil {
			result.NDVI = values
			result.HasSeries = true
		}
	}
	if raw, ok := fields["dates"]; ok {
		var dates []string
		if err := json.Unmarshal(raw, &dates); err == nil {
			result.Dates = dates
		}
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &result.Message)
	}

	return result, nil
}

// Values returns the series values, or an empty slice when there is no
// result or it carries no series.
func (r *NDVIResult) Values() []float64 {
	if r == nil || !r.HasSeries || len(r.NDVI) == 0 {
		return []float64{}
	}
	return r.NDVI
}

// Entries pairs every ndvi value with the date at the same index.
// A missing date yields an empty label and surplus dates are ignored.
func (r *NDVIResult) Entries() []SeriesEntry {
	values := r.Values()
	entries := make([]SeriesEntry, len(values))
	for i, v := range values {
		entries[i].Value = v
		if i < len(r.Dates) {
			entries[i].Date = r.Dates[i]
		}
	}
	return entries
}

// Aligned reports whether dates and ndvi have the same length
func (r *NDVIResult) Aligned() bool {
	return r != nil && len(r.Dates) == len(r.NDVI)
}

// Pretty returns the raw body indented for display
func (r *NDVIResult) Pretty() string {
	if r == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
		return string(r.Raw)
	}
	return buf.String()
}
