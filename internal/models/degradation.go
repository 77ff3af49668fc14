package models

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Coordinate is a latitude or longitude sent to the AI endpoint.
// NaN and infinities are encoded as null, matching JSON.stringify.
type Coordinate float64

func (c Coordinate) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// IsNaN reports whether the coordinate text failed to parse
func (c Coordinate) IsNaN() bool {
	return math.IsNaN(float64(c))
}

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// ParseCoordinate converts free text the way a browser's parseFloat does:
// leading whitespace is skipped and the longest numeric prefix is used.
// Text without a numeric prefix yields NaN. Range is never checked.
func ParseCoordinate(text string) Coordinate {
	s := strings.TrimLeft(text, " \t\n\r\v\f")
	m := numericPrefix.FindString(s)
	if m == "" {
		return Coordinate(math.NaN())
	}

	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return Coordinate(math.Inf(-1))
		}
		return Coordinate(math.Inf(1))
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Coordinate(math.NaN())
	}
	// ErrRange still yields ±Inf or 0, which is what parseFloat returns too
	return Coordinate(f)
}

// DegradationRequest is the body posted to the soil degradation endpoint
type DegradationRequest struct {
	Lat  Coordinate `json:"lat"`
	Lon  Coordinate `json:"lon"`
	NDVI []float64  `json:"ndvi"`
}

// NewDegradationRequest builds a submission from the raw input text and
// whatever series has been fetched so far (possibly none).
func NewDegradationRequest(lat, lon string, series *NDVIResult) DegradationRequest {
	return DegradationRequest{
		Lat:  ParseCoordinate(lat),
		Lon:  ParseCoordinate(lon),
		NDVI: series.Values(),
	}
}

// DegradationResult is the qualitative risk assessment returned by the AI endpoint
type DegradationResult struct {
	DegradationScore float64 `json:"degradation_score"`
	Status           string  `json:"status"`
	Recommendation   string  `json:"recommendation"`
	Project          string  `json:"project,omitempty"`
	Message          string  `json:"message,omitempty"`
}

// Risk status labels returned by the AI endpoint
const (
	StatusLowRisk    = "Low risk"
	StatusMediumRisk = "Medium risk"
	StatusHighRisk   = "High risk"
)

// StatusColor maps a risk label to its display color name.
// Unknown labels, including the empty string, are gray.
func StatusColor(status string) string {
	switch status {
	case StatusLowRisk:
		return "green"
	case StatusMediumRisk:
		return "orange"
	case StatusHighRisk:
		return "red"
	default:
		return "gray"
	}
}

var colorHex = map[string]string{
	"green":  "#008000",
	"orange": "#FFA500",
	"red":    "#FF0000",
	"gray":   "#808080",
}

// ColorHex returns the CSS hex value of a color name from StatusColor
func ColorHex(name string) string {
	if hex, ok := colorHex[name]; ok {
		return hex
	}
	return colorHex["gray"]
}

// FormatScore renders a score with the shortest exact decimal form (0.3 -> "0.3")
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
