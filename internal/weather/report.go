package weather

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/common-nighthawk/go-figure"
)

// Report is what a successful run prints.
type Report struct {
	Observation
	CityID int64
	Glyph  string
}

// Render lays out the report: a banner of the city name, the country, then
// the conditions and temperatures.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString(banner(r.City))
	fmt.Fprintf(&b, ", %s\n\n", r.Country)
	fmt.Fprintf(&b, "%s %s\n", r.Glyph, r.Description)
	fmt.Fprintf(&b, "Temperature: %s°C\n", formatCelsius(r.Temperature))
	fmt.Fprintf(&b, "Feels like: %s°C\n", formatCelsius(r.FeelsLike))
	return b.String()
}

func banner(text string) string {
	if text == "" {
		return ""
	}
	return figure.NewFigure(text, "", false).String()
}

// formatCelsius prints the shortest exact form but always keeps one decimal,
// so 15 reads "15.0" and 15.27 stays "15.27".
func formatCelsius(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
