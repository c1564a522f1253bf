package weather

import (
	"strings"
	"testing"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		icon     string
		expected string
	}{
		{icon: "01d", expected: "☀️"},
		{icon: "01n", expected: "🌙"},
		{icon: "02d", expected: "⛅️"},
		{icon: "04n", expected: "☁️"},
		{icon: "10d", expected: "🌦"},
		{icon: "11n", expected: "⛈"},
		{icon: "50d", expected: "🌫"},
		{icon: "zz", expected: ""},
		{icon: "", expected: ""},
		{icon: "01D", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.icon, func(t *testing.T) {
			if got := Glyph(tt.icon); got != tt.expected {
				t.Errorf("Glyph(%q) = %q, want %q", tt.icon, got, tt.expected)
			}
		})
	}
}

func TestGlyphTableCoversDayAndNight(t *testing.T) {
	for _, code := range []string{"01", "02", "03", "04", "09", "10", "11", "13", "50"} {
		for _, suffix := range []string{"d", "n"} {
			if Glyph(code+suffix) == "" {
				t.Errorf("missing glyph for %s%s", code, suffix)
			}
		}
	}
	if len(glyphs) != 18 {
		t.Errorf("expected 18 icon codes, got %d", len(glyphs))
	}
}

func TestFormatCelsius(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "whole number", value: 15, expected: "15.0"},
		{name: "zero", value: 0, expected: "0.0"},
		{name: "two decimals", value: 15.27, expected: "15.27"},
		{name: "negative", value: -3.5, expected: "-3.5"},
		{name: "negative whole", value: -10, expected: "-10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCelsius(tt.value); got != tt.expected {
				t.Errorf("formatCelsius(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestReportRender(t *testing.T) {
	r := &Report{
		Observation: Observation{
			City:        "London",
			Country:     "GB",
			Temperature: 15,
			FeelsLike:   14.6,
			Description: "clear sky",
			Icon:        "01d",
		},
		Glyph: "☀️",
	}

	out := r.Render()

	bannerText := banner("London")
	if bannerText == "" {
		t.Fatal("expected a non-empty banner")
	}
	if !strings.HasPrefix(out, bannerText) {
		t.Errorf("expected output to start with the banner, got:\n%s", out)
	}

	tail := strings.TrimPrefix(out, bannerText)
	expected := ", GB\n\n☀️ clear sky\nTemperature: 15.0°C\nFeels like: 14.6°C\n"
	if tail != expected {
		t.Errorf("expected report body %q, got %q", expected, tail)
	}
}

func TestReportRenderUnknownIcon(t *testing.T) {
	r := &Report{
		Observation: Observation{City: "Oslo", Country: "NO", Temperature: -2, FeelsLike: -7.25, Description: "haze", Icon: "zz"},
		Glyph:       Glyph("zz"),
	}

	out := r.Render()
	if !strings.Contains(out, "\n haze\n") {
		t.Errorf("expected empty glyph before description, got:\n%s", out)
	}
	if !strings.Contains(out, "Feels like: -7.25°C") {
		t.Errorf("expected feels like line, got:\n%s", out)
	}
}
