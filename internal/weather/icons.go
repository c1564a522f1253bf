package weather

// glyphs maps OpenWeatherMap icon codes to terminal glyphs.
var glyphs = map[string]string{
	"01d": "☀️",
	"02d": "⛅️",
	"03d": "☁️",
	"04d": "☁️",
	"09d": "🌧",
	"10d": "🌦",
	"11d": "⛈",
	"13d": "🌨",
	"50d": "🌫",
	"01n": "🌙",
	"02n": "☁️",
	"03n": "☁️",
	"04n": "☁️",
	"09n": "🌧",
	"10n": "🌦",
	"11n": "⛈",
	"13n": "🌨",
	"50n": "🌫",
}

// Glyph returns the display glyph for an icon code, or "" if the code is unknown.
func Glyph(icon string) string {
	return glyphs[icon]
}
