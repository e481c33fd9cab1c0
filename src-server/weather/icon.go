package weather

import (
	"strings"

	"planningapp/src-server/model"
)

// OpenWeatherMap icon codes to the emoji the client renders.
var iconEmoji = map[string]string{
	"01d": "☀️", "01n": "🌙",
	"02d": "⛅", "02n": "☁️",
	"03d": "☁️", "03n": "☁️",
	"04d": "☁️", "04n": "☁️",
	"09d": "🌧️", "09n": "🌧️",
	"10d": "🌦️", "10n": "🌧️",
	"11d": "⛈️", "11n": "⛈️",
	"13d": "❄️", "13n": "❄️",
	"50d": "🌫️", "50n": "🌫️",
}

// Icon maps an OpenWeatherMap icon code to an emoji, with a mild-weather
// fallback for unknown codes.
func Icon(code string) string {
	if emoji, ok := iconEmoji[code]; ok {
		return emoji
	}
	return "🌤️"
}

// Conditions (French and English, the API answers in the requested language)
// that justify a warning on an outdoor event.
var warningConditions = []string{
	"rain", "snow", "storm", "thunderstorm", "heavy",
	"pluie", "neige", "orage", "tempête", "forte",
}

// ShouldWarn reports whether the weather warrants a warning for an outdoor
// event: bad conditions or temperatures below 0 or above 35 degrees. Indoor
// events never warn.
func ShouldWarn(info model.WeatherInfo, outdoor bool) bool {
	if !outdoor {
		return false
	}
	if info.Temperature < 0 || info.Temperature > 35 {
		return true
	}
	condition := strings.ToLower(info.Condition)
	for _, warning := range warningConditions {
		if strings.Contains(condition, warning) {
			return true
		}
	}
	return false
}
