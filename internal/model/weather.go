package model

// Condition is a coarse weather category as reported by the provider.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionMist         Condition = "Mist"
	ConditionUnknown      Condition = "Unknown"
)

// atmosphere groups the provider's 7xx categories (fog, haze, smoke, ...)
// under a single display entry.
var atmosphere = map[string]bool{
	"Mist": true, "Smoke": true, "Haze": true, "Dust": true,
	"Fog": true, "Sand": true, "Ash": true, "Squall": true, "Tornado": true,
}

// ParseCondition maps the provider's weather[0].main string to a Condition.
// Values outside the fixed set become ConditionUnknown.
func ParseCondition(main string) Condition {
	switch main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionClouds
	case "Rain":
		return ConditionRain
	case "Drizzle":
		return ConditionDrizzle
	case "Thunderstorm":
		return ConditionThunderstorm
	case "Snow":
		return ConditionSnow
	}
	if atmosphere[main] {
		return ConditionMist
	}
	return ConditionUnknown
}

// Emoji returns the display icon for the condition category.
func (c Condition) Emoji() string {
	switch c {
	case ConditionClear:
		return "☀️"
	case ConditionClouds:
		return "⛅"
	case ConditionRain:
		return "🌧"
	case ConditionDrizzle:
		return "🌦"
	case ConditionThunderstorm:
		return "⛈️"
	case ConditionSnow:
		return "❅"
	case ConditionMist:
		return "🌫"
	}
	return "❓"
}

// EmojiForID returns the display icon for a provider condition ID.
// The provider groups IDs by hundreds: 2xx thunderstorm, 3xx drizzle,
// 5xx rain, 6xx snow, 7xx atmosphere, 800 clear, 801+ clouds.
func EmojiForID(id int) string {
	switch {
	case id >= 200 && id < 300:
		return "⛈️"
	case id >= 300 && id < 400:
		return "🌦"
	case id >= 500 && id < 600:
		return "🌧"
	case id >= 600 && id < 700:
		return "❅"
	case id >= 700 && id < 800:
		return "🌫"
	case id == 800:
		return "☀️"
	case id > 800 && id < 900:
		return "⛅"
	}
	return "❓"
}

// WeatherResult is one lookup's outcome: the confirmed city, the metric
// temperature, and the condition category. Built fresh per lookup and
// discarded after display.
type WeatherResult struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Condition   Condition `json:"condition"`
	ConditionID int       `json:"condition_id"`
	Description string    `json:"description"`
}

// Emoji returns the display icon, preferring the fine-grained condition ID
// over the coarse category when the provider supplied one.
func (r *WeatherResult) Emoji() string {
	if r.ConditionID != 0 {
		return EmojiForID(r.ConditionID)
	}
	return r.Condition.Emoji()
}
