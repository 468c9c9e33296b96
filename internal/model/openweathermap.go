package model

// OpenWeatherMapResponse mirrors the fields of the provider's current-weather
// payload that this app reads. Main.Temp is a pointer so a missing field can
// be told apart from a literal zero at the parse boundary.
type OpenWeatherMapResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  int      `json:"pressure"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}
