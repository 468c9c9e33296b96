package display

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/internal/model"
	"github.com/xketsu/weather-app/internal/weather"
)

var titleCaser = cases.Title(language.English)

// Temperature renders the metric temperature, one decimal, degree sign.
func Temperature(r *model.WeatherResult) string {
	return fmt.Sprintf("%.1f°C", r.Temperature)
}

// Description renders the provider's free-text description title-cased.
func Description(r *model.WeatherResult) string {
	return titleCaser.String(r.Description)
}

// Render writes the display fields of one lookup: confirmed city,
// temperature, condition icon, description.
func Render(w io.Writer, r *model.WeatherResult) {
	if r.City != "" {
		fmt.Fprintln(w, r.City)
	}
	fmt.Fprintln(w, Temperature(r))
	fmt.Fprintln(w, r.Emoji())
	if r.Description != "" {
		fmt.Fprintln(w, Description(r))
	}
}

// ErrorMessage translates a lookup error into the user-readable message
// shown in place of the weather fields. Every lookup error has a message;
// none crashes the app.
func ErrorMessage(err error) string {
	var statusErr *weather.StatusError
	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		return "Please enter a city name."
	case errors.Is(err, weather.ErrCityNotFound):
		return "City not found."
	case errors.Is(err, weather.ErrUnauthorized):
		return "Unauthorized. Please check your API key."
	case errors.Is(err, config.ErrAPIKeyMissing):
		return "API key not found. Please set " + config.APIKeyEnv + " in your environment or .env file."
	case errors.Is(err, weather.ErrMalformedResponse):
		return "Unable to read the weather service response."
	case errors.Is(err, weather.ErrNetwork):
		return "Unable to connect to the weather service. Please check your internet connection."
	case errors.As(err, &statusErr):
		return statusMessage(statusErr.Code)
	}
	return "Unable to retrieve weather data."
}

func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad request. Please check the city name."
	case http.StatusForbidden:
		return "Forbidden. You don't have permission to access this resource."
	case http.StatusInternalServerError:
		return "Internal server error. Please try again later."
	case http.StatusBadGateway:
		return "Bad gateway. Please try again later."
	case http.StatusServiceUnavailable:
		return "Service unavailable. Please try again later."
	case http.StatusGatewayTimeout:
		return "Gateway timeout. Please try again later."
	}
	return fmt.Sprintf("An unexpected error occurred. Status code: %d", code)
}
