package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xketsu/weather-app/internal/display"
	"github.com/xketsu/weather-app/internal/model"
	"github.com/xketsu/weather-app/internal/service"
	"github.com/xketsu/weather-app/internal/weather"
	"github.com/xketsu/weather-app/pkg/logger"
)

// WeatherHandler serves GET /weather?city=<name>.
type WeatherHandler struct {
	Service service.Lookuper
	log     *logger.Logger
}

func NewWeatherHandler(svc service.Lookuper, log *logger.Logger) *WeatherHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &WeatherHandler{Service: svc, log: log}
}

func (h *WeatherHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorw("could not encode json", "error", err)
	}
}

func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse("Method not allowed"))
		return
	}

	city := r.URL.Query().Get("city")
	if city == "" {
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse("Missing 'city' query parameter"))
		return
	}

	result, err := h.Service.Lookup(r.Context(), city)
	if err != nil {
		h.log.Infow("lookup failed", "city", city, "error", err)
		h.writeJSON(w, statusFor(err), model.ErrorResponse(display.ErrorMessage(err)))
		return
	}

	h.writeJSON(w, http.StatusOK, model.Response{Data: result, Message: "Success"})
}

// statusFor maps lookup errors to response codes: the city is the client's
// input, everything about the provider is an upstream failure.
func statusFor(err error) int {
	var statusErr *weather.StatusError
	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		return http.StatusBadRequest
	case errors.Is(err, weather.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, weather.ErrUnauthorized),
		errors.Is(err, weather.ErrNetwork),
		errors.Is(err, weather.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
