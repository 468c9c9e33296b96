package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/internal/model"
	"github.com/xketsu/weather-app/pkg/logger"
)

// Sentinel errors for the lookup outcomes. Callers match them with errors.Is
// and translate them into user-facing messages.
var (
	ErrEmptyCity         = errors.New("city name is empty")
	ErrCityNotFound      = errors.New("city not found")
	ErrUnauthorized      = errors.New("unauthorized: invalid API key")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// StatusError reports a provider status code outside the mapped set
// (404 and 401 have their own sentinels).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.Code)
}

// Client fetches current weather for a city from the provider. Each Fetch
// is one synchronous GET: no retries, no caching, no shared state between
// calls.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient builds a provider client. A nil httpClient gets a default one
// bounded by the configured timeout.
func NewClient(cfg config.ProviderConfig, apiKey string, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     apiKey,
		units:      cfg.Units,
		httpClient: httpClient,
		log:        log,
	}
}

// Fetch performs one lookup for the given city. The city name is trimmed;
// an empty result rejects the call before any request is made.
func (c *Client) Fetch(ctx context.Context, city string) (*model.WeatherResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}
	if c.apiKey == "" {
		return nil, config.ErrAPIKeyMissing
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	reqURL := c.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("provider request failed", "city", city, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCityNotFound
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return resultFrom(&data)
}

// resultFrom validates the decoded payload and maps it into a WeatherResult.
// Any missing expected field fails fast instead of surfacing zero values.
func resultFrom(data *model.OpenWeatherMapResponse) (*model.WeatherResult, error) {
	if data.Main == nil || data.Main.Temp == nil {
		return nil, fmt.Errorf("%w: missing main.temp", ErrMalformedResponse)
	}
	if len(data.Weather) == 0 || data.Weather[0].Main == "" {
		return nil, fmt.Errorf("%w: missing weather condition", ErrMalformedResponse)
	}
	return &model.WeatherResult{
		City:        data.Name,
		Temperature: *data.Main.Temp,
		Condition:   model.ParseCondition(data.Weather[0].Main),
		ConditionID: data.Weather[0].ID,
		Description: data.Weather[0].Description,
	}, nil
}
