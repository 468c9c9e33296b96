package integrationtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/xketsu/weather-app/internal/cache"
	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/internal/handler"
	"github.com/xketsu/weather-app/internal/service"
	"github.com/xketsu/weather-app/internal/weather"
)

const (
	testAPIKey = "test_api_key"
	cacheTTL   = 10 * time.Minute
)

// canned provider payloads per city; anything else is a 404.
var providerPayloads = map[string]string{
	"Paris":  `{"main":{"temp":21.5},"weather":[{"id":800,"main":"Clear","description":"clear sky"}],"name":"Paris"}`,
	"London": `{"main":{"temp":15.2},"weather":[{"id":803,"main":"Clouds","description":"broken clouds"}],"name":"London"}`,
	"Oslo":   `{"main":{"temp":-2.0},"weather":[{"id":600,"main":"Snow","description":"light snow"}],"name":"Oslo"}`,
}

// testEnv wires the full stack against a mock provider and a miniredis:
// real client, real cache, real service, real handler.
type testEnv struct {
	server    *httptest.Server
	miniRedis *miniredis.Miniredis

	mu       sync.Mutex
	hits     map[string]int
	failCode int
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithKey(t, testAPIKey)
}

func newTestEnvWithKey(t *testing.T, apiKey string) *testEnv {
	t.Helper()

	env := &testEnv{hits: make(map[string]int)}

	provider := httptest.NewServer(http.HandlerFunc(env.serveProvider))
	t.Cleanup(provider.Close)

	env.miniRedis = miniredis.RunT(t)
	store := cache.New(env.miniRedis.Addr(), cacheTTL)
	t.Cleanup(func() { _ = store.Close() })

	client := weather.NewClient(config.ProviderConfig{
		BaseURL: provider.URL,
		Units:   "metric",
		Timeout: 5 * time.Second,
	}, apiKey, nil, nil)

	svc := service.NewLookupService(client, store, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", handler.NewWeatherHandler(svc, nil).HandleWeather)

	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)

	return env
}

// serveProvider emulates the provider's current-weather endpoint.
func (env *testEnv) serveProvider(w http.ResponseWriter, r *http.Request) {
	env.mu.Lock()
	failCode := env.failCode
	city := r.URL.Query().Get("q")
	env.hits[city]++
	env.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if failCode != 0 {
		w.WriteHeader(failCode)
		fmt.Fprint(w, `{}`)
		return
	}
	if r.URL.Query().Get("appid") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"cod":401,"message":"Invalid API key"}`)
		return
	}

	payload, ok := providerPayloads[city]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
		return
	}
	fmt.Fprint(w, payload)
}

func (env *testEnv) providerHits(city string) int {
	env.mu.Lock()
	defer env.mu.Unlock()
	return env.hits[city]
}

func (env *testEnv) failProvider(code int) {
	env.mu.Lock()
	env.failCode = code
	env.mu.Unlock()
}
