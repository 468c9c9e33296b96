package integrationtest

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WeatherLookupTestSuite struct {
	suite.Suite
	env *testEnv
}

func (s *WeatherLookupTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
}

func TestWeatherLookupTestSuite(t *testing.T) {
	suite.Run(t, new(WeatherLookupTestSuite))
}

func (s *WeatherLookupTestSuite) get(path string) *http.Response {
	resp, err := http.Get(s.env.server.URL + path)
	s.Require().NoError(err)
	return resp
}

func (s *WeatherLookupTestSuite) TestMissingCityParameter() {
	resp := s.get("/weather")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "Missing 'city' query parameter")
}

func (s *WeatherLookupTestSuite) TestSuccessfulLookup() {
	resp := s.get("/weather?city=Paris")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), `"city":"Paris"`)
	s.Contains(string(body), `"temperature":21.5`)
	s.Contains(string(body), `"condition":"Clear"`)
	s.Equal(1, s.env.providerHits("Paris"))
}

func (s *WeatherLookupTestSuite) TestSecondLookupServedFromCache() {
	for i := 0; i < 2; i++ {
		resp := s.get("/weather?city=Paris")
		s.Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	s.Equal(1, s.env.providerHits("Paris"), "second lookup should not reach the provider")
}

func (s *WeatherLookupTestSuite) TestCacheExpiryTriggersRefetch() {
	resp := s.get("/weather?city=Paris")
	resp.Body.Close()

	s.env.miniRedis.FastForward(cacheTTL + time.Second)

	resp = s.get("/weather?city=Paris")
	resp.Body.Close()
	s.Equal(2, s.env.providerHits("Paris"))
}

func (s *WeatherLookupTestSuite) TestUnknownCity() {
	resp := s.get("/weather?city=Nowhereville")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "City not found.")
}

func (s *WeatherLookupTestSuite) TestInvalidAPIKey() {
	env := newTestEnvWithKey(s.T(), "wrong-key")
	resp, err := http.Get(env.server.URL + "/weather?city=Paris")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "Unauthorized")
}

func (s *WeatherLookupTestSuite) TestProviderOutage() {
	s.env.failProvider(http.StatusServiceUnavailable)

	resp := s.get("/weather?city=Paris")
	defer resp.Body.Close()

	s.Equal(http.StatusBadGateway, resp.StatusCode)
}

func (s *WeatherLookupTestSuite) TestConditionRendersInFixedSet() {
	resp := s.get("/weather?city=Oslo")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(s.T(), string(body), `"condition":"Snow"`)
}
