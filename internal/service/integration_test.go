package service

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranali0315/NomadHelp/internal/repository"
)

// upstreamFake routes requests to canned payloads by host, standing in for
// all five providers behind one mocked transport.
type upstreamFake struct{}

func (upstreamFake) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	status := http.StatusOK

	switch {
	case strings.Contains(req.URL.Host, "nominatim"):
		body = `[{
			"display_name": "Paris, Ile-de-France, Metropolitan France, France",
			"type": "city",
			"lat": "48.8566", "lon": "2.3522",
			"address": {"city": "Paris", "country": "France", "country_code": "fr"}
		}]`
	case strings.Contains(req.URL.Host, "wikipedia"):
		body = `{"extract": "Paris is the capital and most populous city of France. It has an estimated population of over two million."}`
	case strings.Contains(req.URL.Host, "openweathermap"):
		body = `{"main": {"temp": 18.4}, "weather": [{"description": "light rain"}]}`
	case strings.Contains(req.URL.Host, "ticketmaster"):
		body = `{"_embedded": {"events": [{
			"name": "Jazz Night",
			"dates": {"start": {"localDate": "2026-09-12"}},
			"_embedded": {"venues": [{"name": "Le Trianon"}]}
		}]}}`
	case strings.Contains(req.URL.Host, "themealdb"):
		body = `{"meals": [{"strMeal": "Ratatouille", "idMeal": "1"}, {"strMeal": "Boeuf Bourguignon", "idMeal": "2"}]}`
	default:
		status = http.StatusNotFound
		body = `{}`
	}

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

func TestGuide_EndToEndThroughRepositories(t *testing.T) {
	os.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
	os.Setenv("TICKETMASTER_API_KEY", "tm-key")
	defer os.Unsetenv("OPENWEATHERMAP_API_KEY")
	defer os.Unsetenv("TICKETMASTER_API_KEY")

	client := &http.Client{Transport: upstreamFake{}}
	guide := &TravelGuide{
		Locations:    repository.NewLocationRepository(client),
		Descriptions: repository.NewDescriptionRepository(client),
		Weather:      repository.NewWeatherRepository(client),
		Events:       repository.NewEventsRepository(client),
		Cuisine:      repository.NewCuisineRepository(client),
	}

	resp := guide.Guide(context.Background(), "Paris", DetailFull)

	require.False(t, resp.IsError)
	report := resp.StructuredContent
	require.NotNil(t, report)

	assert.Equal(t, "Paris", report.Name)
	assert.Equal(t, "city", report.Kind)
	assert.Equal(t, "France", report.Country)
	require.NotNil(t, report.Coordinates)
	assert.Equal(t, 48.8566, report.Coordinates.Lat)

	assert.Equal(t, "Paris is the capital and most populous city of France.", report.Description)
	require.NotNil(t, report.Weather)
	assert.Equal(t, 18.4, report.Weather.Temp)
	assert.Equal(t, "light rain", report.Weather.Conditions)
	require.Len(t, report.Events, 1)
	assert.Equal(t, "Jazz Night", report.Events[0].Name)
	require.Len(t, report.Dishes, 2)

	text := resp.Content[0].Text
	assert.True(t, strings.HasPrefix(text, "🌍 *Paris* (France)"), "digest: %q", text)
	assert.Contains(t, text, "☀️ *Weather*: 18.4°C, light rain")
}

func TestGuide_EndToEnd_NotFound(t *testing.T) {
	client := &http.Client{Transport: repository.RoundTripperFunc(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[]`)),
			Header:     make(http.Header),
		}
	})}
	guide := &TravelGuide{
		Locations:    repository.NewLocationRepository(client),
		Descriptions: repository.NewDescriptionRepository(client),
		Weather:      repository.NewWeatherRepository(client),
		Events:       repository.NewEventsRepository(client),
		Cuisine:      repository.NewCuisineRepository(client),
	}

	resp := guide.Guide(context.Background(), "Nowhereville Atlantis", DetailFull)

	require.True(t, resp.IsError)
	assert.Nil(t, resp.StructuredContent)
	assert.Contains(t, strings.ToLower(resp.Content[0].Text), "not found")
}
