package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
)

// WeatherRepository fetches current conditions by coordinates. Best-effort:
// nil snapshot with nil error means the lookup was skipped or empty.
type WeatherRepository interface {
	Current(ctx context.Context, coords model.Coordinates) (*model.WeatherSnapshot, error)
}

type weatherRepository struct {
	httpClient *http.Client
}

// NewWeatherRepository creates a new weather repository instance.
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetUpstreamTimeout("openweathermap")}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{httpClient: client}
}

// Current retrieves weather from OpenWeatherMap. Skipped entirely when no
// API key is configured.
func (r *weatherRepository) Current(ctx context.Context, coords model.Coordinates) (*model.WeatherSnapshot, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("appid", apiKey)
	params.Set("units", "metric")

	reqURL := fmt.Sprintf("%s?%s", config.GetOpenWeatherApiUrl(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weather returned status %d", ErrUpstream, resp.StatusCode)
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	snapshot := &model.WeatherSnapshot{Temp: data.Main.Temp}
	if len(data.Weather) > 0 {
		snapshot.Conditions = data.Weather[0].Description
	}
	return snapshot, nil
}
