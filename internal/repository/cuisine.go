package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
)

// maxDishes caps the number of dishes returned per request.
const maxDishes = 3

// countryAreas maps common country names to TheMealDB's area vocabulary.
// Static lookup data, loaded once; countries not listed are passed through
// as-is.
var countryAreas = map[string]string{
	"United States":  "American",
	"United Kingdom": "British",
	"UK":             "British",
	"China":          "Chinese",
	"India":          "Indian",
	"Italy":          "Italian",
	"France":         "French",
	"Mexico":         "Mexican",
	"Japan":          "Japanese",
	"Thailand":       "Thai",
	"Greece":         "Greek",
	"Spain":          "Spanish",
	"Turkey":         "Turkish",
	"Morocco":        "Moroccan",
	"Jamaica":        "Jamaican",
	"Canada":         "Canadian",
	"Malaysia":       "Malaysian",
	"Egypt":          "Egyptian",
	"Tunisia":        "Tunisian",
	"Croatia":        "Croatian",
	"Ireland":        "Irish",
	"Poland":         "Polish",
	"Portugal":       "Portuguese",
	"Russia":         "Russian",
	"Ukraine":        "Ukrainian",
	"Vietnam":        "Vietnamese",
}

// CuisineRepository looks up representative dishes for a country.
// Best-effort: an empty slice with nil error means no dishes are known.
type CuisineRepository interface {
	Dishes(ctx context.Context, country string) ([]model.Dish, error)
}

type cuisineRepository struct {
	httpClient *http.Client
}

// NewCuisineRepository creates a new cuisine repository instance.
func NewCuisineRepository(httpClient ...*http.Client) CuisineRepository {
	client := &http.Client{Timeout: config.GetUpstreamTimeout("mealdb")}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &cuisineRepository{httpClient: client}
}

// Dishes tries the mapped area term first, then the raw country name,
// stopping at the first attempt that yields a non-empty meal collection.
// Failures at any attempt are swallowed and the next term tried.
func (r *cuisineRepository) Dishes(ctx context.Context, country string) ([]model.Dish, error) {
	if country == "" {
		return nil, nil
	}

	terms := []string{country}
	if area, ok := countryAreas[country]; ok {
		terms = []string{area, country}
	}

	for _, term := range terms {
		dishes, err := r.fetchDishes(ctx, term)
		if err != nil {
			config.GetLogger().Debugw("cuisine lookup attempt failed", "term", term, "error", err)
			continue
		}
		if len(dishes) > 0 {
			return dishes, nil
		}
	}

	return nil, nil
}

func (r *cuisineRepository) fetchDishes(ctx context.Context, area string) ([]model.Dish, error) {
	params := url.Values{}
	params.Set("a", area)

	reqURL := fmt.Sprintf("%s?%s", config.GetMealDBApiUrl(), params.Encode())
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
		return nil, nil
	}

	var data model.MealDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	dishes := make([]model.Dish, 0, maxDishes)
	for _, meal := range data.Meals {
		if len(dishes) == maxDishes {
			break
		}
		dishes = append(dishes, model.Dish{Name: meal.Name})
	}
	return dishes, nil
}
