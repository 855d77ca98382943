package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
	"github.com/Pranali0315/NomadHelp/internal/redis"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrUpstream         = errors.New("external API error")
)

const userAgent = "NomadHelp-TravelGuide/1.0"

// LocationRepository resolves a free-text query to a canonical place.
// Resolution failure is fatal to the whole request.
type LocationRepository interface {
	Resolve(ctx context.Context, query string) (*model.ResolvedLocation, error)
}

// locationCache is the subset of Redis operations the repository uses.
type locationCache interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

type locationRepository struct {
	cache      locationCache
	httpClient *http.Client
}

// NewLocationRepository creates a new location repository instance.
func NewLocationRepository(httpClient ...*http.Client) LocationRepository {
	client := &http.Client{Timeout: config.GetUpstreamTimeout("nominatim")}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	repo := &locationRepository{httpClient: client}
	if rc := redis.GetClient(); rc != nil {
		repo.cache = rc
	}
	return repo
}

// Resolve returns the first geocoding candidate for the query, checking the
// cache first. The cache is best-effort: any cache failure falls through to
// the upstream call.
func (r *locationRepository) Resolve(ctx context.Context, query string) (*model.ResolvedLocation, error) {
	if cached, err := r.getFromCache(ctx, query); err == nil {
		return cached, nil
	}

	loc, err := r.fetchFromNominatim(ctx, query)
	if err != nil {
		return nil, err
	}

	r.cacheLocation(ctx, query, loc)

	return loc, nil
}

func cacheKey(query string) string {
	return "location:" + strings.ToLower(strings.TrimSpace(query))
}

func (r *locationRepository) getFromCache(ctx context.Context, query string) (*model.ResolvedLocation, error) {
	if r.cache == nil {
		return nil, errors.New("cache disabled")
	}

	val, err := r.cache.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil, err
	}

	var loc model.ResolvedLocation
	if err := json.Unmarshal([]byte(val), &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) cacheLocation(ctx context.Context, query string, loc *model.ResolvedLocation) {
	if r.cache == nil {
		return
	}
	if b, err := json.Marshal(loc); err == nil {
		_ = r.cache.Set(ctx, cacheKey(query), b, config.GetCacheExpiration()).Err()
	}
}

func (r *locationRepository) fetchFromNominatim(ctx context.Context, query string) (*model.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s?%s", config.GetNominatimApiUrl(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoding returned status %d", ErrUpstream, resp.StatusCode)
	}

	var results []model.NominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(results) == 0 {
		return nil, ErrLocationNotFound
	}

	return buildLocation(&results[0])
}

// buildLocation maps a Nominatim candidate onto the domain record.
func buildLocation(res *model.NominatimResult) (*model.ResolvedLocation, error) {
	kind := res.Type
	if kind == "" {
		kind = "unknown"
	}

	city := res.Address.City
	if city == "" {
		city = res.Address.Town
	}
	if city == "" {
		city = res.Address.Village
	}

	loc := &model.ResolvedLocation{
		Name:        strings.TrimSpace(strings.SplitN(res.DisplayName, ",", 2)[0]),
		Kind:        kind,
		Country:     res.Address.Country,
		CountryCode: strings.ToUpper(res.Address.CountryCode),
		City:        city,
	}

	if res.Lat != "" {
		lat, err := strconv.ParseFloat(res.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing latitude %q: %v", ErrUpstream, res.Lat, err)
		}
		lon, err := strconv.ParseFloat(res.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing longitude %q: %v", ErrUpstream, res.Lon, err)
		}
		loc.Coordinates = &model.Coordinates{Lat: lat, Lon: lon}
	}

	return loc, nil
}
