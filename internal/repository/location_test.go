package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Pranali0315/NomadHelp/internal/model"
)

func newMockHTTPClient(fn func(req *http.Request) *http.Response) *http.Client {
	return &http.Client{
		Transport: RoundTripperFunc(fn),
	}
}

func jsonResponse(statusCode int, body interface{}) *http.Response {
	b, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewReader(b)),
		Header:     make(http.Header),
	}
}

func nominatimResult(displayName, kind, country, code, city, lat, lon string) model.NominatimResult {
	var res model.NominatimResult
	res.DisplayName = displayName
	res.Type = kind
	res.Lat = lat
	res.Lon = lon
	res.Address.Country = country
	res.Address.CountryCode = code
	res.Address.City = city
	return res
}

func TestResolve_Success(t *testing.T) {
	var gotQuery string
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		gotQuery = req.URL.Query().Get("q")
		return jsonResponse(200, []model.NominatimResult{
			nominatimResult("Paris, Ile-de-France, France", "city", "France", "fr", "Paris", "48.8566", "2.3522"),
		})
	})
	repo := &locationRepository{httpClient: mockHTTP}

	loc, err := repo.Resolve(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotQuery != "Paris" {
		t.Errorf("Expected query Paris, got %s", gotQuery)
	}
	if loc.Name != "Paris" {
		t.Errorf("Expected name Paris, got %s", loc.Name)
	}
	if loc.Kind != "city" {
		t.Errorf("Expected kind city, got %s", loc.Kind)
	}
	if loc.Country != "France" {
		t.Errorf("Expected country France, got %s", loc.Country)
	}
	if loc.CountryCode != "FR" {
		t.Errorf("Expected country code FR, got %s", loc.CountryCode)
	}
	if loc.Coordinates == nil {
		t.Fatal("Expected coordinates, got nil")
	}
	if loc.Coordinates.Lat != 48.8566 || loc.Coordinates.Lon != 2.3522 {
		t.Errorf("Unexpected coordinates: %+v", loc.Coordinates)
	}
}

func TestResolve_NotFound(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, []model.NominatimResult{})
	})
	repo := &locationRepository{httpClient: mockHTTP}

	_, err := repo.Resolve(context.Background(), "Nowhereville Atlantis")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("Expected ErrLocationNotFound, got %v", err)
	}
}

func TestResolve_UpstreamError(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 500,
			Body:       io.NopCloser(strings.NewReader("error")),
			Header:     make(http.Header),
		}
	})
	repo := &locationRepository{httpClient: mockHTTP}

	_, err := repo.Resolve(context.Background(), "Paris")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
}

func TestResolve_DecodeError(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("not-json")),
			Header:     make(http.Header),
		}
	})
	repo := &locationRepository{httpClient: mockHTTP}

	_, err := repo.Resolve(context.Background(), "Paris")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestResolve_CityFallback(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.NominatimResult)
		wantCity string
	}{
		{
			name:     "city present",
			mutate:   func(r *model.NominatimResult) { r.Address.City = "Lyon" },
			wantCity: "Lyon",
		},
		{
			name:     "falls back to town",
			mutate:   func(r *model.NominatimResult) { r.Address.Town = "Giverny" },
			wantCity: "Giverny",
		},
		{
			name:     "falls back to village",
			mutate:   func(r *model.NominatimResult) { r.Address.Village = "Gordes" },
			wantCity: "Gordes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := nominatimResult("Somewhere, France", "town", "France", "fr", "", "45.0", "4.0")
			tt.mutate(&res)
			mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
				return jsonResponse(200, []model.NominatimResult{res})
			})
			repo := &locationRepository{httpClient: mockHTTP}

			loc, err := repo.Resolve(context.Background(), "Somewhere")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if loc.City != tt.wantCity {
				t.Errorf("Expected city %s, got %s", tt.wantCity, loc.City)
			}
		})
	}
}

func TestResolve_NoLatMeansNoCoordinates(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, []model.NominatimResult{
			nominatimResult("Mont Blanc, France", "mountain", "France", "fr", "", "", ""),
		})
	})
	repo := &locationRepository{httpClient: mockHTTP}

	loc, err := repo.Resolve(context.Background(), "Mont Blanc")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loc.Coordinates != nil {
		t.Errorf("Expected nil coordinates, got %+v", loc.Coordinates)
	}
}

func TestResolve_MalformedLatitude(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, []model.NominatimResult{
			nominatimResult("Paris, France", "city", "France", "fr", "Paris", "not-a-number", "2.35"),
		})
	})
	repo := &locationRepository{httpClient: mockHTTP}

	_, err := repo.Resolve(context.Background(), "Paris")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
}

func TestResolve_CacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	defer cacheClient.Close()

	calls := 0
	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		calls++
		return jsonResponse(200, []model.NominatimResult{
			nominatimResult("Paris, France", "city", "France", "fr", "Paris", "48.85", "2.35"),
		})
	})
	repo := &locationRepository{httpClient: mockHTTP, cache: cacheClient}

	ctx := context.Background()
	first, err := repo.Resolve(ctx, "Paris")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := repo.Resolve(ctx, "Paris")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected one upstream call, got %d", calls)
	}
	if first.Name != second.Name || first.Country != second.Country {
		t.Errorf("Cached resolution differs: %+v vs %+v", first, second)
	}
}

func TestResolve_CacheFailureFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	defer cacheClient.Close()
	mr.Close() // cache unavailable

	mockHTTP := newMockHTTPClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, []model.NominatimResult{
			nominatimResult("Paris, France", "city", "France", "fr", "Paris", "48.85", "2.35"),
		})
	})
	repo := &locationRepository{httpClient: mockHTTP, cache: cacheClient}

	loc, err := repo.Resolve(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loc.Name != "Paris" {
		t.Errorf("Expected Paris, got %s", loc.Name)
	}
}
