package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
	"github.com/Pranali0315/NomadHelp/internal/repository"
)

// Detail levels accepted by the travel-guide operation.
const (
	DetailBasic = "basic"
	DetailFull  = "full"
)

// populatedKinds are the place types worth querying the events provider for.
var populatedKinds = map[string]struct{}{
	"city":         {},
	"town":         {},
	"village":      {},
	"municipality": {},
	"hamlet":       {},
	"suburb":       {},
}

// TravelGuideInterface is the orchestration contract consumed by handlers.
type TravelGuideInterface interface {
	Guide(ctx context.Context, location, detailLevel string) *model.ToolResponse
}

// TravelGuide composes the location resolver with the four best-effort
// enrichment repositories.
type TravelGuide struct {
	Locations    repository.LocationRepository
	Descriptions repository.DescriptionRepository
	Weather      repository.WeatherRepository
	Events       repository.EventsRepository
	Cuisine      repository.CuisineRepository
}

// NewTravelGuide creates a travel guide wired to the real upstream providers.
func NewTravelGuide() *TravelGuide {
	return &TravelGuide{
		Locations:    repository.NewLocationRepository(),
		Descriptions: repository.NewDescriptionRepository(),
		Weather:      repository.NewWeatherRepository(),
		Events:       repository.NewEventsRepository(),
		Cuisine:      repository.NewCuisineRepository(),
	}
}

var _ TravelGuideInterface = (*TravelGuide)(nil)

// Guide resolves the query and, at full detail, enriches the report with
// description, weather, events and cuisine. Resolution failure is terminal
// and yields an error-flagged envelope; enrichment failures degrade to
// omitted fields. A fault anywhere in orchestration is converted into an
// error envelope rather than propagated.
func (g *TravelGuide) Guide(ctx context.Context, location, detailLevel string) (resp *model.ToolResponse) {
	defer func() {
		if r := recover(); r != nil {
			config.GetLogger().Errorw("travel guide fault", "location", location, "error", r)
			resp = model.NewErrorResponse(fmt.Sprintf("Error: %v", r))
		}
	}()

	loc, err := g.Locations.Resolve(ctx, location)
	if err != nil {
		return model.NewErrorResponse(fmt.Sprintf("Error: %v", err))
	}

	report := &model.TravelReport{
		Name:        loc.Name,
		Kind:        loc.Kind,
		Country:     loc.Country,
		Coordinates: loc.Coordinates,
	}

	if detailLevel == DetailFull {
		g.enrich(ctx, loc, report)
	}

	return model.NewTextResponse(formatDigest(loc, report), report)
}

// enrich runs the four best-effort lookups concurrently. Each goroutine
// writes a distinct report field, so no locking is needed beyond the wait.
func (g *TravelGuide) enrich(ctx context.Context, loc *model.ResolvedLocation, report *model.TravelReport) {
	logger := config.GetLogger()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		desc, err := g.Descriptions.Describe(ctx, loc.Name, loc.Country)
		if err != nil {
			logger.Warnw("description lookup failed", "location", loc.Name, "error", err)
			return
		}
		report.Description = desc
	}()

	if loc.Coordinates != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			weather, err := g.Weather.Current(ctx, *loc.Coordinates)
			if err != nil {
				logger.Warnw("weather lookup failed", "location", loc.Name, "error", err)
				return
			}
			report.Weather = weather
		}()
	}

	if _, populated := populatedKinds[loc.Kind]; populated {
		wg.Add(1)
		go func() {
			defer wg.Done()
			events, err := g.Events.Upcoming(ctx, loc)
			if err != nil {
				logger.Warnw("events lookup failed", "location", loc.Name, "error", err)
				return
			}
			report.Events = events
		}()
	}

	if loc.Country != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dishes, err := g.Cuisine.Dishes(ctx, loc.Country)
			if err != nil {
				logger.Warnw("cuisine lookup failed", "country", loc.Country, "error", err)
				return
			}
			report.Dishes = dishes
		}()
	}

	wg.Wait()
}
