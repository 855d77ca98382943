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

// maxEvents caps the number of events returned per request.
const maxEvents = 3

// eventRadius is the fixed latlong search radius sent to the provider.
const eventRadius = "50"

// EventsRepository looks up upcoming public events near a resolved place.
// Best-effort: an empty slice with nil error means no events are known.
type EventsRepository interface {
	Upcoming(ctx context.Context, loc *model.ResolvedLocation) ([]model.EventSummary, error)
}

type eventsRepository struct {
	httpClient *http.Client
}

// NewEventsRepository creates a new events repository instance.
func NewEventsRepository(httpClient ...*http.Client) EventsRepository {
	client := &http.Client{Timeout: config.GetUpstreamTimeout("ticketmaster")}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &eventsRepository{httpClient: client}
}

// Upcoming queries the Ticketmaster Discovery API, preferring city,
// two-letter country code and a coordinate radius filter in combination.
// Skipped entirely when no API key is configured.
func (r *eventsRepository) Upcoming(ctx context.Context, loc *model.ResolvedLocation) ([]model.EventSummary, error) {
	apiKey := config.GetTicketmasterAPIKey()
	if apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", apiKey)
	params.Set("size", strconv.Itoa(maxEvents))
	params.Set("sort", "date,asc")

	if loc.City != "" {
		params.Set("city", loc.City)
	}
	if len(loc.CountryCode) == 2 {
		params.Set("countryCode", loc.CountryCode)
	}
	if loc.Coordinates != nil {
		lat := strconv.FormatFloat(loc.Coordinates.Lat, 'f', -1, 64)
		lon := strconv.FormatFloat(loc.Coordinates.Lon, 'f', -1, 64)
		params.Set("latlong", lat+","+lon)
		params.Set("radius", eventRadius)
	}

	reqURL := fmt.Sprintf("%s?%s", config.GetTicketmasterApiUrl(), params.Encode())
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

	var data model.TicketmasterResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if data.Embedded == nil || len(data.Embedded.Events) == 0 {
		return nil, nil
	}

	events := make([]model.EventSummary, 0, maxEvents)
	for _, ev := range data.Embedded.Events {
		if len(events) == maxEvents {
			break
		}
		events = append(events, buildEvent(&ev))
	}
	return events, nil
}

// buildEvent maps one provider event onto the domain summary, applying the
// "Unknown Event" / "TBA" defaults for absent fields.
func buildEvent(ev *model.TicketmasterEvent) model.EventSummary {
	summary := model.EventSummary{
		Name: ev.Name,
		Date: ev.Dates.Start.LocalDate,
	}
	if summary.Name == "" {
		summary.Name = "Unknown Event"
	}
	if summary.Date == "" {
		summary.Date = "TBA"
	}
	if ev.Embedded != nil && len(ev.Embedded.Venues) > 0 {
		summary.Venue = ev.Embedded.Venues[0].Name
	}
	return summary
}
