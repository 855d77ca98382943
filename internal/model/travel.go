package model

// Coordinates is a latitude/longitude pair from the geocoder.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ResolvedLocation is the canonical place record produced by geocoding a
// free-text query. It is built once per request and read-only afterward.
type ResolvedLocation struct {
	Name        string       `json:"name"`
	Kind        string       `json:"type"`
	Country     string       `json:"country,omitempty"`
	CountryCode string       `json:"country_code,omitempty"`
	City        string       `json:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// WeatherSnapshot holds current conditions at the resolved coordinates.
type WeatherSnapshot struct {
	Temp       float64 `json:"temp"`
	Conditions string  `json:"conditions"`
}

// EventSummary is one upcoming public event near the resolved place.
type EventSummary struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue,omitempty"`
}

// Dish is a representative regional dish.
type Dish struct {
	Name string `json:"name"`
}

// TravelReport is the structured output of one travel-guide request.
// Optional sections are either fully populated or absent entirely.
type TravelReport struct {
	Name        string           `json:"name"`
	Kind        string           `json:"type"`
	Country     string           `json:"country,omitempty"`
	Coordinates *Coordinates     `json:"coordinates,omitempty"`
	Description string           `json:"description,omitempty"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	Events      []EventSummary   `json:"events,omitempty"`
	Dishes      []Dish           `json:"dishes,omitempty"`
}
