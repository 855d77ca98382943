package model

// NominatimResult is a single candidate from the Nominatim search API.
// Lat/Lon arrive as strings and are parsed by the location repository.
type NominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Suburb      string `json:"suburb"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}
