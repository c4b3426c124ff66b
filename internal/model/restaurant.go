package model

// Restaurant is a single suggestion flowing from the LLM through enrichment
// to the client. Coordinates, rating and computed distance are pointers
// because the model may omit them.
type Restaurant struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Distance      string   `json:"distance,omitempty" yaml:"distance,omitempty"`
	DistanceKm    *float64 `json:"distanceKm,omitempty" yaml:"distance_km,omitempty"`
	Rating        *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	TotalRatings  int      `json:"totalRatings,omitempty" yaml:"total_ratings,omitempty"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
	PhotoURL      string   `json:"photoUrl,omitempty" yaml:"photo_url,omitempty"`
	Address       string   `json:"address,omitempty" yaml:"address,omitempty"`
	PriceRange    string   `json:"priceRange,omitempty" yaml:"price_range,omitempty"`
	Cuisine       string   `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	GoogleMapsURL string   `json:"googleMapsUrl,omitempty" yaml:"google_maps_url,omitempty"`
	OSMURL        string   `json:"osmUrl,omitempty" yaml:"osm_url,omitempty"`
	PlaceID       string   `json:"placeId,omitempty" yaml:"place_id,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
// A zero value counts as absent, matching how the model reports unknowns.
func (r Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil && *r.Latitude != 0 && *r.Longitude != 0
}

// CoordinatesOr returns the restaurant's own coordinates when present,
// otherwise the given fallback.
func (r Restaurant) CoordinatesOr(lat, lon float64) (float64, float64) {
	if r.HasCoordinates() {
		return *r.Latitude, *r.Longitude
	}
	return lat, lon
}

// Location is a point the user searches from.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
