package model

// SortBy selects the ordering applied to a result set.
type SortBy string

const (
	SortRelevance   SortBy = "relevance"
	SortRatingDesc  SortBy = "rating-desc"
	SortDistanceAsc SortBy = "distance-asc"
)

// Valid reports whether s is a known sort mode. The empty value is treated
// as relevance.
func (s SortBy) Valid() bool {
	switch s {
	case "", SortRelevance, SortRatingDesc, SortDistanceAsc:
		return true
	default:
		return false
	}
}

// Filters narrows and orders a result set. Zero values mean "any".
type Filters struct {
	MaxDistanceKm float64 `json:"maxDistance"`
	MinRating     float64 `json:"minRating"`
	PriceRange    string  `json:"priceRange"`
	SortBy        SortBy  `json:"sortBy"`
}

// Active reports whether any filter differs from its default.
func (f Filters) Active() bool {
	return f.MaxDistanceKm > 0 || f.MinRating > 0 || f.PriceRange != "" ||
		(f.SortBy != "" && f.SortBy != SortRelevance)
}

// SearchSource records where a result set came from.
type SearchSource string

const (
	SourceLLM  SearchSource = "llm"
	SourceMock SearchSource = "mock"
)

// SearchRequest is a craving keyword searched from a location.
type SearchRequest struct {
	Keyword   string   `json:"keyword"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Filters   *Filters `json:"filters,omitempty"`
}

// SearchResponse is the message and restaurants returned for a search.
type SearchResponse struct {
	Message     string       `json:"message"`
	Restaurants []Restaurant `json:"restaurants"`
	Source      SearchSource `json:"source"`
}
