package providers

import "github.com/jodylarsen/CareConnect/internal/geo"

// Filters narrows a provider search. Zero values mean "no filter" except
// RadiusMeters and Limit, which fall back to configured defaults.
type Filters struct {
	Type         string  `json:"type,omitempty"`
	RadiusMeters float64 `json:"radius,omitempty"`
	MinRating    float64 `json:"minRating,omitempty"`
	IsOpen       *bool   `json:"isOpen,omitempty"`
	Keyword      string  `json:"keyword,omitempty"`
	Limit        int     `json:"limit,omitempty"`
}

// SearchRequest is the body of a provider search.
type SearchRequest struct {
	Location geo.Location `json:"location"`
	Filters  Filters      `json:"filters"`
}

// Provider is a search hit as returned to clients.
type Provider struct {
	ID             string       `json:"id"`
	PlaceID        string       `json:"placeId"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Location       geo.Location `json:"location"`
	Type           string       `json:"type"`
	Category       string       `json:"category"`
	Phone          string       `json:"phone,omitempty"`
	Website        string       `json:"website,omitempty"`
	Rating         float64      `json:"rating,omitempty"`
	IsOpen         *bool        `json:"isOpen,omitempty"`
	Distance       float64      `json:"distance"` // miles
	DistanceMeters float64      `json:"distanceMeters"`
	BusinessStatus string       `json:"businessStatus"`
}

type SearchResponse struct {
	Providers []Provider `json:"providers"`
	Total     int        `json:"total"`
	Filters   Filters    `json:"filters"`
}
