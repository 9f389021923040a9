package repo

import "errors"

var ErrNotFound = errors.New("provider not found")

// Provider is a stored healthcare location.
type Provider struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Category       string  `json:"category" yaml:"category"`
	Address        string  `json:"address" yaml:"address"`
	Phone          string  `json:"phone,omitempty" yaml:"phone"`
	Website        string  `json:"website,omitempty" yaml:"website"`
	Lat            float64 `json:"lat" yaml:"lat"`
	Lng            float64 `json:"lng" yaml:"lng"`
	Rating         float64 `json:"rating,omitempty" yaml:"rating"`
	IsOpen         *bool   `json:"isOpen,omitempty" yaml:"isOpen"`
	BusinessStatus string  `json:"businessStatus,omitempty" yaml:"businessStatus"`
}

// NearbyParams selects providers around a point. Type is a provider type
// such as "hospital" or "pharmacy"; empty or "all" matches every type.
type NearbyParams struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	Type         string
	MinRating    float64
	Limit        int
}

// NearbyProvider is a search hit with its distance from the query point.
type NearbyProvider struct {
	Provider
	DistanceMeters float64 `json:"distanceMeters"`
}
