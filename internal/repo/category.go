package repo

import "strings"

// healthKeywords marks a business category as healthcare related.
var healthKeywords = []string{"health", "medical", "doctor", "hospital", "clinic", "dentist", "pharmacy", "urgent"}

var typeKeywords = map[string]string{
	"hospital":    "hospital",
	"urgent_care": "urgent care",
	"clinic":      "medical clinic",
	"pharmacy":    "pharmacy",
	"dentist":     "dentist",
	"doctor":      "doctor",
}

// CategoryKeyword returns the category substring a provider type filters on.
// Unknown types filter on themselves.
func CategoryKeyword(providerType string) string {
	if providerType == "" || providerType == "all" {
		return ""
	}
	if kw, ok := typeKeywords[providerType]; ok {
		return kw
	}
	return strings.ToLower(providerType)
}

// IsHealthCategory reports whether a business category is a healthcare one.
func IsHealthCategory(category string) bool {
	lower := strings.ToLower(category)
	for _, kw := range healthKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matches applies the non-spatial filters shared by the Redis and memory backends.
func (p NearbyParams) matches(provider Provider) bool {
	if !IsHealthCategory(provider.Category) {
		return false
	}
	if kw := CategoryKeyword(p.Type); kw != "" && !strings.Contains(strings.ToLower(provider.Category), kw) {
		return false
	}
	return provider.Rating >= p.MinRating
}
