package providers

import (
	"strings"

	"github.com/jodylarsen/CareConnect/internal/services/symptoms"
)

// FilterTypeFor maps a recommended care type to the provider type to search for.
func FilterTypeFor(c symptoms.CareType) string {
	switch c {
	case symptoms.CareEmergency, symptoms.CareHospital:
		return "hospital"
	case symptoms.CareUrgentCare:
		return "urgent_care"
	case symptoms.CarePharmacy:
		return "pharmacy"
	default:
		return "clinic"
	}
}

// TypeForCategory classifies a free-text business category.
func TypeForCategory(category string) string {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, "hospital"):
		return "hospital"
	case strings.Contains(lower, "urgent"):
		return "urgent_care"
	case strings.Contains(lower, "clinic"):
		return "clinic"
	case strings.Contains(lower, "pharmacy"):
		return "pharmacy"
	case strings.Contains(lower, "dentist"):
		return "dentist"
	case strings.Contains(lower, "doctor"):
		return "doctor"
	default:
		return "health"
	}
}
