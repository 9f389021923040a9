package cache

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

const (
	NearbyTTL      = 5 * time.Minute
	ProbeStatusTTL = 15 * time.Minute
)

// ProvidersGeoKey is the GEO set indexing every provider location.
const ProvidersGeoKey = "providers:geo"

// ProbeStatusKey holds the last background connection-test result.
const ProbeStatusKey = "inference:probe:last"

// ProviderKey generates Redis key for a single provider record
func ProviderKey(id string) string {
	return fmt.Sprintf("providers:id:%s", id)
}

// NearbyKey generates Redis key for a provider search result. filter carries
// every search option besides the point and radius.
func NearbyKey(lat, lng, radius float64, limit int, filter string) string {
	hash := sha1.Sum([]byte(fmt.Sprintf("nearby:%.6f:%.6f:%.1f:%d:%s", lat, lng, radius, limit, filter)))
	return fmt.Sprintf("cache:v1:nearby:%x", hash)
}

// GetTTL returns the appropriate TTL for a given key
func GetTTL(key string) time.Duration {
	switch {
	case strings.HasPrefix(key, "cache:v1:nearby:"):
		return NearbyTTL
	case key == ProbeStatusKey:
		return ProbeStatusTTL
	default:
		return 5 * time.Minute
	}
}
