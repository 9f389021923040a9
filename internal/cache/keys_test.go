package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearbyKey(t *testing.T) {
	a := NearbyKey(37.7749, -122.4194, 5000, 25, "type=hospital")
	b := NearbyKey(37.7749, -122.4194, 5000, 25, "type=pharmacy")

	assert.True(t, strings.HasPrefix(a, "cache:v1:nearby:"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, NearbyKey(37.7749, -122.4194, 5000, 25, "type=hospital"))
}

func TestGetTTL(t *testing.T) {
	assert.Equal(t, NearbyTTL, GetTTL(ProviderKey("abc")))
	assert.Equal(t, NearbyTTL, GetTTL(NearbyKey(1, 2, 3, 4, "")))
	assert.Equal(t, ProbeStatusTTL, GetTTL(ProbeStatusKey))
	assert.Equal(t, NearbyTTL, GetTTL("unrelated"))
}

func TestEncode(t *testing.T) {
	data, err := encode(map[string]int{"a": 1})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	data, err = encode("plain")
	assert.NoError(t, err)
	assert.Equal(t, "plain", string(data))
}
