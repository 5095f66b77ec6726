package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HOSTAWAY_ACCOUNT_ID", "HOSTAWAY_API_KEY", "HOSTAWAY_LIVE_MODE",
		"HOSTAWAY_API_BASE", "GOOGLE_PLACES_API_KEY", "API_BASE_URL", "CACHE_TTL_SECONDS", "IMPORT_WORKERS"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "61148", c.HostawayAccountID)
	assert.Equal(t, "", c.HostawayKey)
	assert.False(t, c.HostawayLiveMode)
	assert.Equal(t, "https://api.hostaway.com/v1", c.HostawayBase)
	assert.Equal(t, "http://localhost:8000", c.APIBaseURL)
	assert.Equal(t, 900*time.Second, c.CacheTTL)
	assert.Equal(t, 8, c.ImportWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOSTAWAY_LIVE_MODE", "Yes")
	t.Setenv("HOSTAWAY_API_KEY", "secret")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("PROVIDER_RPS", "not-a-number")
	c := Load()
	assert.True(t, c.HostawayLiveMode)
	assert.Equal(t, "secret", c.HostawayKey)
	assert.Equal(t, time.Minute, c.CacheTTL)
	assert.Equal(t, 5, c.ProviderRPS)
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes "} {
		assert.True(t, truthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "on"} {
		assert.False(t, truthy(v), v)
	}
}
