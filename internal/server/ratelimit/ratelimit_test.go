package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketBurstThenRefill(t *testing.T) {
	// 1000 tokens/sec so refill is observable without sleeping long.
	bucket := newTokenBucket(3, 1000)

	for i := 0; i < 3; i++ {
		assert.True(t, bucket.allow(), "request %d within burst", i)
	}
	assert.False(t, bucket.allow(), "burst exhausted")

	time.Sleep(10 * time.Millisecond)
	assert.True(t, bucket.allow(), "tokens refill over time")
}

func TestTokenBucketNeverExceedsCapacity(t *testing.T) {
	bucket := newTokenBucket(2, 1000)
	time.Sleep(20 * time.Millisecond)

	remaining, _ := bucket.getStatus()
	assert.LessOrEqual(t, remaining, 2)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	t.Run("health check is unlimited", func(t *testing.T) {
		config := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, config)
		assert.Equal(t, 0, config.Limit)
	})

	t.Run("exact match", func(t *testing.T) {
		config := MatchEndpoint("/process", "POST", configs)
		require.NotNil(t, config)
		assert.Equal(t, 30, config.Limit)
		assert.Equal(t, time.Hour, config.Window)
		assert.Equal(t, 5, config.Burst)
	})

	t.Run("prefix match", func(t *testing.T) {
		config := MatchEndpoint("/runs/0b6f9f3e", "DELETE", configs)
		require.NotNil(t, config)
		assert.Equal(t, 100, config.Limit)
	})

	t.Run("method must match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/process", "GET", configs))
	})

	t.Run("unknown path uses default", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/runs", "GET", configs))
	})
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/process", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiterEnforcesBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	// /process allows a burst of 5 per client.
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/process", "POST")
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, info := limiter.Allow("1.2.3.4", "/process", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// A different client has its own bucket.
	allowed, _ = limiter.Allow("5.6.7.8", "/process", "POST")
	assert.True(t, allowed)
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{"10.0.0.1": true},
		Blacklist:       map[string]bool{"10.0.0.2": true},
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/process", "POST")
		assert.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/health", "GET")
	assert.False(t, allowed, "blacklisted client is always refused")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "")

	config := LoadConfig()
	assert.True(t, config.Enabled)
	assert.Equal(t, 1000, config.DefaultLimit)
	assert.Equal(t, time.Minute, config.DefaultWindow)
	assert.NotEmpty(t, config.EndpointConfigs)
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	config := LoadConfig()
	assert.False(t, config.Enabled)
}

func TestParseIPList(t *testing.T) {
	assert.Empty(t, parseIPList(""))
	assert.Equal(t, map[string]bool{"1.2.3.4": true, "5.6.7.8": true},
		parseIPList("1.2.3.4, 5.6.7.8"))
}
