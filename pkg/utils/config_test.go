package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "movie-review", config.App.Name)
	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, "movie_review_session", config.Session.CookieName)
	assert.Equal(t, 24*14, config.Session.ExpiryHours)
	assert.False(t, config.Security.MoviesRequireAuth)
	assert.False(t, config.Security.TrustProxyHeaders)
	assert.Empty(t, config.Tracing.Endpoint)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "reviews")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("LOGIN_RATE_LIMIT", "0.5")
	t.Setenv("MOVIES_REQUIRE_AUTH", "true")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", config.App.Port)
	assert.Equal(t, "reviews", config.Database.Name)
	assert.Equal(t, int32(25), config.Database.MaxConns)
	assert.True(t, config.Session.Secure)
	assert.InDelta(t, 0.5, config.Security.LoginRateLimit, 1e-9)
	assert.True(t, config.Security.MoviesRequireAuth)
	assert.True(t, config.Security.TrustProxyHeaders)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingSessionSecret)
}
