package utils

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Security SecurityConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type SessionConfig struct {
	Secret      string
	ExpiryHours int
	CookieName  string
	Secure      bool
}

type SecurityConfig struct {
	LoginRateLimit    float64 // requests per second per IP on POST /sessions
	LoginRateBurst    int
	MoviesRequireAuth bool
	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxyHeaders bool
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

// LoadConfig reads an optional .env file, then environment variables over defaults.
func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24*14)
	v.SetDefault("SESSION_COOKIE", "movie_review_session")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("LOGIN_RATE_LIMIT", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 10)
	v.SetDefault("MOVIES_REQUIRE_AUTH", false)
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("OTEL_SERVICE_NAME", "movie-review")

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Secret:      v.GetString("SESSION_SECRET"),
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
			CookieName:  v.GetString("SESSION_COOKIE"),
			Secure:      v.GetBool("SESSION_SECURE"),
		},
		Security: SecurityConfig{
			LoginRateLimit:    v.GetFloat64("LOGIN_RATE_LIMIT"),
			LoginRateBurst:    v.GetInt("LOGIN_RATE_BURST"),
			MoviesRequireAuth: v.GetBool("MOVIES_REQUIRE_AUTH"),
			TrustProxyHeaders: v.GetBool("TRUST_PROXY_HEADERS"),
		},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if config.Session.Secret == "" {
		return nil, ErrMissingSessionSecret
	}

	return config, nil
}
