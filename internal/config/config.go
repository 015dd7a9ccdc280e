package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	LogLevel            string
	Timezone            string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	NATSSubject         string
	RedisEventChannel   string
	JWTSecret           string
	SnapshotCacheTTL    time.Duration
	SubjectItemsPerPage int
	DemoUserID          string
	DemoSeed            bool
	RateLimitMax        int
	RateLimitWindow     time.Duration
	CORSAllowOrigins    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Location resolves the configured timezone used when a request does not name one.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CALENDAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Assignment Calendar API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("nats.subject", "calendar.assignments")
	v.SetDefault("snapshot.cache_ttl", "2m")
	v.SetDefault("subjects.items_per_page", 3)
	v.SetDefault("redis.event_channel", "calendar:assignments")
	v.SetDefault("demo.user_id", "demo")
	v.SetDefault("demo.seed", true)
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("cors.allow_origins", "*")

	ttl, err := parseDuration(v.GetString("snapshot.cache_ttl"), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid snapshot cache ttl: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		LogLevel:            strings.ToLower(v.GetString("log.level")),
		Timezone:            v.GetString("app.timezone"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		NATSSubject:         v.GetString("nats.subject"),
		RedisEventChannel:   v.GetString("redis.event_channel"),
		JWTSecret:           v.GetString("jwt.secret"),
		SnapshotCacheTTL:    ttl,
		SubjectItemsPerPage: v.GetInt("subjects.items_per_page"),
		DemoUserID:          strings.TrimSpace(v.GetString("demo.user_id")),
		DemoSeed:            v.GetBool("demo.seed"),
		RateLimitMax:        v.GetInt("rate_limit.max"),
		RateLimitWindow:     window,
		CORSAllowOrigins:    v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.SubjectItemsPerPage <= 0 {
		cfg.SubjectItemsPerPage = 3
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}
