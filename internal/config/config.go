package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the gateway.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	PlatformBaseURL  string
	PlatformTimeout  time.Duration
	RedisURL         string
	NATSURL          string
	NATSSubject      string
	JWTSecret        string
	SessionTTL       time.Duration
	SnapshotCacheTTL time.Duration
	FeedCacheTTL     time.Duration
	DisplayTimezone  string
	ChatRateLimit    int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// DisplayLocation resolves the time zone used for status labels.
func (c Config) DisplayLocation() (*time.Location, error) {
	if strings.TrimSpace(c.DisplayTimezone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone: %w", err)
	}
	return loc, nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SKILLBRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Skill Bridge Gateway")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("platform.timeout", "10s")
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("nats.subject", "skillbridge.events")
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("snapshot.cache_ttl", "30s")
	v.SetDefault("feed.cache_ttl", "45s")
	v.SetDefault("display.timezone", "UTC")
	v.SetDefault("chat.rate_limit", 20)

	durations := map[string]time.Duration{}
	for _, key := range []string{"platform.timeout", "session.ttl", "snapshot.cache_ttl", "feed.cache_ttl"} {
		parsed, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = parsed
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		PlatformBaseURL:  strings.TrimRight(v.GetString("platform.base_url"), "/"),
		PlatformTimeout:  durations["platform.timeout"],
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		NATSSubject:      v.GetString("nats.subject"),
		JWTSecret:        v.GetString("jwt.secret"),
		SessionTTL:       durations["session.ttl"],
		SnapshotCacheTTL: durations["snapshot.cache_ttl"],
		FeedCacheTTL:     durations["feed.cache_ttl"],
		DisplayTimezone:  v.GetString("display.timezone"),
		ChatRateLimit:    v.GetInt("chat.rate_limit"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.PlatformBaseURL == "" {
		return Config{}, fmt.Errorf("platform base url must be provided")
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 168 * time.Hour
	}

	if cfg.ChatRateLimit <= 0 {
		cfg.ChatRateLimit = 20
	}

	if _, err := cfg.DisplayLocation(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
