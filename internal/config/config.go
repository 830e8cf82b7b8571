package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	LogLevel string

	KafkaBrokers []string
	EventsTopic  string

	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() Config {
	return Config{
		Env:  EnvDefault("APP_ENV", "development"),
		Port: EnvIntDefault("PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(os.Getenv("JWT_ACCESS_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),

		AccessTokenTTL:  EnvDurationDefault("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "catalog_events"),

		SeedAdminName:     EnvDefault("SEED_ADMIN_NAME", "Super Admin"),
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

// Validate fails fast on configuration the service cannot run without.
func (c Config) Validate() {
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	MustNonEmpty(string(c.JWTAccessSecret), "JWT_ACCESS_SECRET")
	MustNonEmpty(string(c.JWTRefreshSecret), "JWT_REFRESH_SECRET")
}

// MustNonEmpty aborts startup when a required variable is unset.
func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("required environment variable %s is not set", envName)
	}
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
