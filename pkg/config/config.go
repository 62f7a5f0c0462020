package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is the signing secret used when JWT_SECRET_KEY is unset.
// It is public and must never be used outside local development.
const DevJWTSecret = "dev-secret-key"

type Config struct {
	Port        string
	DatabaseURL string
	DBMaxConns  int

	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	AuthScheme    string
	BcryptCost    int
	SeedDemoUsers bool

	SessionTTL          time.Duration
	SessionCookieSecure bool
	SessionStore        string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int

	LogLevel  string
	LogFormat string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 10),

		JWTSecret:     getEnv("JWT_SECRET_KEY", DevJWTSecret),
		JWTIssuer:     getEnv("JWT_ISSUER", "buildings-api"),
		JWTTTL:        time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		AuthScheme:    getEnv("AUTH_SCHEME", "Bearer"),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		SeedDemoUsers: getEnvBool("SEED_USERS", true),

		SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		SessionStore:        strings.ToLower(getEnv("SESSION_STORE", "memory")),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// InsecureSecret reports whether the development signing secret is in use.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
