package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort    string
	StaticDir  string
	TrustProxy bool

	JWTKey      []byte
	JWTExp      time.Duration
	EnforceAuth bool

	// DatabaseURL selects the networked backend when set; SQLitePath is used otherwise.
	DatabaseURL string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	GeminiAPIKey string
	GeminiModel  string
}

// DefaultJWTSecret is the development fallback for JWT_SECRET.
const DefaultJWTSecret = "defaultsecret"

var AppConfig *Config

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "3000"),
		StaticDir:      getEnv("STATIC_DIR", "dist"),
		TrustProxy:     getEnvAsBool("TRUST_PROXY", false),
		JWTKey:         []byte(getEnv("JWT_SECRET", DefaultJWTSecret)),
		JWTExp:         time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		EnforceAuth:    getEnvAsBool("ENFORCE_AUTH", false),
		DatabaseURL:    strings.TrimSpace(getEnv("DATABASE_URL", "")),
		SQLitePath:     getEnv("SQLITE_PATH", "cyber.db"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		CacheTTL:       time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
	}
	return AppConfig
}

// CheckSecrets refuses the development JWT secret once tokens actually
// guard anything.
func (c *Config) CheckSecrets() error {
	if c.EnforceAuth && string(c.JWTKey) == DefaultJWTSecret {
		return errors.New("ENFORCE_AUTH=true requires JWT_SECRET to be set to a non-default value")
	}
	return nil
}

// UsesPostgres reports whether the networked backend is configured.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
