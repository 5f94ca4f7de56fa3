package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Empty runs on the in-memory store
	TablePrefix string
	CORSOrigins string
	// Identity provider
	AuthURL     string
	JWKSURL     string // AUTH_URL + /auth/v1/.well-known/jwks.json unless JWKS_URL is set
	AdminUserID string
	// Listing cache
	RedisURL string // Empty disables the cache
	CacheTTL time.Duration
	// Media host
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryBaseURL      string
	// Presentation
	DefaultLanguage string
	PageSize        int
	// Log file rotation, disabled when LogDir is empty
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool // Enables debug logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	authURL := strings.TrimRight(getEnv("AUTH_URL", ""), "/")

	jwksURL := getEnv("JWKS_URL", "")
	if jwksURL == "" && authURL != "" {
		jwksURL = authURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		AuthURL:     authURL,
		JWKSURL:     jwksURL,
		AdminUserID: getEnv("ADMIN_USER_ID", ""),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		CloudinaryBaseURL:      getEnv("CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		PageSize:        getPageSize(),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),

		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

// getPageSize clamps PAGE_SIZE into [1, MaxPageSize].
func getPageSize() int {
	size := getInt("PAGE_SIZE", DefaultPageSize)
	if size < 1 {
		return DefaultPageSize
	}
	return min(size, MaxPageSize)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt falls back to the default when the value is missing or not a number
func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

// getDuration accepts Go durations ("90s") or whole seconds ("90")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
