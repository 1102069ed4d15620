package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/httpx"
)

const (
	ModeSingle = "single"
	ModeSplit  = "split"

	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	ServerMode  string // single, split (default: single)
	Port        int    // single mode listener (default: 3000)
	AuthPort    int    // split mode auth listener (default: 3001)
	SupportPort int    // split mode support listener (default: 3002)
	ScanPort    int    // split mode scan listener (default: 3003)

	StoreDriver string // memory, sqlite (default: memory)

	Env       string // dev, staging, prod (default: dev)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)

	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	ResetTokenTTL     time.Duration
	ResetSigningKey   string // Optional: random per process when empty
	PasswordPepper    string // Optional: random per process when empty
	SecretKey         string // Optional: seals TOTP secrets; random per process when empty
	TOTPIssuer        string
	FallbackFirstUser bool // Dev only: unauthenticated account calls act as user 1

	MaxJSONBodyBytes int64
	MaxUploadBytes   int64
	RateLimits       httpx.RateLimitProfiles

	ReadTimeout          time.Duration
	ShutdownGracePeriod  time.Duration
	HousekeepingInterval time.Duration
	ScanRetention        time.Duration
}

func LoadConfig() Config {
	return Config{
		ServerMode:  strings.ToLower(getEnvOrDefault("SERVER_MODE", ModeSingle)),
		Port:        getEnvIntOrDefault("PORT", 3000),
		AuthPort:    getEnvIntOrDefault("AUTH_PORT", 3001),
		SupportPort: getEnvIntOrDefault("SUPPORT_PORT", 3002),
		ScanPort:    getEnvIntOrDefault("SCAN_PORT", 3003),

		StoreDriver: strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMemory)),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		AccessTokenTTL:    getEnvDurationOrDefault("ACCESS_TOKEN_TTL", service.DefaultAccessTokenTTL),
		RefreshTokenTTL:   getEnvDurationOrDefault("REFRESH_TOKEN_TTL", service.DefaultRefreshTokenTTL),
		ResetTokenTTL:     getEnvDurationOrDefault("RESET_TOKEN_TTL", service.DefaultResetTokenTTL),
		ResetSigningKey:   os.Getenv("RESET_SIGNING_KEY"),
		PasswordPepper:    os.Getenv("PASSWORD_PEPPER"),
		SecretKey:         os.Getenv("SECRET_ENCRYPTION_KEY"),
		TOTPIssuer:        getEnvOrDefault("TOTP_ISSUER", service.DefaultTOTPIssuer),
		FallbackFirstUser: getEnvBoolOrDefault("AUTH_DEV_FALLBACK_FIRST_USER", false),

		MaxJSONBodyBytes: getEnvInt64OrDefault("MAX_JSON_BODY_BYTES", 1<<20),
		MaxUploadBytes:   getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 32<<20),
		RateLimits:       httpx.RateLimitProfilesFromEnv(),

		ReadTimeout:          getEnvDurationOrDefault("HTTP_READ_TIMEOUT", 60*time.Second),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
		ScanRetention:        getEnvDurationOrDefault("SCAN_RETENTION", 24*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
