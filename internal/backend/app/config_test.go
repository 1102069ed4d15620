package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_MODE", "PORT", "AUTH_PORT", "SUPPORT_PORT", "SCAN_PORT", "STORE_DRIVER",
		"ACCESS_TOKEN_TTL", "AUTH_DEV_FALLBACK_FIRST_USER", "MAX_JSON_BODY_BYTES",
		"MAX_UPLOAD_BYTES", "HOUSEKEEPING_INTERVAL", "SCAN_RETENTION", "TOTP_ISSUER",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, ModeSingle, cfg.ServerMode)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, 3001, cfg.AuthPort)
	require.Equal(t, 3002, cfg.SupportPort)
	require.Equal(t, 3003, cfg.ScanPort)
	require.Equal(t, DriverMemory, cfg.StoreDriver)
	require.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	require.False(t, cfg.FallbackFirstUser)
	require.Equal(t, int64(1<<20), cfg.MaxJSONBodyBytes)
	require.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	require.Equal(t, 10*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 24*time.Hour, cfg.ScanRetention)
	require.Equal(t, "Smetchik", cfg.TOTPIssuer)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_MODE", "SPLIT")
	t.Setenv("PORT", "8080")
	t.Setenv("SCAN_PORT", "not-a-port")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("HOUSEKEEPING_INTERVAL", "5")
	t.Setenv("AUTH_DEV_FALLBACK_FIRST_USER", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := LoadConfig()

	require.Equal(t, ModeSplit, cfg.ServerMode)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 3003, cfg.ScanPort)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
	require.True(t, cfg.FallbackFirstUser)
	require.Equal(t, int64(1024), cfg.MaxUploadBytes)
}
