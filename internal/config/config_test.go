package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DefaultProviders, cfg.Search.Providers)
	assert.Equal(t, "PKR", cfg.Search.Currency)
	assert.Equal(t, 30*time.Minute, cfg.Partner.TokenTTL)
	assert.Equal(t, "Asia/Karachi", cfg.Timezone)
}

func TestLoad_RequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SKYBOOK_PROVIDERS", " Airblue, oneapi ,,")
	t.Setenv("SKYBOOK_SEARCH_TIMEOUT", "5s")
	t.Setenv("SKYBOOK_FOLLOWUP_THRESHOLD", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"airblue", "oneapi"}, cfg.Search.Providers)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 0.85, cfg.AI.FollowUpThreshold)
}

func TestLoad_FileOverlay(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "skybook.toml")
	content := `
timezone = "UTC"

[search]
providers = ["airsial"]

[partner]
username = "agent"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SKYBOOK_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"airsial"}, cfg.Search.Providers)
	assert.Equal(t, "agent", cfg.Partner.Username)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "PKR", cfg.Search.Currency)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
