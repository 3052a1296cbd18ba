package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-ally/AllyTimeTracking/config"
	"github.com/lu-ally/AllyTimeTracking/holiday"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, holiday.HH, cfg.State())
	assert.True(t, cfg.Seed.Enabled)
	assert.True(t, cfg.Provisioner.Enabled)
	assert.Equal(t, time.Hour, cfg.Provisioner.Interval)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
	assert.Equal(t, 4, cfg.Report.Workers)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	// GIVEN: a YAML file and an environment variable for the same key
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
default_state: BY
http:
  port: 9000
  allowed_origins: ["https://time.example.com"]
database:
  path: /var/lib/timetracking/db.sqlite
log:
  level: debug
  format: console
`), 0o600))
	t.Setenv("HTTP_PORT", "9100")

	// WHEN: loading
	cfg, err := config.Load(path)
	require.NoError(t, err)

	// THEN: the environment wins, the file fills the rest
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, holiday.BY, cfg.State())
	assert.Equal(t, []string{"https://time.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "/var/lib/timetracking/db.sqlite", cfg.Database.Path)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_UnknownState(t *testing.T) {
	t.Setenv("DEFAULT_STATE", "XX")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "DEFAULT_STATE")
}

func TestLoad_UnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "TIMEZONE")
}

func TestLoad_ProvisionerDisabled(t *testing.T) {
	t.Setenv("PROVISION_ENABLED", "false")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Provisioner.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
