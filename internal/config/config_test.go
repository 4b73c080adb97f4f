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
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 60.0, cfg.Simulation.DtSeconds)
	assert.Equal(t, 744.0, cfg.Simulation.MaxHours)
	assert.Equal(t, 0.30, cfg.Simulation.Tariff)
	assert.Equal(t, "Brick_Red_380", cfg.Building.DefaultMaterial)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
auth:
  token_ttl: 30m
simulation:
  t_min: -10
  t_max: 2
`), 0o600))

	t.Setenv("THERMAL_DB_PATH", "/tmp/other.db")
	t.Setenv("THERMAL_SIMULATION_HOURS", "48")
	t.Setenv("THERMAL_SIMULATION_TARIFF", "0.12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, -10.0, cfg.Simulation.TMin)
	assert.Equal(t, "/tmp/other.db", cfg.DB.Path)
	assert.Equal(t, 48.0, cfg.Simulation.Hours)
	assert.Equal(t, 0.12, cfg.Simulation.Tariff)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty key", func(c *Config) { c.Auth.SigningKey = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"zero dt", func(c *Config) { c.Simulation.DtSeconds = 0 }},
		{"inverted range", func(c *Config) { c.Simulation.TMin, c.Simulation.TMax = 5, -5 }},
		{"hours above max", func(c *Config) { c.Simulation.Hours = c.Simulation.MaxHours + 1 }},
		{"zero chunk", func(c *Config) { c.Simulation.StreamChunkHours = 0 }},
		{"negative tariff", func(c *Config) { c.Simulation.Tariff = -0.1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
