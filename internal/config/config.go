package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "THERMAL"

type Config struct {
	Port       string           `mapstructure:"port"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Building   BuildingConfig   `mapstructure:"building"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// SimulationConfig holds the scenario defaults used when a request leaves a field out.
type SimulationConfig struct {
	StartTemp        float64 `mapstructure:"start_temp"`
	TMin             float64 `mapstructure:"t_min"`
	TMax             float64 `mapstructure:"t_max"`
	InternalGain     float64 `mapstructure:"internal_gain"`
	DtSeconds        float64 `mapstructure:"dt_seconds"`
	Hours            float64 `mapstructure:"hours"`
	MaxHours         float64 `mapstructure:"max_hours"`
	StreamChunkHours float64 `mapstructure:"stream_chunk_hours"`
	// Tariff is the energy price per kWh.
	Tariff float64 `mapstructure:"tariff"`
}

type BuildingConfig struct {
	DefaultMaterial string `mapstructure:"default_material"`
}

var defaults = map[string]any{
	"port":                          "8080",
	"log.level":                     "info",
	"log.format":                    "console",
	"db.path":                       "thermal_planner.db",
	"auth.signing_key":              "change-me",
	"auth.token_ttl":                "1h",
	"simulation.start_temp":         20.0,
	"simulation.t_min":              -5.0,
	"simulation.t_max":              5.0,
	"simulation.internal_gain":      0.0,
	"simulation.dt_seconds":         60.0,
	"simulation.hours":              24.0,
	"simulation.max_hours":          24.0 * 31,
	"simulation.stream_chunk_hours": 1.0,
	"simulation.tariff":             0.30,
	"building.default_material":     "Brick_Red_380",
}

// Load reads configs/config.yml (or the file at path, if given) and THERMAL_* environment
// overrides on top of the defaults. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Auth.SigningKey == "" {
		return errors.New("config: auth.signing_key must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: auth.token_ttl must be positive")
	}
	s := c.Simulation
	if s.DtSeconds <= 0 {
		return errors.New("config: simulation.dt_seconds must be positive")
	}
	if s.TMin > s.TMax {
		return errors.New("config: simulation.t_min must not exceed simulation.t_max")
	}
	if s.Hours < 0 || s.MaxHours <= 0 || s.Hours > s.MaxHours {
		return errors.New("config: simulation.hours must be within (0, max_hours]")
	}
	if s.StreamChunkHours <= 0 {
		return errors.New("config: simulation.stream_chunk_hours must be positive")
	}
	if s.Tariff < 0 {
		return errors.New("config: simulation.tariff must not be negative")
	}
	return nil
}
