// Package daemon manages the Murim daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Game      GameConfig      `toml:"game"`
	Narrative NarrativeConfig `toml:"narrative"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// GameConfig tunes game rules.
type GameConfig struct {
	// PetStageAtLeast promotes pets at or past a stage threshold instead
	// of only on an exact landing.
	PetStageAtLeast    bool   `toml:"pet_stage_at_least"`
	PotionPollInterval string `toml:"potion_poll_interval"`
	MentorPersona      string `toml:"mentor_persona"`
}

// NarrativeConfig controls the story/mentor text generator.
type NarrativeConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns sensible defaults for a fresh install.
func DefaultConfig() Config {
	homeDir := murimHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7800,
			CORSOrigins: []string{"*"},
		},
		Game: GameConfig{
			PetStageAtLeast:    false,
			PotionPollInterval: "10s",
			MentorPersona:      "ORTHODOX",
		},
		Narrative: NarrativeConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-3-flash-preview",
			Timeout: "20s",
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "murim.log"),
		},
	}
}

// LoadConfig reads config from ~/.murim/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(murimHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.murim/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(murimHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// PotionPoll parses the potion expiry poll interval.
func (c Config) PotionPoll() time.Duration {
	return parseDuration(c.Game.PotionPollInterval, 10*time.Second)
}

// NarrativeTimeout parses the narrative API timeout.
func (c Config) NarrativeTimeout() time.Duration {
	return parseDuration(c.Narrative.Timeout, 20*time.Second)
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// murimHome returns the Murim data directory.
func murimHome() string {
	if env := os.Getenv("MURIM_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".murim")
}

// MurimHome is exported for use by other packages.
func MurimHome() string {
	return murimHome()
}
