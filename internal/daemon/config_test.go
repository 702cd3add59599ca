package daemon_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("MURIM_HOME", t.TempDir())

	cfg := daemon.DefaultConfig()
	if cfg.API.Host != "127.0.0.1" || cfg.API.Port != 7800 {
		t.Errorf("api defaults = %s:%d", cfg.API.Host, cfg.API.Port)
	}
	if cfg.Game.PetStageAtLeast {
		t.Error("pet stage should default to exact-landing mode")
	}
	if cfg.Game.MentorPersona != "ORTHODOX" {
		t.Errorf("persona = %q, want ORTHODOX", cfg.Game.MentorPersona)
	}
	if cfg.Narrative.Model != "gemini-3-flash-preview" {
		t.Errorf("model = %q", cfg.Narrative.Model)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("prometheus should be off by default")
	}
}

func TestLoadConfig_NoFileReturnsDefaults(t *testing.T) {
	t.Setenv("MURIM_HOME", t.TempDir())

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 7800 {
		t.Errorf("port = %d, want default 7800", cfg.API.Port)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MURIM_HOME", dir)

	data := `
[api]
port = 9100

[game]
pet_stage_at_least = true
mentor_persona = "HEAVENLY_DEMON"

[telemetry]
prometheus = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.API.Port)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("host = %q, unset keys should keep defaults", cfg.API.Host)
	}
	if !cfg.Game.PetStageAtLeast {
		t.Error("pet_stage_at_least not applied")
	}
	if cfg.Game.MentorPersona != "HEAVENLY_DEMON" {
		t.Errorf("persona = %q", cfg.Game.MentorPersona)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus not applied")
	}
}

func TestSaveConfigRoundtrip(t *testing.T) {
	t.Setenv("MURIM_HOME", t.TempDir())

	cfg := daemon.DefaultConfig()
	cfg.API.Port = 8123
	cfg.Game.PotionPollInterval = "5s"
	if err := daemon.SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 8123 {
		t.Errorf("port = %d, want 8123", loaded.API.Port)
	}
	if loaded.PotionPoll() != 5*time.Second {
		t.Errorf("potion poll = %v, want 5s", loaded.PotionPoll())
	}
}

func TestDurationParsing(t *testing.T) {
	cfg := daemon.DefaultConfig()

	cfg.Game.PotionPollInterval = "bogus"
	if cfg.PotionPoll() != 10*time.Second {
		t.Errorf("bogus interval should fall back to 10s, got %v", cfg.PotionPoll())
	}

	cfg.Narrative.Timeout = ""
	if cfg.NarrativeTimeout() != 20*time.Second {
		t.Errorf("empty timeout should fall back to 20s, got %v", cfg.NarrativeTimeout())
	}

	cfg.Narrative.Timeout = "45s"
	if cfg.NarrativeTimeout() != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.NarrativeTimeout())
	}
}
