package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.Arena.Width != 1280 || cfg.Arena.Height != 720 {
		t.Fatalf("unexpected default arena size %dx%d", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Bot.FieldOfView != 120 {
		t.Fatalf("expected 120 degree default FOV, got %.1f", cfg.Bot.FieldOfView)
	}
	if !cfg.Evaluators.AttackEnabled {
		t.Fatal("attack evaluator should be enabled by default")
	}
}

func TestLoad_UserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	body := "bot:\n  vision_range: 450\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Bot.VisionRange != 450 {
		t.Fatalf("override not applied, vision_range=%.1f", cfg.Bot.VisionRange)
	}
	// Untouched keys keep their defaults.
	if cfg.Bot.MemorySpan != 5.0 {
		t.Fatalf("unrelated default clobbered, memory_span=%.1f", cfg.Bot.MemorySpan)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Arena.BotsPerTeam = 5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("re-loading: %v", err)
	}
	if back.Arena.BotsPerTeam != 5 {
		t.Fatalf("round trip lost bots_per_team, got %d", back.Arena.BotsPerTeam)
	}
}
