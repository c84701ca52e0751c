package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg SnakeConfig
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded = %+v, hardcoded = %+v", cfg, DefaultSnakeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if cfg.MoveInterval() != 80*time.Millisecond {
		t.Errorf("MoveInterval = %v", cfg.MoveInterval())
	}
	lo, hi := cfg.RespawnWindow()
	if lo != 3*time.Second || hi != 10*time.Second {
		t.Errorf("RespawnWindow = %v, %v", lo, hi)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
		ok     bool
	}{
		{"defaults", func(*SnakeConfig) {}, true},
		{"zero cell size", func(c *SnakeConfig) { c.Board.CellSize = 0 }, false},
		{"size not aligned", func(c *SnakeConfig) { c.Board.Size = 801 }, false},
		{"shrink not aligned", func(c *SnakeConfig) { c.Board.ShrinkStep = 40 }, false},
		{"min side too big", func(c *SnakeConfig) { c.Board.MinSide = 816 }, false},
		{"short snake", func(c *SnakeConfig) { c.Snake.InitialLength = 1 }, false},
		{"snake too long", func(c *SnakeConfig) { c.Snake.InitialLength = 51 }, false},
		{"zero interval", func(c *SnakeConfig) { c.Snake.MoveIntervalMS = 0 }, false},
		{"respawn swapped", func(c *SnakeConfig) { c.Food.RespawnMinMS = 20000 }, false},
		{"negative attempts", func(c *SnakeConfig) { c.Food.MaxAttempts = -1 }, false},
		{"no sampling", func(c *SnakeConfig) { c.Food.MaxAttempts = 0 }, true},
		{"small board", func(c *SnakeConfig) { c.Board.Size = 320 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	data := []byte("board:\n  size: 480\nsnake:\n  move_interval_ms: 120\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if cfg.Board.Size != 480 || cfg.Snake.MoveIntervalMS != 120 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep defaults
	if cfg.Board.ShrinkStep != 48 || cfg.Food.MaxAttempts != 64 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  size: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadSnake(invalid) = %v, expected ErrInvalid", err)
	}
}

func TestLoadSnakeLocalDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("food:\n  max_attempts: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if cfg.Food.MaxAttempts != 8 {
		t.Errorf("local config not used: max_attempts = %d", cfg.Food.MaxAttempts)
	}
}

func TestLoadSnakeEmbeddedFallback(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("fallback = %+v, expected defaults", cfg)
	}
}
