package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS != DefaultFPS {
		t.Errorf("expected fps %d, got %d", DefaultFPS, cfg.FPS)
	}
	if cfg.Orb.IdleThreshold != 1331*time.Millisecond {
		t.Errorf("expected idle threshold 1331ms, got %s", cfg.Orb.IdleThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orb.yaml")
	data := "fps: 30\norb:\n  period: 6\n  idle_threshold: 2s\n  trail_lag: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.FPS)
	}
	if cfg.Orb.Period != 6 {
		t.Errorf("expected period 6, got %f", cfg.Orb.Period)
	}
	if cfg.Orb.IdleThreshold != 2*time.Second {
		t.Errorf("expected idle threshold 2s, got %s", cfg.Orb.IdleThreshold)
	}
	if cfg.Orb.TrailLag != 5 {
		t.Errorf("expected trail lag 5, got %d", cfg.Orb.TrailLag)
	}
	if cfg.Orb.TrailMax != 60 {
		t.Errorf("omitted trail_max should keep default, got %d", cfg.Orb.TrailMax)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "fps: [1, 2"},
		{"zero fps", "fps: 0"},
		{"negative period", "orb:\n  period: -1"},
		{"inverted scale", "orb:\n  min_scale: 2\n  max_scale: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "orb.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orb.yaml")
	cfg := DefaultConfig()
	cfg.Orb.ClickDuration = 450 * time.Millisecond
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Orb != cfg.Orb {
		t.Errorf("settings changed across save/load: %+v vs %+v", loaded.Orb, cfg.Orb)
	}
	if loaded.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Seed)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Orb.Period != 8 {
		t.Errorf("expected period 8, got %f", cfg.Orb.Period)
	}

	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets)+1 {
		t.Errorf("expected %d presets, got %d", len(Presets)+1, len(presets))
	}
	if presets[0] != "calm" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestLoadWithKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orb.yaml")
	if err := os.WriteFile(path, []byte("fps: 24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("calm")
	cfg, err := LoadWith(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 24 {
		t.Errorf("expected fps 24, got %d", cfg.FPS)
	}
	if cfg.Orb.Period != 8 {
		t.Errorf("expected preset period 8 kept, got %f", cfg.Orb.Period)
	}
	if base.FPS != DefaultFPS {
		t.Error("base config must not be modified")
	}
}
