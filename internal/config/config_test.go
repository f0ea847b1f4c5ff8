package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ripple/internal/palette"
	"ripple/internal/wave"
)

func TestDefaultsMatchStartupValues(t *testing.T) {
	cfg := Default()
	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Fatalf("default grid %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Screen.TPS != 100 {
		t.Fatalf("default tps %d", cfg.Screen.TPS)
	}
	if cfg.Params() != wave.DefaultParams() {
		t.Fatalf("default params %+v", cfg.Params())
	}
	id, err := cfg.PaletteID()
	if err != nil || id != palette.Default {
		t.Fatalf("default palette %v, %v", id, err)
	}
	if cfg.Generator.Backend != wave.DefaultBackend {
		t.Fatalf("default backend %q", cfg.Generator.Backend)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ripple.yaml")
	body := "wave:\n  omega: 12.5\nrender:\n  palette: turbo\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Wave.Omega != 12.5 {
		t.Fatalf("omega = %v", cfg.Wave.Omega)
	}
	if cfg.Wave.Beta != 0.3 || cfg.Wave.Lambda != 100 {
		t.Fatalf("untouched fields changed: %+v", cfg.Wave)
	}
	if cfg.Render.Palette != "turbo" {
		t.Fatalf("palette = %q", cfg.Render.Palette)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := "screen:\n  width: 0\nwave:\n  lambda: -1\nrender:\n  palette: plaid\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, wave.ErrInvalidParameter) {
		t.Fatalf("missing wave error: %v", err)
	}
	if !errors.Is(err, palette.ErrUnknownPalette) {
		t.Fatalf("missing palette error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Wave.Beta = 0.75
	cfg.Generator.ClearOnOrigin = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *back != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, cfg)
	}
}
