package app

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ripple.yaml")
	if err := os.WriteFile(path, []byte("wave:\n  beta: 0.9\n  omega: 3\nrender:\n  palette: ocean\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-omega", "11", "-width", "64"}); err != nil {
		t.Fatal(err)
	}

	file, err := cfg.Resolve(fs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Beta != 0.9 || file.Wave.Beta != 0.9 {
		t.Fatalf("beta from file lost: %v", cfg.Beta)
	}
	if cfg.Omega != 11 {
		t.Fatalf("omega flag ignored: %v", cfg.Omega)
	}
	if cfg.Width != 64 || cfg.Height != 600 {
		t.Fatalf("size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Palette != "ocean" {
		t.Fatalf("palette %q", cfg.Palette)
	}

	opts, err := cfg.Options(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Params.Omega != 11 || opts.Width != 64 {
		t.Fatalf("options %+v", opts)
	}
}

func TestResolveRejectsBadFlag(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-lambda", "0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Resolve(fs); err == nil {
		t.Fatal("lambda 0 accepted")
	}
}
