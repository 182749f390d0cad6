package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint == "" || cfg.SupportAddress == "" || cfg.StatePath == "" {
		t.Fatalf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "endpoint = \"https://relay.example.com/relay\"\nsite = \"example.com\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint != "https://relay.example.com/relay" || cfg.Site != "example.com" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.SupportAddress == "" {
		t.Fatalf("unset fields keep defaults")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("endpoint = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEndpointEnvOverride(t *testing.T) {
	t.Setenv("PLANNER_ENDPOINT", "https://override.example.com/relay")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint != "https://override.example.com/relay" {
		t.Fatalf("override ignored: %q", cfg.Endpoint)
	}
}
