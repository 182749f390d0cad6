package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tiertech/blueprint/internal/planner/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRoot()
	if cmd == nil || cmd.Use != "planner" {
		t.Fatalf("expected planner root command")
	}
	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	if !strings.Contains(strings.Join(names, " "), "init") {
		t.Fatalf("expected init subcommand, got %v", names)
	}
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	t.Setenv("PLANNER_CONFIG", path)

	cmd := NewRoot()
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != config.DefaultConfigToml {
		t.Fatalf("unexpected config contents")
	}

	// Second init refuses to clobber.
	cmd = NewRoot()
	cmd.SetArgs([]string{"init"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}
