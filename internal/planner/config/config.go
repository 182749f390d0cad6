// Package config loads the planner client configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the planner's deployment-time configuration.
type Config struct {
	// Endpoint is the relay URL submissions are posted to.
	Endpoint string `toml:"endpoint"`
	// Site names the submission origin; defaults to the local hostname.
	Site string `toml:"site"`
	// SupportAddress receives the mailto fallback when automated send fails.
	SupportAddress string `toml:"support_address"`
	// StatePath locates the sqlite draft mirror.
	StatePath string `toml:"state_path"`
}

const DefaultConfigToml = `# Blueprint planner configuration

endpoint = "http://127.0.0.1:8787/relay"
support_address = "support@tiertechtools.com"

# site = "tiertechtools.com"
# state_path = "~/.config/blueprint/planner.db"
`

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Endpoint:       "http://127.0.0.1:8787/relay",
		SupportAddress: "support@tiertechtools.com",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.StatePath = filepath.Join(dir, "blueprint", "planner.db")
	} else {
		cfg.StatePath = filepath.Join(os.TempDir(), "blueprint-planner.db")
	}
	return cfg
}

// Load reads the config file at path, falling back to defaults when the file
// is absent. A present-but-invalid file is an error; PLANNER_ENDPOINT
// overrides the endpoint either way.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}
	if ep := os.Getenv("PLANNER_ENDPOINT"); ep != "" {
		cfg.Endpoint = ep
	}
	return cfg, nil
}

// Path returns the default config file location.
func Path() string {
	if p := os.Getenv("PLANNER_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "blueprint-config.toml")
	}
	return filepath.Join(dir, "blueprint", "config.toml")
}
