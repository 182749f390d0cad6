package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tiertech/blueprint/internal/planner/config"
	"github.com/tiertech/blueprint/internal/planner/tui"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(cfg config.Config) error {
	p := tea.NewProgram(tui.New(cfg))
	_, err := p.Run()
	return err
}

func NewRoot() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   "planner",
		Short: "Conversational intake widget for the Blueprint site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.Path(), "config file location")
	root.AddCommand(initCmd())
	return root
}

// initCmd writes the default config file so deployments have something to
// edit.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default planner config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(config.DefaultConfigToml), 0o644); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
