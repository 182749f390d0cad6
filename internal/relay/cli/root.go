package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiertech/blueprint/internal/relay/config"
	"github.com/tiertech/blueprint/internal/relay/mail"
	"github.com/tiertech/blueprint/internal/relay/server"
)

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Email relay for planner submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			cfg := config.FromEnv()
			if !cfg.Configured() {
				log.Warn("SMTP_USER/SMTP_PASS missing; every request will fail until configured")
			}
			srv := server.New(cfg, mail.NewSMTPSender(cfg), log)
			return srv.ListenAndServe()
		},
	}
}
