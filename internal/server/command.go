package server

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehimavote/evote/internal/logging"
	"github.com/ehimavote/evote/internal/server/config"
)

// NewRootCommand builds the emulator command. Flags default to the values of
// config.LoadDefaults.
func NewRootCommand() *cobra.Command {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	var logLevel string

	cmd := &cobra.Command{
		Use:   "evote-emulator",
		Short: "Local identity and profile store for the E-Hima Vote client",
		Long: `Serve the account sign-up/sign-in and profile document endpoints the
E-Hima Vote client talks to, backed by memory.

Example:
  evote-emulator --addr 127.0.0.1:9099 --seed ./seed.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := slog.NewJSONHandler(cmd.OutOrStdout(), &slog.HandlerOptions{Level: logging.ParseLevel(logLevel)})
			app, err := NewApp(cfg, logging.NewSlogLogger(slog.New(h)))
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.EndpointAddrHTTP, "addr", cfg.EndpointAddrHTTP, "HTTP listen address")
	f.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key clients must send")
	f.StringVar(&cfg.ProjectID, "project", cfg.ProjectID, "project id")
	f.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "HMAC secret for id tokens")
	f.DurationVar(&cfg.TokenValidityDuration, "token-ttl", cfg.TokenValidityDuration, "id token lifetime")
	f.IntVar(&cfg.PasswordCost, "bcrypt-cost", cfg.PasswordCost, "bcrypt cost")
	f.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "YAML file with users and profiles to load")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("emulator failed", "error", err)
		os.Exit(1)
	}
}
