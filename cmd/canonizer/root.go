package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/voyo-music/canonizer/internal/config"
)

// commandContext carries the loaded configuration into subcommands.
type commandContext struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "canonizer",
		Short:         "VOYO moment canonizer",
		Long:          "Ingests siphon metadata drops and canonizes them into the VOYO moments catalog.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load environment variables from .env file if it exists
			if err := godotenv.Load(); err != nil {
				logrus.Debug("No .env file found, using environment variables")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx.cfg = cfg

			logrus.SetLevel(logrus.InfoLevel)
			if cfg.Debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			logrus.SetFormatter(&logrus.JSONFormatter{})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
