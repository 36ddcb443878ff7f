package main

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/voyo-music/canonizer/internal/auth"
	"github.com/voyo-music/canonizer/internal/catalog"
	"github.com/voyo-music/canonizer/internal/ingest"
	"github.com/voyo-music/canonizer/internal/models"
	"github.com/voyo-music/canonizer/internal/notifications"
	"github.com/voyo-music/canonizer/internal/reports"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		limit      int
		platforms  string
		contentDir string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one canonizer pass over the siphon content trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.cfg
			if contentDir != "" {
				cfg.ContentDir = contentDir
			}

			var store catalog.Store
			if !dryRun {
				if err := cfg.RequireSupabase(); err != nil {
					return err
				}

				timeout := time.Duration(cfg.UpsertTimeoutSeconds) * time.Second
				supabase, err := catalog.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.MomentsTable, timeout)
				if err != nil {
					return err
				}

				// Sign in through the auth bridge when credentials are
				// configured; otherwise writes go out under the anon key.
				if cfg.SupabaseEmail != "" && cfg.SupabasePassword != "" {
					authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SessionFile, timeout)
					session, err := authClient.CurrentSession(cmd.Context(), cfg.SupabaseEmail, cfg.SupabasePassword)
					if err != nil {
						return err
					}
					supabase.SetAccessToken(session.AccessToken)
					logrus.Info("Authenticated with the VOYO identity service")
				}
				store = supabase
			}

			var archive reports.Store
			if localStore, err := reports.NewLocalStore(cfg.ReportsDir); err != nil {
				logrus.Warnf("Run reports will not be archived: %v", err)
			} else {
				archive = localStore
			}

			var notifier notifications.NotificationInterface
			if cfg.WebhookURL != "" || cfg.NotificationEmail != "" {
				notifier = notifications.NewService(cfg)
			}

			service := ingest.NewService(cfg, store, notifier, archive)
			report, err := service.Run(cmd.Context(), ingest.Options{
				DryRun:    dryRun,
				Limit:     limit,
				Platforms: parsePlatforms(platforms),
			})
			if err != nil {
				return err
			}

			ingest.WriteSummary(os.Stdout, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip the write stage and print a preview summary only")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap total files processed across all platforms (0 = no cap)")
	cmd.Flags().StringVar(&platforms, "platform", "", "Comma-separated platform subset (instagram,tiktok,youtube)")
	cmd.Flags().StringVar(&contentDir, "content-dir", "", "Override the siphon content directory")

	return cmd
}

// parsePlatforms resolves the --platform flag; unrecognized names are
// silently dropped.
func parsePlatforms(flag string) []models.Platform {
	if flag == "" {
		return nil
	}

	var platforms []models.Platform
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if platform, ok := models.ParsePlatform(name); ok {
			platforms = append(platforms, platform)
		} else {
			logrus.Debugf("Ignoring unrecognized platform %q", name)
		}
	}
	return platforms
}
