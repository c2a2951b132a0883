package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "translation-service",
		Short:         "Translation management API",
		Long:          "Serves the translation API and runs its maintenance tasks. Configuration comes from the environment.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE:  runMigrate,
		},
		newSeedCmd(),
		newExportCmd(),
	)
	return root
}

// loadConfig reads the environment and configures the global logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	app.InitializeLogger(cfg.Log)
	return cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	db, err := app.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("driver", string(db.Dialect())).Msg("Migrations applied")
	return nil
}

func newSeedCmd() *cobra.Command {
	var opts app.SeedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create default locales, tags and the admin account",
		Long: `Create the default locales, tags and admin account when they are missing.
With --translations, also insert that many synthetic translation values spread
across the default locales.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Translations < 0 {
				return fmt.Errorf("--translations must not be negative")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			db, err := app.InitializeDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			services := app.InitializeServices(db, cfg)
			defer services.Close()

			if err := app.Seed(ctx, db, services.Auth, cfg.Seed, opts); err != nil {
				return err
			}
			log.Info().Int("translations", opts.Translations).Msg("Seed completed")
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Translations, "translations", 0, "Number of synthetic translation values to insert")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", app.DefaultSeedBatchSize, "Values written per transaction")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		locale string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the translations of a locale as a key/value file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			db, err := app.InitializeDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			// The export cache is per process, so a one-shot export skips it.
			cfg.Cache.Enabled = false
			services := app.InitializeServices(db, cfg)

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			code, err := app.WriteExport(ctx, services.Translations, locale, format, w)
			if err != nil {
				return err
			}
			log.Info().Str("locale", code).Str("format", format).Str("out", out).Msg("Export written")
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Locale code; defaults to the first locale")
	cmd.Flags().StringVar(&format, "format", app.ExportFormatJSON, "Output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; defaults to stdout")
	return cmd
}
