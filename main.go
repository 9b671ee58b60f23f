package main

import (
	"context"
	"fmt"
	"os"

	"waitlist-service/internal/bootstrap"
	"waitlist-service/internal/config"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/server"
	"waitlist-service/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const programName = "waitlist"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var envFile string

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()

	ctx := context.Background()
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(ctx, fmt.Sprintf(format, args...))
	})); err != nil {
		logger.Error(ctx, "failed to set GOMAXPROCS", err)
	}

	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Food marketplace waitlist service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), logger)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file loaded outside production (default "+config.DefaultEnvFile+")")

	rootCmd.AddCommand(serveCommand(logger))
	rootCmd.AddCommand(migrateCommand(logger))
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(ctx, "command failed", err)
		os.Exit(1)
	}
}

func serveCommand(logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), logger)
		},
	}
}

func serve(ctx context.Context, logger *observability.Logger) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		deps.Cleanup()
		return fmt.Errorf("failed to start server: %w", err)
	}

	return srv.WaitForShutdown(ctx)
}

func migrateCommand(logger *observability.Logger) *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := store.New(cfg.Database.ConnectionString(), 1, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			var applied int
			if down {
				applied, err = db.MigrateDown(ctx)
			} else {
				applied, err = db.Migrate(ctx)
			}
			if err != nil {
				return err
			}

			logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "applied", Value: applied},
				observability.Field{Key: "down", Value: down},
			), "migrations complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, version)
		},
	}
}
