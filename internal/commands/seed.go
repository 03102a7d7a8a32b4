package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/taskplanet-seed/internal/config"
	"github.com/benvon/taskplanet-seed/internal/database"
	"github.com/benvon/taskplanet-seed/internal/fixtures"
	"github.com/benvon/taskplanet-seed/internal/logger"
	"github.com/benvon/taskplanet-seed/internal/seed"
	"github.com/benvon/taskplanet-seed/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd creates a command that seeds the named embedded fixture.
// It takes no arguments or flags; everything comes from the environment.
func NewSeedCmd(use, short, fixture string) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          short + ". Connection settings are read from DATABASE_URL or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, use, fixture)
		},
	}
}

func runSeed(cmd *cobra.Command, serviceName, fixture string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLogger, err := logger.New(cfg.LogFormat, cfg.DebugMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		// stderr sync errors are expected on some platforms
		_ = logger.Sync(zapLogger)
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(ctx, serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Warn("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	f, err := fixtures.Load(fixture)
	if err != nil {
		zapLogger.Error("failed_to_load_fixture", zap.String("fixture", fixture), zap.Error(err))
		return err
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Error("failed_to_connect_to_database",
			zap.String("dsn", logger.RedactDSN(cfg.DatabaseURL)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_database",
		zap.String("driver", db.Driver()),
		zap.String("dsn", logger.RedactDSN(cfg.DatabaseURL)),
	)

	seeder := seed.New(
		database.NewTaskRepository(db),
		database.NewTagRepository(db),
		database.NewTaskTagWeightRepository(db),
		zapLogger,
	)

	res, err := seeder.Run(ctx, f)
	if err != nil {
		zapLogger.Error("seed_failed",
			zap.String("seed_run_id", res.RunID.String()),
			zap.String("failed_after", string(res.FailedAfter)),
			zap.Int("tasks_created", res.TasksCreated),
			zap.Int("weights_upserted", res.WeightsUpserted),
			zap.Error(err),
		)
		return err
	}

	zapLogger.Info("seed_completed",
		zap.String("seed_run_id", res.RunID.String()),
		zap.Int("tags_upserted", res.TagsUpserted),
		zap.Int("tasks_created", res.TasksCreated),
		zap.Int("weights_upserted", res.WeightsUpserted),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Seed %s inserted: %d tags, %d tasks, %d weights\n",
		res.Fixture, res.TagsUpserted, res.TasksCreated, res.WeightsUpserted)
	return nil
}
