package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/profitability/internal/api"
	"github.com/ougirez/profitability/internal/config"
	"github.com/ougirez/profitability/internal/pkg/constants"
	"github.com/ougirez/profitability/internal/pkg/logger"
	"github.com/ougirez/profitability/internal/pkg/store"
	"github.com/ougirez/profitability/internal/pkg/store/xpgx"
	"github.com/ougirez/profitability/internal/pkg/store/xsqlite"
	"github.com/ougirez/profitability/internal/service/indicators"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func openPool(ctx context.Context, cfg config.DatabaseConfig) (store.Pool, error) {
	switch cfg.Driver {
	case constants.DriverPostgres:
		return xpgx.Connect(ctx, cfg.DSN, cfg.ConnectRetries)
	default:
		return xsqlite.Open(ctx, cfg.DSN)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pool, err := openPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}
	defer pool.Close()

	st := store.NewStore(pool)
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("store.Migrate: %w", err)
	}
	if err := st.SeedIndicators(ctx, cfg.Catalog()); err != nil {
		return fmt.Errorf("store.SeedIndicators: %w", err)
	}

	service := indicators.NewIndicatorsService(st, indicators.Options{
		Company:        cfg.Statistics.Company,
		AllYearsPolicy: cfg.Statistics.AllYearsPolicy,
		FallbackYear:   cfg.Statistics.FallbackYear,
	})

	apiService, err := api.NewAPIService(service, cfg.Server)
	if err != nil {
		return fmt.Errorf("api.NewAPIService: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx, "http server started", zap.String("address", cfg.Server.Address))
		return apiService.Serve(cfg.Server.Address)
	})

	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info(shutdownCtx, "shutting down http server")
		return apiService.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func main() {
	configLocation := flag.String("config", config.ConfigPath(), "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	l, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	logger.SetGlobal(l)

	os.Exit(serve(cfg))
}

// serve runs the application until a stop signal and returns the process exit code.
// Logs are flushed before it returns.
func serve(cfg *config.Config) int {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "fatal error", zap.Error(err))
		return 1
	}

	return 0
}
