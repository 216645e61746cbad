package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/quangdm/finvi/internal/ai"
	"github.com/quangdm/finvi/internal/api"
	"github.com/quangdm/finvi/internal/auth"
	"github.com/quangdm/finvi/internal/config"
	"github.com/quangdm/finvi/internal/finance"
	"github.com/quangdm/finvi/internal/log"
	"github.com/quangdm/finvi/internal/market"
	"github.com/quangdm/finvi/internal/storage"
)

func main() {
	// .env is optional; without it the process environment is used as is.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.New(log.ParseLevel(cfg.LogLevel))
	appLog := logger.WithComponent(log.ComponentApp)

	ctx := context.Background()

	slots, err := openSlots(ctx, cfg)
	if err != nil {
		appLog.Error("open slot store", "error", err)
		os.Exit(1)
	}
	defer slots.Close()

	storageLog := logger.WithComponent(log.ComponentStorage)
	if cfg.DatabaseURL != "" {
		storageLog.Info("slot store ready", "backend", "postgres")
	} else {
		storageLog.Info("slot store ready", "backend", "sqlite", "path", cfg.DataPath)
	}

	authService, err := auth.NewService(ctx, slots, cfg.JWTSecret, cfg.TokenExpiration)
	if err != nil {
		appLog.Error("init auth service", "error", err)
		os.Exit(1)
	}

	stores := finance.NewManager(slots)
	advisor := ai.NewClient(cfg.AIBaseURL, cfg.AIModel, cfg.AIAPIKey)

	marketLog := logger.WithComponent(log.ComponentMarket)
	board := market.NewBoard(
		market.NewCached(market.NewCoinGecko(cfg.MarketAPIURL), cfg.MarketCacheTTL, marketLog),
		market.NewCached(market.NewVNStockBoard(), cfg.MarketCacheTTL, marketLog),
	)

	server := api.NewServer(cfg, authService, stores, advisor, board, logger)

	appLog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := server.Run(":" + cfg.Port); err != nil {
		appLog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openSlots picks Postgres when DATABASE_URL is set, otherwise the
// single-file SQLite database at DATA_PATH.
func openSlots(ctx context.Context, cfg *config.Config) (storage.SlotStore, error) {
	if cfg.DatabaseURL != "" {
		return storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	return storage.NewSQLiteStore(cfg.DataPath)
}
