// Package app wires configuration, store, use cases and the HTTP server into one process.
package app

import (
	"context"
	"fmt"

	auctionapp "github.com/cristianortiz/proxyBidding/internal/auction/application"
	sessionapp "github.com/cristianortiz/proxyBidding/internal/session/application"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/config"
	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	"github.com/cristianortiz/proxyBidding/internal/shared/db/migrations"
	"github.com/cristianortiz/proxyBidding/internal/shared/httpserver"
	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/cristianortiz/proxyBidding/internal/shared/store/memory"
	"github.com/cristianortiz/proxyBidding/internal/shared/store/postgres"
	userapp "github.com/cristianortiz/proxyBidding/internal/user/application"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type App struct {
	Store    store.Store
	Auctions auctionapp.AuctionService
	Sessions sessionapp.SessionService
	Users    userapp.UserService
	Server   *httpserver.Server

	cfg   *config.Config
	close func()
}

func New(ctx context.Context, cfg *config.Config, clk clock.Clock) (*App, error) {
	st, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Store: st,
		Auctions: auctionapp.NewAuctionService(
			auctionapp.NewCreateAuctionUseCase(st, clk),
			auctionapp.NewPlaceBidUseCase(st, clk),
			auctionapp.NewGetAuctionStateUseCase(st),
			auctionapp.NewDeleteAuctionUseCase(st),
		),
		Sessions: sessionapp.NewSessionService(
			sessionapp.NewIsValidUseCase(st, clk),
			sessionapp.NewLogoutUseCase(st, clk),
		),
		Users: userapp.NewUserService(
			userapp.NewWonAuctionsUseCase(st),
			userapp.NewDeleteUserUseCase(st, clk),
		),
		Server: httpserver.NewServer(st, cfg.ShutdownTimeout),
		cfg:    cfg,
		close:  closeStore,
	}, nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		if cfg.IsProduction() {
			return nil, nil, fmt.Errorf("store driver %q is not allowed in production", cfg.StoreDriver)
		}
		log.Info("Using in-memory store")
		return memory.NewStore(), func() {}, nil

	case config.StoreDriverPostgres:
		if cfg.MigrationsEnabled {
			log.Info("Running database migrations...")
			if err := migrations.RunMigrations(cfg.PostgresDSN()); err != nil {
				return nil, nil, fmt.Errorf("database migration failed: %w", err)
			}
			log.Info("Database migrations completed successfully.")
		}
		pool, err := db.GetPostgresDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		log.Info("Using postgres store",
			zap.String("host", cfg.DBHost),
			zap.String("database", cfg.DBName),
		)
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Run serves the HTTP surface until a shutdown signal arrives
func (a *App) Run() error {
	return a.Server.Start(a.cfg.HTTPAddr)
}

func (a *App) Close() {
	a.close()
}
