package postgres

import (
	"context"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	auctionpg "github.com/cristianortiz/proxyBidding/internal/auction/infra/repository/postgres"
	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	sessionpg "github.com/cristianortiz/proxyBidding/internal/session/infra/repository/postgres"
	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	sitepg "github.com/cristianortiz/proxyBidding/internal/site/infra/repository/postgres"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	userpg "github.com/cristianortiz/proxyBidding/internal/user/infra/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements store.Store on a pgx pool
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Repositories() store.Repositories {
	return repositories{db: s.pool}
}

func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, r store.Repositories) error) error {
	return db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, repositories{db: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// repositories vends the per-context postgres repositories bound to one DBTX
type repositories struct {
	db db.DBTX
}

func (r repositories) Sites() site.SiteRepository {
	return sitepg.NewSiteRepository(r.db)
}

func (r repositories) Users() user.UserRepository {
	return userpg.NewUserRepository(r.db)
}

func (r repositories) Sessions() session.SessionRepository {
	return sessionpg.NewSessionRepository(r.db)
}

func (r repositories) Auctions() auction.AuctionRepository {
	return auctionpg.NewAuctionRepository(r.db)
}
