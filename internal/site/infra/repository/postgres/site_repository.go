package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	"github.com/cristianortiz/proxyBidding/internal/site/domain"
	"github.com/jackc/pgx/v5"
)

// SiteRepository implements domain.SiteRepository interface
type SiteRepository struct {
	db db.DBTX
}

// NewSiteRepository binds the repository to a pool or to a running transaction
func NewSiteRepository(db db.DBTX) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Get(ctx context.Context, name string) (*domain.Site, error) {
	query := `
        SELECT name, minimum_bid_increment, session_expiration_seconds
        FROM sites
        WHERE name = $1
    `
	site := &domain.Site{}
	var expirationSeconds int64
	err := r.db.QueryRow(ctx, query, name).Scan(
		&site.Name,
		&site.MinimumBidIncrement,
		&expirationSeconds,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, err
	}
	site.SessionExpiration = time.Duration(expirationSeconds) * time.Second
	return site, nil
}

func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `
        INSERT INTO sites (name, minimum_bid_increment, session_expiration_seconds)
        VALUES ($1, $2, $3)
    `
	_, err := r.db.Exec(ctx, query,
		site.Name,
		site.MinimumBidIncrement,
		int64(site.SessionExpiration/time.Second),
	)
	return err
}
