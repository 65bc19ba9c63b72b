package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/jackc/pgx/v5"
)

const selectSession = `
        SELECT id, site_name, username, valid_until
        FROM sessions
        WHERE site_name = $1 AND id = $2
    `

// SessionRepository implements domain.SessionRepository interface
type SessionRepository struct {
	db db.DBTX
}

func NewSessionRepository(db db.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Get(ctx context.Context, site, id string) (*domain.Session, error) {
	return r.get(ctx, selectSession, site, id)
}

// GetForUpdate row-locks the session, renewals of the same session are serialized
func (r *SessionRepository) GetForUpdate(ctx context.Context, site, id string) (*domain.Session, error) {
	return r.get(ctx, selectSession+" FOR UPDATE", site, id)
}

func (r *SessionRepository) get(ctx context.Context, query, site, id string) (*domain.Session, error) {
	s := &domain.Session{}
	err := r.db.QueryRow(ctx, query, site, id).Scan(
		&s.ID,
		&s.Site,
		&s.Username,
		&s.ValidUntil,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	s.ValidUntil = s.ValidUntil.UTC()
	return s, nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
        INSERT INTO sessions (id, site_name, username, valid_until)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.Exec(ctx, query, s.ID, s.Site, s.Username, s.ValidUntil)
	return err
}

// Save persists the deadline, the only mutable field of a session
func (r *SessionRepository) Save(ctx context.Context, s *domain.Session) error {
	query := `
        UPDATE sessions
        SET valid_until = $3, updated_at = NOW()
        WHERE site_name = $1 AND id = $2
    `
	tag, err := r.db.Exec(ctx, query, s.Site, s.ID, s.ValidUntil)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) InvalidateByUser(ctx context.Context, u user.User, now, validUntil time.Time) (int64, error) {
	query := `
        UPDATE sessions
        SET valid_until = $4, updated_at = NOW()
        WHERE site_name = $1 AND username = $2 AND valid_until > $3
    `
	tag, err := r.db.Exec(ctx, query, u.Site, u.Username, now, validUntil)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
