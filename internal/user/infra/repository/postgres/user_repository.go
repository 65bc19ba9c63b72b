package postgres

import (
	"context"
	"errors"

	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	"github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements domain.UserRepository for PostgreSQL.
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository crea una nueva instancia de UserRepository.
func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `SELECT site_name, username FROM users WHERE site_name = $1 AND username = $2`

// Get checks the user exists and returns it
func (r *UserRepository) Get(ctx context.Context, u domain.User) (*domain.User, error) {
	return r.get(ctx, selectUser, u)
}

// GetForUpdate row-locks the user, a concurrent GetForShare waits for the transaction holding it
func (r *UserRepository) GetForUpdate(ctx context.Context, u domain.User) (*domain.User, error) {
	return r.get(ctx, selectUser+" FOR UPDATE", u)
}

func (r *UserRepository) GetForShare(ctx context.Context, u domain.User) (*domain.User, error) {
	return r.get(ctx, selectUser+" FOR SHARE", u)
}

func (r *UserRepository) get(ctx context.Context, query string, u domain.User) (*domain.User, error) {
	found := &domain.User{}
	err := r.db.QueryRow(ctx, query, u.Site, u.Username).Scan(&found.Site, &found.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	query := `INSERT INTO users (site_name, username) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, u.Site, u.Username)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, u domain.User) error {
	query := `DELETE FROM users WHERE site_name = $1 AND username = $2`
	tag, err := r.db.Exec(ctx, query, u.Site, u.Username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
