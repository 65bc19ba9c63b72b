package domain

import (
	"context"
	"time"

	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, site, id string) (*Session, error)
	// GetForUpdate loads the session and holds it until the surrounding transaction ends
	GetForUpdate(ctx context.Context, site, id string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	Save(ctx context.Context, s *Session) error
	// InvalidateByUser moves every session of u still valid at now to validUntil, returns how many changed
	InvalidateByUser(ctx context.Context, u user.User, now, validUntil time.Time) (int64, error)
}
