package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Authorize checks the session inside the caller's transaction and returns it locked together
// with its user. The user row is share-locked before the session row, the order DeleteUser takes
// them in, so a concurrent removal of the user either waits for the caller or is seen as not found.
// A missing session and one past its deadline both end in ErrSessionInvalid.
func Authorize(ctx context.Context, sessions domain.SessionRepository, users user.UserRepository, siteName, sessionID string, now time.Time) (*domain.Session, error) {
	// the owner never changes, an unlocked read is enough to find it
	s, err := loadValid(ctx, sessions.Get, siteName, sessionID, now)
	if err != nil {
		return nil, err
	}

	owner := s.User()
	if _, err := users.GetForShare(ctx, owner); err != nil {
		log.Warn("Authorize: session owner not found",
			zap.String("user", owner.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get user %s: %w", owner, err)
	}

	return loadValid(ctx, sessions.GetForUpdate, siteName, sessionID, now)
}

func loadValid(ctx context.Context, get func(ctx context.Context, site, id string) (*domain.Session, error), siteName, sessionID string, now time.Time) (*domain.Session, error) {
	s, err := get(ctx, siteName, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			log.Warn("Authorize: session not found",
				zap.String("site", siteName),
				zap.String("sessionID", sessionID),
			)
			return nil, domain.ErrSessionInvalid
		}
		log.Error("Authorize: failed to load session",
			zap.String("site", siteName),
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	if !s.IsValidAt(now) {
		log.Warn("Authorize: session expired",
			zap.String("site", siteName),
			zap.String("sessionID", sessionID),
			zap.Time("validUntil", s.ValidUntil),
		)
		return nil, domain.ErrSessionInvalid
	}
	return s, nil
}

// Renew slides the session deadline by the site's expiration window and saves it with the same
// repository, so the renewal commits or rolls back together with the triggering operation
func Renew(ctx context.Context, sessions domain.SessionRepository, s *domain.Session, st *site.Site, now time.Time) error {
	s.Renew(st.SessionDeadline(now))
	if err := sessions.Save(ctx, s); err != nil {
		log.Error("Renew: failed to save session",
			zap.String("site", s.Site),
			zap.String("sessionID", s.ID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to renew session %s: %w", s.ID, err)
	}
	log.Debug("Session renewed",
		zap.String("site", s.Site),
		zap.String("sessionID", s.ID),
		zap.Time("validUntil", s.ValidUntil),
	)
	return nil
}
