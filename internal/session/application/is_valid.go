package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"go.uber.org/zap"
)

// IsValidUseCase answers whether a session can still be used. It only reads, expiry is lazy.
type IsValidUseCase struct {
	store store.Store
	clock clock.Clock
}

func NewIsValidUseCase(st store.Store, clk clock.Clock) *IsValidUseCase {
	return &IsValidUseCase{store: st, clock: clk}
}

// Execute looks the session up by id, a missing session is not valid
func (uc *IsValidUseCase) Execute(ctx context.Context, siteName, sessionID string) (bool, error) {
	stored, err := uc.load(ctx, siteName, sessionID)
	if err != nil || stored == nil {
		return false, err
	}
	return stored.IsValidAt(uc.clock.Now()), nil
}

// ExecuteSnapshot checks a session the caller already holds. Both the stored deadline and the
// snapshot's deadline must still be ahead, so a stale copy never outlives a logout.
func (uc *IsValidUseCase) ExecuteSnapshot(ctx context.Context, snapshot *domain.Session) (bool, error) {
	if snapshot == nil {
		return false, nil
	}
	stored, err := uc.load(ctx, snapshot.Site, snapshot.ID)
	if err != nil || stored == nil {
		return false, err
	}
	now := uc.clock.Now()
	return stored.IsValidAt(now) && snapshot.IsValidAt(now), nil
}

func (uc *IsValidUseCase) load(ctx context.Context, siteName, sessionID string) (*domain.Session, error) {
	s, err := uc.store.Repositories().Sessions().Get(ctx, siteName, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error("IsValidUseCase: failed to load session",
			zap.String("site", siteName),
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("is valid use case: failed to load session %s: %w", sessionID, err)
	}
	return s, nil
}
