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

// LogoutUseCase moves a live session's deadline into the past. The record is kept.
type LogoutUseCase struct {
	store store.Store
	clock clock.Clock
}

func NewLogoutUseCase(st store.Store, clk clock.Clock) *LogoutUseCase {
	return &LogoutUseCase{store: st, clock: clk}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, siteName, sessionID string) error {
	log.Info("Executing LogoutUseCase",
		zap.String("site", siteName),
		zap.String("sessionID", sessionID),
	)

	return uc.store.Atomic(ctx, func(ctx context.Context, r store.Repositories) error {
		s, err := r.Sessions().GetForUpdate(ctx, siteName, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				log.Warn("LogoutUseCase: session not found",
					zap.String("site", siteName),
					zap.String("sessionID", sessionID),
				)
				return fmt.Errorf("logout use case: %w", domain.ErrSessionNotActive)
			}
			return fmt.Errorf("logout use case: failed to load session %s: %w", sessionID, err)
		}

		if err := s.Logout(uc.clock.Now()); err != nil {
			return fmt.Errorf("logout use case: %w", err)
		}

		if err := r.Sessions().Save(ctx, s); err != nil {
			log.Error("LogoutUseCase: failed to save session",
				zap.String("site", siteName),
				zap.String("sessionID", sessionID),
				zap.Error(err),
			)
			return fmt.Errorf("logout use case: failed to save session %s: %w", sessionID, err)
		}
		return nil
	})
}
