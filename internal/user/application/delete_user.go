package application

import (
	"context"
	"fmt"

	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/cristianortiz/proxyBidding/internal/user/domain"
	"go.uber.org/zap"
)

// DeleteUserUseCase removes a user with no live auctions. Its sessions are invalidated, not
// deleted.
type DeleteUserUseCase struct {
	store store.Store
	clock clock.Clock
}

func NewDeleteUserUseCase(st store.Store, clk clock.Clock) *DeleteUserUseCase {
	return &DeleteUserUseCase{store: st, clock: clk}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, u domain.User) error {
	log.Info("Executing DeleteUserUseCase", zap.String("user", u.String()))

	return uc.store.Atomic(ctx, func(ctx context.Context, r store.Repositories) error {
		now := uc.clock.Now()

		if _, err := r.Users().GetForUpdate(ctx, u); err != nil {
			return fmt.Errorf("delete user use case: failed to get user %s: %w", u, err)
		}

		open, err := r.Auctions().HasOpenAuctions(ctx, u, now)
		if err != nil {
			log.Error("DeleteUserUseCase: failed to check open auctions",
				zap.String("user", u.String()),
				zap.Error(err),
			)
			return fmt.Errorf("delete user use case: failed to check auctions of %s: %w", u, err)
		}
		if open {
			log.Warn("DeleteUserUseCase: user still has open auctions", zap.String("user", u.String()))
			return fmt.Errorf("delete user use case: %w", domain.ErrUserHasOpenAuction)
		}

		n, err := r.Sessions().InvalidateByUser(ctx, u, now, now.Add(-session.LogoutBackdate))
		if err != nil {
			return fmt.Errorf("delete user use case: failed to invalidate sessions of %s: %w", u, err)
		}
		if err := r.Users().Delete(ctx, u); err != nil {
			return fmt.Errorf("delete user use case: failed to delete user %s: %w", u, err)
		}

		log.Info("DeleteUserUseCase: user deleted",
			zap.String("user", u.String()),
			zap.Int64("invalidatedSessions", n),
		)
		return nil
	})
}
