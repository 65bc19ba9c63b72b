package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteAuctionUseCase removes an auction whatever its state, a second call fails with not found
type DeleteAuctionUseCase struct {
	store store.Store
}

func NewDeleteAuctionUseCase(st store.Store) *DeleteAuctionUseCase {
	return &DeleteAuctionUseCase{store: st}
}

func (uc *DeleteAuctionUseCase) Execute(ctx context.Context, site string, id uuid.UUID) error {
	log.Info("Executing DeleteAuctionUseCase",
		zap.String("site", site),
		zap.String("auctionID", id.String()),
	)
	return uc.store.Atomic(ctx, func(ctx context.Context, r store.Repositories) error {
		// lock first so a bid in flight finishes before the row goes away
		if _, err := r.Auctions().GetForUpdate(ctx, site, id); err != nil {
			return fmt.Errorf("delete auction use case: failed to get auction %s: %w", id, err)
		}
		if err := r.Auctions().Delete(ctx, site, id); err != nil {
			return fmt.Errorf("delete auction use case: failed to delete auction %s: %w", id, err)
		}
		return nil
	})
}
