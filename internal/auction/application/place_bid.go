package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/auction/domain"
	sessionapp "github.com/cristianortiz/proxyBidding/internal/session/application"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidDTO is the input of the PlaceBid use case
type PlaceBidDTO struct {
	Site      string
	SessionID string
	AuctionID uuid.UUID
	Offer     decimal.Decimal
}

// PlaceBidUseCase runs one offer through the proxy bidding rules. The session, the auction and
// the session renewal all live in one transaction, so two bids on the same auction never
// interleave and a failed bid leaves nothing behind.
type PlaceBidUseCase struct {
	store store.Store
	clock clock.Clock
}

func NewPlaceBidUseCase(st store.Store, clk clock.Clock) *PlaceBidUseCase {
	return &PlaceBidUseCase{store: st, clock: clk}
}

// Execute reports whether the offer was accepted. A rejected offer is not an error, a failed
// precondition is.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (bool, error) {
	log.Info("Executing PlaceBidUseCase",
		zap.String("site", cmd.Site),
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.Stringer("offer", cmd.Offer),
	)

	var accepted bool
	err := uc.store.Atomic(ctx, func(ctx context.Context, r store.Repositories) error {
		now := uc.clock.Now()

		st, err := r.Sites().Get(ctx, cmd.Site)
		if err != nil {
			return fmt.Errorf("place bid use case: failed to get site %s: %w", cmd.Site, err)
		}

		sess, err := sessionapp.Authorize(ctx, r.Sessions(), r.Users(), cmd.Site, cmd.SessionID, now)
		if err != nil {
			return fmt.Errorf("place bid use case: %w", err)
		}
		bidder := sess.User()

		if cmd.Offer.IsNegative() {
			log.Warn("PlaceBidUseCase: negative offer",
				zap.String("bidder", bidder.String()),
				zap.Stringer("offer", cmd.Offer),
			)
			return fmt.Errorf("place bid use case: %w", domain.ErrNegativeOffer)
		}

		// 1. load the aggregate locked for the rest of the transaction
		a, err := r.Auctions().GetForUpdate(ctx, cmd.Site, cmd.AuctionID)
		if err != nil {
			if !errors.Is(err, domain.ErrAuctionNotFound) {
				log.Error("PlaceBidUseCase: failed to get auction",
					zap.String("auctionID", cmd.AuctionID.String()),
					zap.Error(err),
				)
			}
			return fmt.Errorf("place bid use case: failed to get auction %s: %w", cmd.AuctionID, err)
		}

		// 2. domain decides, preconditions fail the whole call
		outcome, err := a.PlaceBid(bidder, cmd.Offer, st.MinimumBidIncrement, now)
		if err != nil {
			return fmt.Errorf("place bid use case: bid failed for auction %s: %w", cmd.AuctionID, err)
		}

		// 3. an evaluated bid is activity, accepted or not
		if err := sessionapp.Renew(ctx, r.Sessions(), sess, st, now); err != nil {
			return fmt.Errorf("place bid use case: %w", err)
		}

		if !outcome.Accepted() {
			return nil
		}
		if err := r.Auctions().Save(ctx, a); err != nil {
			log.Error("PlaceBidUseCase: failed to save auction",
				zap.String("auctionID", cmd.AuctionID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("place bid use case: failed to save auction %s: %w", cmd.AuctionID, err)
		}
		accepted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return accepted, nil
}
