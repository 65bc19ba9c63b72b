package application

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/auction/domain"
	sessionapp "github.com/cristianortiz/proxyBidding/internal/session/application"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateAuctionDTO is the input of the CreateAuction use case, the seller is the session's user
type CreateAuctionDTO struct {
	Site          string
	SessionID     string
	Description   string
	EndsOn        time.Time
	StartingPrice decimal.Decimal
}

type CreateAuctionUseCase struct {
	store store.Store
	clock clock.Clock
	newID func() uuid.UUID
}

func NewCreateAuctionUseCase(st store.Store, clk clock.Clock) *CreateAuctionUseCase {
	return &CreateAuctionUseCase{store: st, clock: clk, newID: uuid.New}
}

func (uc *CreateAuctionUseCase) Execute(ctx context.Context, cmd CreateAuctionDTO) (uuid.UUID, error) {
	log.Info("Executing CreateAuctionUseCase",
		zap.String("site", cmd.Site),
		zap.Time("endsOn", cmd.EndsOn),
		zap.Stringer("startingPrice", cmd.StartingPrice),
	)

	// listing errors come before the session check
	if err := domain.ValidateListing(cmd.Description, cmd.EndsOn, cmd.StartingPrice, uc.clock.Now()); err != nil {
		log.Warn("CreateAuctionUseCase: invalid listing", zap.String("site", cmd.Site), zap.Error(err))
		return uuid.Nil, fmt.Errorf("create auction use case: %w", err)
	}

	var id uuid.UUID
	err := uc.store.Atomic(ctx, func(ctx context.Context, r store.Repositories) error {
		now := uc.clock.Now()

		st, err := r.Sites().Get(ctx, cmd.Site)
		if err != nil {
			return fmt.Errorf("create auction use case: failed to get site %s: %w", cmd.Site, err)
		}

		sess, err := sessionapp.Authorize(ctx, r.Sessions(), r.Users(), cmd.Site, cmd.SessionID, now)
		if err != nil {
			return fmt.Errorf("create auction use case: %w", err)
		}
		seller := sess.User()

		a, err := domain.NewAuction(uc.newID(), seller, cmd.Description, cmd.EndsOn, cmd.StartingPrice, now)
		if err != nil {
			return fmt.Errorf("create auction use case: %w", err)
		}
		if err := r.Auctions().Create(ctx, a); err != nil {
			log.Error("CreateAuctionUseCase: failed to create auction",
				zap.String("auctionID", a.ID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("create auction use case: failed to create auction: %w", err)
		}

		if err := sessionapp.Renew(ctx, r.Sessions(), sess, st, now); err != nil {
			return fmt.Errorf("create auction use case: %w", err)
		}
		id = a.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	log.Info("CreateAuctionUseCase: auction created",
		zap.String("site", cmd.Site),
		zap.String("auctionID", id.String()),
	)
	return id, nil
}
