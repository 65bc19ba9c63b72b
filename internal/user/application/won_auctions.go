package application

import (
	"context"
	"fmt"
	"iter"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	"github.com/cristianortiz/proxyBidding/internal/user/domain"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// WonAuctionsUseCase lists the auctions a user currently leads, ended or not
type WonAuctionsUseCase struct {
	store store.Store
}

func NewWonAuctionsUseCase(st store.Store) *WonAuctionsUseCase {
	return &WonAuctionsUseCase{store: st}
}

// Execute checks the user exists and returns a sequence that queries the store each time it is
// ranged, so it always reflects the state at read time
func (uc *WonAuctionsUseCase) Execute(ctx context.Context, u domain.User) (iter.Seq2[*auction.Auction, error], error) {
	if _, err := uc.store.Repositories().Users().Get(ctx, u); err != nil {
		log.Warn("WonAuctionsUseCase: user lookup failed",
			zap.String("user", u.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("won auctions use case: failed to get user %s: %w", u, err)
	}

	won := uc.store.Repositories().Auctions().WonBy(ctx, u)
	return func(yield func(*auction.Auction, error) bool) {
		for a, err := range won {
			if err != nil {
				yield(nil, fmt.Errorf("won auctions use case: %w", err))
				return
			}
			if !yield(a, nil) {
				return
			}
		}
	}, nil
}
