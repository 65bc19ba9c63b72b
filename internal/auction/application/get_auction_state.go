package application

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionStateDTO is the public view of an auction, the winner's hidden maximum is never exposed
type AuctionStateDTO struct {
	ID            uuid.UUID       `json:"id"`
	Site          string          `json:"site"`
	Seller        string          `json:"seller"`
	Description   string          `json:"description"`
	EndsOn        time.Time       `json:"ends_on"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	State         string          `json:"state"`
	Winner        *user.User      `json:"-"`
	WinnerName    string          `json:"winner,omitempty"`
}

// GetAuctionStateUseCase reads the stored auction, every call sees the latest committed state
type GetAuctionStateUseCase struct {
	store store.Store
}

func NewGetAuctionStateUseCase(st store.Store) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{store: st}
}

func (uc *GetAuctionStateUseCase) Execute(ctx context.Context, site string, id uuid.UUID) (*AuctionStateDTO, error) {
	a, err := uc.store.Repositories().Auctions().Get(ctx, site, id)
	if err != nil {
		return nil, fmt.Errorf("get auction state use case: failed to get auction %s: %w", id, err)
	}

	dto := &AuctionStateDTO{
		ID:            a.ID,
		Site:          a.Site,
		Seller:        a.Seller.Username,
		Description:   a.Description,
		EndsOn:        a.EndsOn,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		State:         a.Bidding.Name(),
	}
	if winner, ok := a.Winner(); ok {
		dto.Winner = &winner
		dto.WinnerName = winner.Username
	}
	return dto, nil
}

