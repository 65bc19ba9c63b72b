package domain

import (
	"context"
	"iter"
	"time"

	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
)

type AuctionRepository interface {
	Get(ctx context.Context, site string, id uuid.UUID) (*Auction, error)
	// GetForUpdate loads the auction and locks it until the surrounding transaction ends
	GetForUpdate(ctx context.Context, site string, id uuid.UUID) (*Auction, error)
	Create(ctx context.Context, a *Auction) error
	// Save persists the mutable part of the aggregate (visible price and bidding state)
	Save(ctx context.Context, a *Auction) error
	Delete(ctx context.Context, site string, id uuid.UUID) error
	// WonBy lists the auctions currently led by winner, the query runs when the sequence is ranged
	WonBy(ctx context.Context, winner user.User) iter.Seq2[*Auction, error]
	// HasOpenAuctions reports whether u sells or leads an auction ending at or after now
	HasOpenAuctions(ctx context.Context, u user.User, now time.Time) (bool, error)
}
