package domain

import (
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Auction is the aggregate root of one listing. ID, Site, Seller, Description, EndsOn and
// StartingPrice never change after creation, CurrentPrice and Bidding change only through PlaceBid
type Auction struct {
	ID            uuid.UUID
	Site          string
	Seller        user.User
	Description   string
	EndsOn        time.Time
	StartingPrice decimal.Decimal
	CurrentPrice  decimal.Decimal // visible price, never decreases
	Bidding       BiddingState
}

// ValidateListing checks the seller supplied part of a new auction
func ValidateListing(description string, endsOn time.Time, startingPrice decimal.Decimal, now time.Time) error {
	if description == "" {
		return ErrEmptyDescription
	}
	if startingPrice.IsNegative() {
		return ErrNegativeStartingPrice
	}
	if !endsOn.After(now) {
		return ErrEndsOnNotInFuture
	}
	return nil
}

// NewAuction creates an auction with no bids whose visible price is the starting price
func NewAuction(id uuid.UUID, seller user.User, description string, endsOn time.Time, startingPrice decimal.Decimal, now time.Time) (*Auction, error) {
	if err := ValidateListing(description, endsOn, startingPrice, now); err != nil {
		log.Warn("Auction rejected: invalid listing",
			zap.String("seller", seller.String()),
			zap.Time("endsOn", endsOn),
			zap.Stringer("startingPrice", startingPrice),
			zap.Error(err),
		)
		return nil, err
	}
	return &Auction{
		ID:            id,
		Site:          seller.Site,
		Seller:        seller,
		Description:   description,
		EndsOn:        endsOn,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		Bidding:       NoBids{},
	}, nil
}

// Winner returns the current winner, ok is false while nobody has bid
func (a *Auction) Winner() (winner user.User, ok bool) {
	if hb, isHasBids := a.Bidding.(HasBids); isHasBids {
		return hb.Winner, true
	}
	return user.User{}, false
}

// IsOpenAt reports whether bids are still accepted at now
func (a *Auction) IsOpenAt(now time.Time) bool {
	return now.Before(a.EndsOn)
}
