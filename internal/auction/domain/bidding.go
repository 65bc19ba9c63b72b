package domain

import (
	"fmt"
	"time"

	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BiddingState is either NoBids or HasBids. Once an auction has bids it never goes back.
type BiddingState interface {
	isBiddingState()
	Name() string
}

// persisted names of the bidding states
const (
	StateNoBids  = "no_bids"
	StateHasBids = "has_bids"
)

type NoBids struct{}

// HasBids carries the current winner and the winner's hidden maximum commitment,
// HiddenMax is always >= the auction's visible price
type HasBids struct {
	Winner    user.User
	HiddenMax decimal.Decimal
}

func (NoBids) isBiddingState()  {}
func (HasBids) isBiddingState() {}

func (NoBids) Name() string  { return StateNoBids }
func (HasBids) Name() string { return StateHasBids }

// BidOutcome tells what a bid did to the auction
type BidOutcome int

const (
	BidRejected BidOutcome = iota
	// first accepted bid, price stays at the starting price
	BidFirst
	// the winner raised its own hidden maximum
	BidRaisedOwnMax
	// a challenger beat the hidden maximum and took the lead
	BidNewWinner
	// a challenger stayed below the hidden maximum but pushed the price up
	BidOutbid
)

func (o BidOutcome) Accepted() bool {
	return o != BidRejected
}

func (o BidOutcome) String() string {
	switch o {
	case BidRejected:
		return "rejected"
	case BidFirst:
		return "first_bid"
	case BidRaisedOwnMax:
		return "raised_own_max"
	case BidNewWinner:
		return "new_winner"
	case BidOutbid:
		return "outbid"
	default:
		return fmt.Sprintf("BidOutcome(%d)", int(o))
	}
}

// CheckBid runs the preconditions that fail a bid outright, nothing is mutated
func (a *Auction) CheckBid(bidder user.User, offer decimal.Decimal, now time.Time) error {
	if offer.IsNegative() {
		return ErrNegativeOffer
	}
	if !a.IsOpenAt(now) {
		return ErrAuctionExpired
	}
	if bidder == a.Seller {
		return ErrSellerCannotBid
	}
	return nil
}

// PlaceBid applies the proxy bidding rules to an offer. The caller must hold the aggregate
// exclusively (one transaction per auction) and pass the site's minimum increment.
//
// The visible price only rises to what is needed to beat the second highest commitment by one
// increment, the winner's own commitment stays hidden.
func (a *Auction) PlaceBid(bidder user.User, offer, minIncrement decimal.Decimal, now time.Time) (BidOutcome, error) {
	if err := a.CheckBid(bidder, offer, now); err != nil {
		log.Warn("Bid rejected: precondition failed",
			zap.String("auctionID", a.ID.String()),
			zap.String("bidder", bidder.String()),
			zap.Stringer("offer", offer),
			zap.Error(err),
		)
		return BidRejected, err
	}

	outcome := a.transition(bidder, offer, minIncrement)

	log.Info("Bid evaluated",
		zap.String("auctionID", a.ID.String()),
		zap.String("bidder", bidder.String()),
		zap.Stringer("offer", offer),
		zap.Stringer("outcome", outcome),
		zap.Stringer("currentPrice", a.CurrentPrice),
		zap.String("state", a.Bidding.Name()),
	)
	return outcome, nil
}

func (a *Auction) transition(bidder user.User, offer, minIncrement decimal.Decimal) BidOutcome {
	switch state := a.Bidding.(type) {
	case NoBids:
		if offer.LessThan(a.StartingPrice) {
			return BidRejected
		}
		a.Bidding = HasBids{Winner: bidder, HiddenMax: offer}
		return BidFirst

	case HasBids:
		if state.Winner == bidder {
			if !offer.GreaterThan(state.HiddenMax.Add(minIncrement)) {
				return BidRejected
			}
			a.Bidding = HasBids{Winner: bidder, HiddenMax: offer}
			return BidRaisedOwnMax
		}

		// both comparisons are kept, they only differ for a negative increment
		if offer.LessThan(a.CurrentPrice) || offer.LessThan(a.CurrentPrice.Add(minIncrement)) {
			return BidRejected
		}
		if offer.GreaterThan(state.HiddenMax) {
			a.CurrentPrice = decimal.Min(offer, state.HiddenMax.Add(minIncrement))
			a.Bidding = HasBids{Winner: bidder, HiddenMax: offer}
			return BidNewWinner
		}
		if state.HiddenMax.GreaterThan(offer) {
			a.CurrentPrice = decimal.Min(state.HiddenMax, offer.Add(minIncrement))
			return BidOutbid
		}
		return BidRejected

	default:
		panic(fmt.Sprintf("auction %s: unknown bidding state %T", a.ID, a.Bidding))
	}
}
