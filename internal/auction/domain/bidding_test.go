package domain

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

var (
	now    = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seller = user.New("site", "seller")
	alice  = user.New("site", "alice")
	bob    = user.New("site", "bob")
	carol  = user.New("site", "carol")
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func newTestAuction(t *testing.T, startingPrice string) *Auction {
	t.Helper()
	a, err := NewAuction(uuid.New(), seller, "vintage lamp", now.Add(time.Hour), d(startingPrice), now)
	check.NoError(t, err)
	return a
}

func hiddenMax(t *testing.T, a *Auction) string {
	t.Helper()
	hb, ok := a.Bidding.(HasBids)
	check.True(t, ok)
	return hb.HiddenMax.String()
}

func checkInvariants(t *testing.T, a *Auction) {
	t.Helper()
	check.True(t, a.CurrentPrice.GreaterThanOrEqual(a.StartingPrice))
	if hb, ok := a.Bidding.(HasBids); ok {
		check.True(t, hb.HiddenMax.GreaterThanOrEqual(a.CurrentPrice))
		check.True(t, hb.Winner != a.Seller)
	}
}

func TestNewAuction_Validation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		endsOn      time.Time
		price       string
		wantErr     error
		category    error
	}{
		{"empty description", "", now.Add(time.Hour), "10", ErrEmptyDescription, errs.ErrInvalidArgument},
		{"negative starting price", "lamp", now.Add(time.Hour), "-0.01", ErrNegativeStartingPrice, errs.ErrOutOfRange},
		{"ends now", "lamp", now, "10", ErrEndsOnNotInFuture, errs.ErrExpired},
		{"ended in the past", "lamp", now.Add(-time.Minute), "10", ErrEndsOnNotInFuture, errs.ErrExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAuction(uuid.New(), seller, tt.description, tt.endsOn, d(tt.price), now)
			check.Nil(t, a)
			check.True(t, errors.Is(err, tt.wantErr))
			check.True(t, errors.Is(err, tt.category))
		})
	}
}

func TestNewAuction_BlankDescriptionIsNotEmpty(t *testing.T) {
	a, err := NewAuction(uuid.New(), seller, "   ", now.Add(time.Hour), d("10"), now)
	check.NoError(t, err)
	check.Equal(t, "   ", a.Description)
}

func TestNewAuction_StartsWithoutBids(t *testing.T) {
	a := newTestAuction(t, "10")

	check.Equal(t, "10", a.CurrentPrice.String())
	check.Equal(t, StateNoBids, a.Bidding.Name())
	_, ok := a.Winner()
	check.False(t, ok)
	check.Equal(t, "site", a.Site)
}

func TestNegativeStartingPriceIsAlsoInvalidArgument(t *testing.T) {
	check.True(t, errors.Is(ErrNegativeStartingPrice, errs.ErrInvalidArgument))
	check.True(t, errors.Is(ErrNegativeOffer, errs.ErrInvalidArgument))
}

func TestPlaceBid_Scenario(t *testing.T) {
	// starting price 10, increment 1
	a := newTestAuction(t, "10")
	inc := d("1")

	steps := []struct {
		bidder    user.User
		offer     string
		outcome   BidOutcome
		price     string
		winner    user.User
		hiddenMax string
	}{
		{alice, "10", BidFirst, "10", alice, "10"},
		{bob, "15", BidNewWinner, "11", bob, "15"},
		{alice, "13", BidOutbid, "14", bob, "15"},
		{alice, "16", BidNewWinner, "16", alice, "16"},
		{bob, "16", BidRejected, "16", alice, "16"},
	}

	for i, step := range steps {
		outcome, err := a.PlaceBid(step.bidder, d(step.offer), inc, now)
		check.NoError(t, err)
		check.Equal(t, step.outcome, outcome)
		check.Equal(t, step.price, a.CurrentPrice.String())
		winner, ok := a.Winner()
		check.True(t, ok)
		check.Equal(t, step.winner, winner)
		check.Equal(t, step.hiddenMax, hiddenMax(t, a))
		checkInvariants(t, a)
		if t.Failed() {
			t.Fatalf("scenario diverged at step %d", i+1)
		}
	}
}

func TestPlaceBid_FirstBidBelowStartingPriceIsRejected(t *testing.T) {
	a := newTestAuction(t, "10")

	outcome, err := a.PlaceBid(alice, d("9.99"), d("1"), now)
	check.NoError(t, err)
	check.Equal(t, BidRejected, outcome)
	check.False(t, outcome.Accepted())
	check.Equal(t, StateNoBids, a.Bidding.Name())
	check.Equal(t, "10", a.CurrentPrice.String())
}

func TestPlaceBid_FirstBidKeepsStartingPrice(t *testing.T) {
	a := newTestAuction(t, "10")

	outcome, err := a.PlaceBid(alice, d("50"), d("1"), now)
	check.NoError(t, err)
	check.Equal(t, BidFirst, outcome)
	check.Equal(t, "10", a.CurrentPrice.String())
	check.Equal(t, "50", hiddenMax(t, a))
}

func TestPlaceBid_WinnerRaisingOwnMax(t *testing.T) {
	tests := []struct {
		name     string
		offer    string
		accepted bool
		max      string
	}{
		{"equal to max plus increment", "21", false, "20"},
		{"below max", "15", false, "20"},
		{"just above max plus increment", "21.01", true, "21.01"},
		{"well above", "40", true, "40"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuction(t, "10")
			_, err := a.PlaceBid(alice, d("20"), d("1"), now)
			check.NoError(t, err)

			outcome, err := a.PlaceBid(alice, d(tt.offer), d("1"), now)
			check.NoError(t, err)
			check.Equal(t, tt.accepted, outcome.Accepted())
			check.Equal(t, tt.max, hiddenMax(t, a))
			check.Equal(t, "10", a.CurrentPrice.String())
		})
	}
}

func TestPlaceBid_ChallengeBelowPricePlusIncrementIsRejected(t *testing.T) {
	a := newTestAuction(t, "10")
	_, err := a.PlaceBid(alice, d("30"), d("2"), now)
	check.NoError(t, err)

	outcome, err := a.PlaceBid(bob, d("11.99"), d("2"), now)
	check.NoError(t, err)
	check.Equal(t, BidRejected, outcome)
	check.Equal(t, "10", a.CurrentPrice.String())

	outcome, err = a.PlaceBid(bob, d("12"), d("2"), now)
	check.NoError(t, err)
	check.Equal(t, BidOutbid, outcome)
	check.Equal(t, "14", a.CurrentPrice.String())
}

func TestPlaceBid_ZeroIncrement(t *testing.T) {
	a := newTestAuction(t, "0")
	_, err := a.PlaceBid(alice, d("5"), decimal.Zero, now)
	check.NoError(t, err)

	outcome, err := a.PlaceBid(bob, d("5"), decimal.Zero, now)
	check.NoError(t, err)
	check.Equal(t, BidRejected, outcome)

	outcome, err = a.PlaceBid(bob, d("7"), decimal.Zero, now)
	check.NoError(t, err)
	check.Equal(t, BidNewWinner, outcome)
	check.Equal(t, "5", a.CurrentPrice.String())
}

func TestPlaceBid_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		bidder   user.User
		offer    string
		at       time.Time
		wantErr  error
		category error
	}{
		{"negative offer", alice, "-1", now, ErrNegativeOffer, errs.ErrOutOfRange},
		{"at end time", alice, "100", now.Add(time.Hour), ErrAuctionExpired, errs.ErrExpired},
		{"after end time", alice, "100", now.Add(2 * time.Hour), ErrAuctionExpired, errs.ErrExpired},
		{"seller bids", seller, "100", now, ErrSellerCannotBid, errs.ErrUnauthorized},
		{"negative offer wins over expiry", alice, "-1", now.Add(2 * time.Hour), ErrNegativeOffer, errs.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuction(t, "10")
			outcome, err := a.PlaceBid(tt.bidder, d(tt.offer), d("1"), tt.at)
			check.Equal(t, BidRejected, outcome)
			check.True(t, errors.Is(err, tt.wantErr))
			check.True(t, errors.Is(err, tt.category))
			check.Equal(t, StateNoBids, a.Bidding.Name())
		})
	}
}

func TestPlaceBid_SameUsernameOtherSiteIsADifferentUser(t *testing.T) {
	a := newTestAuction(t, "10")
	_, err := a.PlaceBid(alice, d("20"), d("1"), now)
	check.NoError(t, err)

	twin := user.New("other-site", "alice")
	outcome, err := a.PlaceBid(twin, d("15"), d("1"), now)
	check.NoError(t, err)
	check.Equal(t, BidOutbid, outcome)
}

func TestPlaceBid_RandomSequencesKeepInvariants(t *testing.T) {
	bidders := []user.User{alice, bob, carol}
	increments := []string{"0", "0.5", "1", "3"}

	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		inc := d(increments[rng.IntN(len(increments))])
		a := newTestAuction(t, "10")
		last := a.CurrentPrice

		for i := 0; i < 40; i++ {
			bidder := bidders[rng.IntN(len(bidders))]
			offer := decimal.NewFromInt(int64(rng.IntN(80)))
			if _, err := a.PlaceBid(bidder, offer, inc, now); err != nil {
				t.Fatalf("seed %d: unexpected error %v", seed, err)
			}
			check.True(t, a.CurrentPrice.GreaterThanOrEqual(last))
			last = a.CurrentPrice
			checkInvariants(t, a)
		}
		if t.Failed() {
			t.Fatalf("invariants broken with seed %d", seed)
		}
	}
}

func TestBidOutcome_String(t *testing.T) {
	check.Equal(t, "rejected", BidRejected.String())
	check.Equal(t, "new_winner", BidNewWinner.String())
	check.Equal(t, "BidOutcome(42)", BidOutcome(42).String())
}
