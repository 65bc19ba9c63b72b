package application

import (
	"context"
	"testing"
	"time"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/clock"
	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
	"github.com/cristianortiz/proxyBidding/internal/shared/store/memory"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	"github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	t0     = time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC)
	seller = domain.New("ebay", "seller")
	alice  = domain.New("ebay", "alice")
	bob    = domain.New("ebay", "bob")
)

type fixture struct {
	store   *memory.Store
	clock   *clock.Manual
	service UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	clk := clock.NewManual(t0)
	require.NoError(t, st.Repositories().Sites().Create(ctx, &site.Site{
		Name:                "ebay",
		MinimumBidIncrement: decimal.NewFromInt(1),
		SessionExpiration:   time.Hour,
	}))
	for _, u := range []domain.User{seller, alice, bob} {
		require.NoError(t, st.Repositories().Users().Create(ctx, u))
	}
	return &fixture{
		store:   st,
		clock:   clk,
		service: NewUserService(NewWonAuctionsUseCase(st), NewDeleteUserUseCase(st, clk)),
	}
}

// listing creates an auction ending at endsOn and, when bidder is set, gives it to bidder
func (f *fixture) listing(t *testing.T, endsOn time.Time, bidder *domain.User) *auction.Auction {
	t.Helper()
	ctx := context.Background()
	a, err := auction.NewAuction(uuid.New(), seller, "lamp", endsOn, decimal.NewFromInt(10), t0)
	require.NoError(t, err)
	require.NoError(t, f.store.Repositories().Auctions().Create(ctx, a))
	if bidder != nil {
		outcome, err := a.PlaceBid(*bidder, decimal.NewFromInt(10), decimal.NewFromInt(1), t0)
		require.NoError(t, err)
		require.True(t, outcome.Accepted())
		require.NoError(t, f.store.Repositories().Auctions().Save(ctx, a))
	}
	return a
}

func collect(t *testing.T, f *fixture, u domain.User) []uuid.UUID {
	t.Helper()
	seq, err := f.service.WonAuctions(context.Background(), u)
	require.NoError(t, err)
	var ids []uuid.UUID
	for a, err := range seq {
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	return ids
}

func TestWonAuctions(t *testing.T) {
	f := newFixture(t)
	first := f.listing(t, t0.Add(time.Hour), &alice)
	second := f.listing(t, t0.Add(2*time.Hour), &alice)
	f.listing(t, t0.Add(3*time.Hour), &bob)
	f.listing(t, t0.Add(4*time.Hour), nil)

	require.Equal(t, []uuid.UUID{first.ID, second.ID}, collect(t, f, alice))
	require.Len(t, collect(t, f, bob), 1)
	require.Empty(t, collect(t, f, seller))

	// ended auctions still count
	f.clock.Advance(48 * time.Hour)
	require.Len(t, collect(t, f, alice), 2)
}

func TestWonAuctions_ReadsAtRangeTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.listing(t, t0.Add(time.Hour), &alice)

	seq, err := f.service.WonAuctions(ctx, bob)
	require.NoError(t, err)

	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	require.Equal(t, 0, count())

	_, err = a.PlaceBid(bob, decimal.NewFromInt(30), decimal.NewFromInt(1), t0)
	require.NoError(t, err)
	require.NoError(t, f.store.Repositories().Auctions().Save(ctx, a))

	// same sequence, ranged again
	require.Equal(t, 1, count())
}

func TestWonAuctions_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.WonAuctions(context.Background(), domain.New("ebay", "ghost"))
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteUser_BlockedByLiveAuctions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.listing(t, t0.Add(time.Hour), &alice)

	for _, u := range []domain.User{seller, alice} {
		err := f.service.DeleteUser(ctx, u)
		require.ErrorIs(t, err, domain.ErrUserHasOpenAuction)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	}

	// bob has nothing live
	require.NoError(t, f.service.DeleteUser(ctx, bob))

	// at the end time the auction still blocks, right after it no longer does
	f.clock.Set(a.EndsOn)
	require.ErrorIs(t, f.service.DeleteUser(ctx, alice), errs.ErrInvalidState)
	f.clock.Advance(time.Nanosecond)
	require.NoError(t, f.service.DeleteUser(ctx, alice))
	require.NoError(t, f.service.DeleteUser(ctx, seller))
}

func TestDeleteUser_InvalidatesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessions := f.store.Repositories().Sessions()
	require.NoError(t, sessions.Create(ctx, &session.Session{ID: "a1", Site: "ebay", Username: "alice", ValidUntil: t0.Add(time.Hour)}))
	require.NoError(t, sessions.Create(ctx, &session.Session{ID: "b1", Site: "ebay", Username: "bob", ValidUntil: t0.Add(time.Hour)}))

	require.NoError(t, f.service.DeleteUser(ctx, alice))

	s, err := sessions.Get(ctx, "ebay", "a1")
	require.NoError(t, err, "the session record is kept")
	require.False(t, s.IsValidAt(t0))

	other, err := sessions.Get(ctx, "ebay", "b1")
	require.NoError(t, err)
	require.True(t, other.IsValidAt(t0))

	_, err = f.store.Repositories().Users().Get(ctx, alice)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	err = f.service.DeleteUser(ctx, alice)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteUser_BlockedLeavesSessionsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.listing(t, t0.Add(time.Hour), nil)
	sessions := f.store.Repositories().Sessions()
	require.NoError(t, sessions.Create(ctx, &session.Session{ID: "s1", Site: "ebay", Username: "seller", ValidUntil: t0.Add(time.Hour)}))

	require.Error(t, f.service.DeleteUser(ctx, seller))

	s, err := sessions.Get(ctx, "ebay", "s1")
	require.NoError(t, err)
	require.True(t, s.IsValidAt(t0))
}
