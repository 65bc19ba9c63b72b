package memory

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"time"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
)

type siteRepository struct {
	access accessor
}

func (r *siteRepository) Get(ctx context.Context, name string) (*site.Site, error) {
	var (
		found site.Site
		ok    bool
	)
	r.access(false, func(st *state) {
		found, ok = st.sites[name]
	})
	if !ok {
		return nil, site.ErrSiteNotFound
	}
	return &found, nil
}

func (r *siteRepository) Create(ctx context.Context, s *site.Site) error {
	var err error
	r.access(true, func(st *state) {
		if _, exists := st.sites[s.Name]; exists {
			err = ErrDuplicateKey
			return
		}
		st.sites[s.Name] = *s
	})
	return err
}

type userRepository struct {
	access accessor
}

func (r *userRepository) Get(ctx context.Context, u user.User) (*user.User, error) {
	var ok bool
	r.access(false, func(st *state) {
		_, ok = st.users[u]
	})
	if !ok {
		return nil, user.ErrUserNotFound
	}
	found := u
	return &found, nil
}

// GetForUpdate is Get, transactions are already serialized
func (r *userRepository) GetForUpdate(ctx context.Context, u user.User) (*user.User, error) {
	return r.Get(ctx, u)
}

func (r *userRepository) GetForShare(ctx context.Context, u user.User) (*user.User, error) {
	return r.Get(ctx, u)
}

func (r *userRepository) Create(ctx context.Context, u user.User) error {
	var err error
	r.access(true, func(st *state) {
		if _, ok := st.sites[u.Site]; !ok {
			err = site.ErrSiteNotFound
			return
		}
		if _, exists := st.users[u]; exists {
			err = ErrDuplicateKey
			return
		}
		st.users[u] = struct{}{}
	})
	return err
}

func (r *userRepository) Delete(ctx context.Context, u user.User) error {
	var err error
	r.access(true, func(st *state) {
		if _, ok := st.users[u]; !ok {
			err = user.ErrUserNotFound
			return
		}
		delete(st.users, u)
	})
	return err
}

type sessionRepository struct {
	access accessor
}

func (r *sessionRepository) Get(ctx context.Context, siteName, id string) (*session.Session, error) {
	var (
		found session.Session
		ok    bool
	)
	r.access(false, func(st *state) {
		found, ok = st.sessions[sessionKey{site: siteName, id: id}]
	})
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &found, nil
}

// GetForUpdate is Get, transactions are already serialized
func (r *sessionRepository) GetForUpdate(ctx context.Context, siteName, id string) (*session.Session, error) {
	return r.Get(ctx, siteName, id)
}

func (r *sessionRepository) Create(ctx context.Context, s *session.Session) error {
	var err error
	r.access(true, func(st *state) {
		key := sessionKey{site: s.Site, id: s.ID}
		if _, exists := st.sessions[key]; exists {
			err = ErrDuplicateKey
			return
		}
		st.sessions[key] = *s
	})
	return err
}

func (r *sessionRepository) Save(ctx context.Context, s *session.Session) error {
	var err error
	r.access(true, func(st *state) {
		key := sessionKey{site: s.Site, id: s.ID}
		stored, ok := st.sessions[key]
		if !ok {
			err = session.ErrSessionNotFound
			return
		}
		stored.ValidUntil = s.ValidUntil
		st.sessions[key] = stored
	})
	return err
}

func (r *sessionRepository) InvalidateByUser(ctx context.Context, u user.User, now, validUntil time.Time) (int64, error) {
	var n int64
	r.access(true, func(st *state) {
		for key, s := range st.sessions {
			if s.User() == u && s.ValidUntil.After(now) {
				s.ValidUntil = validUntil
				st.sessions[key] = s
				n++
			}
		}
	})
	return n, nil
}

type auctionRepository struct {
	access accessor
}

func (r *auctionRepository) Get(ctx context.Context, siteName string, id uuid.UUID) (*auction.Auction, error) {
	var (
		found auction.Auction
		ok    bool
	)
	r.access(false, func(st *state) {
		found, ok = st.auctions[auctionKey{site: siteName, id: id}]
	})
	if !ok {
		return nil, auction.ErrAuctionNotFound
	}
	return &found, nil
}

// GetForUpdate is Get, transactions are already serialized
func (r *auctionRepository) GetForUpdate(ctx context.Context, siteName string, id uuid.UUID) (*auction.Auction, error) {
	return r.Get(ctx, siteName, id)
}

func (r *auctionRepository) Create(ctx context.Context, a *auction.Auction) error {
	var err error
	r.access(true, func(st *state) {
		if _, ok := st.sites[a.Site]; !ok {
			err = site.ErrSiteNotFound
			return
		}
		key := auctionKey{site: a.Site, id: a.ID}
		if _, exists := st.auctions[key]; exists {
			err = ErrDuplicateKey
			return
		}
		st.auctions[key] = *a
	})
	return err
}

func (r *auctionRepository) Save(ctx context.Context, a *auction.Auction) error {
	var err error
	r.access(true, func(st *state) {
		key := auctionKey{site: a.Site, id: a.ID}
		stored, ok := st.auctions[key]
		if !ok {
			err = auction.ErrAuctionNotFound
			return
		}
		stored.CurrentPrice = a.CurrentPrice
		stored.Bidding = a.Bidding
		st.auctions[key] = stored
	})
	return err
}

func (r *auctionRepository) Delete(ctx context.Context, siteName string, id uuid.UUID) error {
	var err error
	r.access(true, func(st *state) {
		key := auctionKey{site: siteName, id: id}
		if _, ok := st.auctions[key]; !ok {
			err = auction.ErrAuctionNotFound
			return
		}
		delete(st.auctions, key)
	})
	return err
}

// WonBy takes a snapshot each time it is ranged and yields it without holding the lock
func (r *auctionRepository) WonBy(ctx context.Context, winner user.User) iter.Seq2[*auction.Auction, error] {
	return func(yield func(*auction.Auction, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}
		var won []auction.Auction
		r.access(false, func(st *state) {
			for _, a := range st.auctions {
				if w, ok := a.Winner(); ok && w == winner {
					won = append(won, a)
				}
			}
		})
		slices.SortFunc(won, func(x, y auction.Auction) int {
			if c := x.EndsOn.Compare(y.EndsOn); c != 0 {
				return c
			}
			return cmp.Compare(x.ID.String(), y.ID.String())
		})
		for i := range won {
			if !yield(&won[i], nil) {
				return
			}
		}
	}
}

func (r *auctionRepository) HasOpenAuctions(ctx context.Context, u user.User, now time.Time) (bool, error) {
	var open bool
	r.access(false, func(st *state) {
		for _, a := range st.auctions {
			if a.EndsOn.Before(now) {
				continue
			}
			if w, ok := a.Winner(); a.Seller == u || (ok && w == u) {
				open = true
				return
			}
		}
	})
	return open, nil
}
