// Package memory is an in-process store.Store. Transactions work on a copy of the whole state
// under the write lock and publish it only on success, which serializes every transaction.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/store"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
)

var ErrDuplicateKey = errors.New("memory store: duplicate key")

type sessionKey struct {
	site string
	id   string
}

type auctionKey struct {
	site string
	id   uuid.UUID
}

// state holds values, never pointers, so a shallow map copy is a full snapshot
type state struct {
	sites    map[string]site.Site
	users    map[user.User]struct{}
	sessions map[sessionKey]session.Session
	auctions map[auctionKey]auction.Auction
}

func newState() *state {
	return &state{
		sites:    make(map[string]site.Site),
		users:    make(map[user.User]struct{}),
		sessions: make(map[sessionKey]session.Session),
		auctions: make(map[auctionKey]auction.Auction),
	}
}

func (s *state) clone() *state {
	return &state{
		sites:    maps.Clone(s.sites),
		users:    maps.Clone(s.users),
		sessions: maps.Clone(s.sessions),
		auctions: maps.Clone(s.auctions),
	}
}

// accessor runs fn against a state, write tells whether fn mutates it
type accessor func(write bool, fn func(st *state))

type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Repositories() store.Repositories {
	return repositories{access: s.locked}
}

func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, r store.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, repositories{access: direct(work)}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) locked(write bool, fn func(st *state)) {
	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.state)
}

// direct is used inside Atomic, the write lock is already held
func direct(st *state) accessor {
	return func(_ bool, fn func(st *state)) {
		fn(st)
	}
}

type repositories struct {
	access accessor
}

func (r repositories) Sites() site.SiteRepository {
	return &siteRepository{access: r.access}
}

func (r repositories) Users() user.UserRepository {
	return &userRepository{access: r.access}
}

func (r repositories) Sessions() session.SessionRepository {
	return &sessionRepository{access: r.access}
}

func (r repositories) Auctions() auction.AuctionRepository {
	return &auctionRepository{access: r.access}
}
