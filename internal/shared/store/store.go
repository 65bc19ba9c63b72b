// Package store is the unit of work every use case runs against. A Store hands out repositories
// either for autocommit reads or bound to one transaction.
package store

import (
	"context"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	session "github.com/cristianortiz/proxyBidding/internal/session/domain"
	site "github.com/cristianortiz/proxyBidding/internal/site/domain"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
)

// Repositories groups the repositories of every bounded context over the same connection
type Repositories interface {
	Sites() site.SiteRepository
	Users() user.UserRepository
	Sessions() session.SessionRepository
	Auctions() auction.AuctionRepository
}

type Store interface {
	// Repositories returns repositories outside any transaction, for reads.
	// Do not call it from inside Atomic.
	Repositories() Repositories
	// Atomic runs fn in one transaction, everything fn wrote is kept only if it returns nil
	Atomic(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Ping(ctx context.Context) error
}
