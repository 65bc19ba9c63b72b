package domain

import (
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
)

var (
	ErrAuctionNotFound       = fmt.Errorf("auction not found: %w", errs.ErrNotFound)
	ErrEmptyDescription      = fmt.Errorf("auction description cannot be empty: %w", errs.ErrInvalidArgument)
	ErrNegativeStartingPrice = fmt.Errorf("starting price cannot be negative: %w", errs.ErrOutOfRange)
	ErrEndsOnNotInFuture     = fmt.Errorf("auction end time must be in the future: %w", errs.ErrExpired)
	ErrNegativeOffer         = fmt.Errorf("bid amount cannot be negative: %w", errs.ErrOutOfRange)
	ErrAuctionExpired        = fmt.Errorf("auction already ended: %w", errs.ErrExpired)
	ErrSellerCannotBid       = fmt.Errorf("seller cannot bid on its own auction: %w", errs.ErrUnauthorized)
)
