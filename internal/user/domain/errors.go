package domain

import (
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
)

var (
	ErrUserNotFound       = fmt.Errorf("user not found: %w", errs.ErrNotFound)
	ErrUserHasOpenAuction = fmt.Errorf("user still sells or leads an auction that has not ended: %w", errs.ErrInvalidState)
)
