package domain

import (
	"fmt"

	"github.com/cristianortiz/proxyBidding/internal/shared/errs"
)

var (
	ErrSessionNotFound  = fmt.Errorf("session not found: %w", errs.ErrNotFound)
	ErrSessionInvalid   = fmt.Errorf("session is missing or no longer valid: %w", errs.ErrUnauthorized)
	ErrSessionNotActive = fmt.Errorf("session is missing or already expired: %w", errs.ErrInvalidState)
)
