// Package errs holds the error categories shared by every bounded context. Domain packages wrap
// one of these with %w so callers can match on the category with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	// out of range is a kind of invalid argument (negative prices and offers)
	ErrOutOfRange   = fmt.Errorf("out of range: %w", ErrInvalidArgument)
	ErrExpired      = errors.New("expired")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)
