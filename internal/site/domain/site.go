package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site is the read-only configuration every auction and session belongs to
type Site struct {
	Name                string
	MinimumBidIncrement decimal.Decimal // >= 0
	SessionExpiration   time.Duration   // sliding window added on session activity
}

// SessionDeadline is the validity deadline a session gets when it shows activity at now
func (s Site) SessionDeadline(now time.Time) time.Time {
	return now.Add(s.SessionExpiration)
}
