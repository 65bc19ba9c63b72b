package domain

import (
	"time"

	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// LogoutBackdate is how far before the logout instant the deadline is moved, the record is kept
const LogoutBackdate = 9000 * time.Minute

// Session authorizes its user to act on one site until ValidUntil (exclusive).
// ValidUntil slides forward on activity and is pushed into the past on logout.
type Session struct {
	ID         string
	Site       string
	Username   string
	ValidUntil time.Time
}

func (s *Session) User() user.User {
	return user.New(s.Site, s.Username)
}

// IsValidAt reports whether the session can be used at now
func (s *Session) IsValidAt(now time.Time) bool {
	return now.Before(s.ValidUntil)
}

// Renew extends the deadline, a deadline earlier than the current one is ignored
func (s *Session) Renew(newDeadline time.Time) {
	if newDeadline.After(s.ValidUntil) {
		s.ValidUntil = newDeadline
	}
}

// Logout invalidates an active session for good
func (s *Session) Logout(now time.Time) error {
	if !s.IsValidAt(now) {
		log.Warn("Logout rejected: session not active",
			zap.String("sessionID", s.ID),
			zap.String("site", s.Site),
			zap.Time("validUntil", s.ValidUntil),
		)
		return ErrSessionNotActive
	}
	s.ValidUntil = now.Add(-LogoutBackdate)
	return nil
}
