package application

import (
	"context"

	"github.com/cristianortiz/proxyBidding/internal/session/domain"
)

// SessionService exposes the session use cases to the outer layers
type SessionService interface {
	IsSessionValid(ctx context.Context, site, sessionID string) (bool, error)
	IsValid(ctx context.Context, snapshot *domain.Session) (bool, error)
	Logout(ctx context.Context, site, sessionID string) error
}

type sessionService struct {
	isValidUC *IsValidUseCase
	logoutUC  *LogoutUseCase
}

func NewSessionService(isValidUC *IsValidUseCase, logoutUC *LogoutUseCase) SessionService {
	return &sessionService{
		isValidUC: isValidUC,
		logoutUC:  logoutUC,
	}
}

func (ss *sessionService) IsSessionValid(ctx context.Context, site, sessionID string) (bool, error) {
	return ss.isValidUC.Execute(ctx, site, sessionID)
}

func (ss *sessionService) IsValid(ctx context.Context, snapshot *domain.Session) (bool, error) {
	return ss.isValidUC.ExecuteSnapshot(ctx, snapshot)
}

func (ss *sessionService) Logout(ctx context.Context, site, sessionID string) error {
	return ss.logoutUC.Execute(ctx, site, sessionID)
}
