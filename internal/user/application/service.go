package application

import (
	"context"
	"iter"

	auction "github.com/cristianortiz/proxyBidding/internal/auction/domain"
	"github.com/cristianortiz/proxyBidding/internal/user/domain"
)

// UserService exposes the user use cases to the outer layers
type UserService interface {
	WonAuctions(ctx context.Context, u domain.User) (iter.Seq2[*auction.Auction, error], error)
	DeleteUser(ctx context.Context, u domain.User) error
}

type userService struct {
	wonAuctionsUC *WonAuctionsUseCase
	deleteUserUC  *DeleteUserUseCase
}

func NewUserService(wonAuctionsUC *WonAuctionsUseCase, deleteUserUC *DeleteUserUseCase) UserService {
	return &userService{
		wonAuctionsUC: wonAuctionsUC,
		deleteUserUC:  deleteUserUC,
	}
}

func (us *userService) WonAuctions(ctx context.Context, u domain.User) (iter.Seq2[*auction.Auction, error], error) {
	return us.wonAuctionsUC.Execute(ctx, u)
}

func (us *userService) DeleteUser(ctx context.Context, u domain.User) error {
	return us.deleteUserUC.Execute(ctx, u)
}
