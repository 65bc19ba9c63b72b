package application

import (
	"context"

	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionService defines application interface layer of auction module,
// exposes use cases to the outer layers
type AuctionService interface {
	CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (uuid.UUID, error)
	// PlaceBid reports whether the offer was accepted
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (bool, error)
	GetAuctionState(ctx context.Context, site string, id uuid.UUID) (*AuctionStateDTO, error)
	CurrentPrice(ctx context.Context, site string, id uuid.UUID) (decimal.Decimal, error)
	// CurrentWinner is nil while the auction has no bids
	CurrentWinner(ctx context.Context, site string, id uuid.UUID) (*user.User, error)
	DeleteAuction(ctx context.Context, site string, id uuid.UUID) error
}

type auctionService struct {
	createAuctionUC   *CreateAuctionUseCase
	placeBidUC        *PlaceBidUseCase
	getAuctionStateUC *GetAuctionStateUseCase
	deleteAuctionUC   *DeleteAuctionUseCase
}

func NewAuctionService(
	createAuctionUC *CreateAuctionUseCase,
	placeBidUC *PlaceBidUseCase,
	getAuctionStateUC *GetAuctionStateUseCase,
	deleteAuctionUC *DeleteAuctionUseCase,
) AuctionService {
	return &auctionService{
		createAuctionUC:   createAuctionUC,
		placeBidUC:        placeBidUC,
		getAuctionStateUC: getAuctionStateUC,
		deleteAuctionUC:   deleteAuctionUC,
	}
}

func (as *auctionService) CreateAuction(ctx context.Context, cmd CreateAuctionDTO) (uuid.UUID, error) {
	return as.createAuctionUC.Execute(ctx, cmd)
}

func (as *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (bool, error) {
	return as.placeBidUC.Execute(ctx, cmd)
}

func (as *auctionService) GetAuctionState(ctx context.Context, site string, id uuid.UUID) (*AuctionStateDTO, error) {
	return as.getAuctionStateUC.Execute(ctx, site, id)
}

func (as *auctionService) CurrentPrice(ctx context.Context, site string, id uuid.UUID) (decimal.Decimal, error) {
	state, err := as.getAuctionStateUC.Execute(ctx, site, id)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return state.CurrentPrice, nil
}

func (as *auctionService) CurrentWinner(ctx context.Context, site string, id uuid.UUID) (*user.User, error) {
	state, err := as.getAuctionStateUC.Execute(ctx, site, id)
	if err != nil {
		return nil, err
	}
	return state.Winner, nil
}

func (as *auctionService) DeleteAuction(ctx context.Context, site string, id uuid.UUID) error {
	return as.deleteAuctionUC.Execute(ctx, site, id)
}
