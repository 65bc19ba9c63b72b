package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/cristianortiz/proxyBidding/internal/auction/domain"
	"github.com/cristianortiz/proxyBidding/internal/shared/db"
	user "github.com/cristianortiz/proxyBidding/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const auctionColumns = `id, site_name, seller_username, description, ends_on, starting_price,
               current_price, bidding_state, winner_username, hidden_max`

// AuctionRepository implements domain.AuctionRepository interface
type AuctionRepository struct {
	db db.DBTX
}

// NewAuctionRepository creates a new instance of AuctionRepository bound to a pool or a transaction
func NewAuctionRepository(db db.DBTX) *AuctionRepository {
	return &AuctionRepository{db: db}
}

// Create inserts a brand new auction, created_at and updated_at use the column defaults
func (r *AuctionRepository) Create(ctx context.Context, a *domain.Auction) error {
	winner, hiddenMax := biddingColumns(a.Bidding)
	query := `
        INSERT INTO auctions (id, site_name, seller_username, description, ends_on, starting_price,
                              current_price, bidding_state, winner_username, hidden_max)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.Site,
		a.Seller.Username,
		a.Description,
		a.EndsOn,
		a.StartingPrice,
		a.CurrentPrice,
		a.Bidding.Name(),
		winner,
		hiddenMax,
	)
	return err
}

// Save writes back the fields a bid can change
func (r *AuctionRepository) Save(ctx context.Context, a *domain.Auction) error {
	winner, hiddenMax := biddingColumns(a.Bidding)
	query := `
        UPDATE auctions
        SET current_price = $3,
            bidding_state = $4,
            winner_username = $5,
            hidden_max = $6,
            updated_at = NOW()
        WHERE site_name = $1 AND id = $2
    `
	tag, err := r.db.Exec(ctx, query,
		a.Site,
		a.ID,
		a.CurrentPrice,
		a.Bidding.Name(),
		winner,
		hiddenMax,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

func (r *AuctionRepository) Get(ctx context.Context, site string, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE site_name = $1 AND id = $2`
	return r.get(ctx, query, site, id)
}

// GetForUpdate row-locks the auction, concurrent bids on the same auction wait for the
// transaction holding it while other auctions are not affected
func (r *AuctionRepository) GetForUpdate(ctx context.Context, site string, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE site_name = $1 AND id = $2 FOR UPDATE`
	return r.get(ctx, query, site, id)
}

func (r *AuctionRepository) get(ctx context.Context, query, site string, id uuid.UUID) (*domain.Auction, error) {
	a, err := scanAuction(r.db.QueryRow(ctx, query, site, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AuctionRepository) Delete(ctx context.Context, site string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM auctions WHERE site_name = $1 AND id = $2`, site, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAuctionNotFound
	}
	return nil
}

// WonBy streams the auctions led by winner, each range runs the query again
func (r *AuctionRepository) WonBy(ctx context.Context, winner user.User) iter.Seq2[*domain.Auction, error] {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE site_name = $1 AND winner_username = $2
        ORDER BY ends_on ASC, id ASC
    `
	return func(yield func(*domain.Auction, error) bool) {
		rows, err := r.db.Query(ctx, query, winner.Site, winner.Username)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAuction(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(a, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (r *AuctionRepository) HasOpenAuctions(ctx context.Context, u user.User, now time.Time) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM auctions
            WHERE site_name = $1
              AND (seller_username = $2 OR winner_username = $2)
              AND ends_on >= $3
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, u.Site, u.Username, now).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*domain.Auction, error) {
	a := &domain.Auction{}
	var (
		sellerUsername string
		state          string
		winnerUsername *string // pointer to handle NULL
		hiddenMax      decimal.NullDecimal
	)
	err := row.Scan(
		&a.ID,
		&a.Site,
		&sellerUsername,
		&a.Description,
		&a.EndsOn,
		&a.StartingPrice,
		&a.CurrentPrice,
		&state,
		&winnerUsername,
		&hiddenMax,
	)
	if err != nil {
		return nil, err
	}
	a.Seller = user.New(a.Site, sellerUsername)
	a.EndsOn = a.EndsOn.UTC()

	switch state {
	case domain.StateNoBids:
		a.Bidding = domain.NoBids{}
	case domain.StateHasBids:
		if winnerUsername == nil || !hiddenMax.Valid {
			return nil, fmt.Errorf("auction %s: has_bids row without winner or hidden max", a.ID)
		}
		a.Bidding = domain.HasBids{Winner: user.New(a.Site, *winnerUsername), HiddenMax: hiddenMax.Decimal}
	default:
		return nil, fmt.Errorf("auction %s: unknown bidding state %q", a.ID, state)
	}
	return a, nil
}

func biddingColumns(state domain.BiddingState) (*string, decimal.NullDecimal) {
	if hb, ok := state.(domain.HasBids); ok {
		winner := hb.Winner.Username
		return &winner, decimal.NewNullDecimal(hb.HiddenMax)
	}
	return nil, decimal.NullDecimal{}
}
