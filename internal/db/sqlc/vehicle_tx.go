package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type CompareAndSetPriceParams struct {
	VehicleID     int64
	ExpectedPrice decimal.Decimal
	NewPrice      decimal.Decimal
	BidderID      int64
}

// CompareAndSetPrice moves an active vehicle from ExpectedPrice to NewPrice and
// records the bid in the same transaction. It reports false, with no write,
// when the vehicle is closed or its price is no longer ExpectedPrice.
func (store *SQLStore) CompareAndSetPrice(ctx context.Context, arg CompareAndSetPriceParams) (bool, error) {
	swapped := false

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		affected, err := qTx.SetVehiclePrice(ctx, SetVehiclePriceParams{
			ID:              arg.VehicleID,
			ExpectedPrice:   arg.ExpectedPrice,
			CurrentPrice:    arg.NewPrice,
			HighestBidderID: arg.BidderID,
		})
		if err != nil {
			return fmt.Errorf("failed to update vehicle price: %w", err)
		}
		if affected == 0 {
			return nil
		}

		_, err = qTx.CreateBid(ctx, CreateBidParams{
			Amount:    arg.NewPrice,
			UserID:    arg.BidderID,
			VehicleID: arg.VehicleID,
		})
		if err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}

		swapped = true
		return nil
	})

	return swapped, err
}

// FinalizeAuction closes an active auction and assigns its owner. It reports
// false when the auction was already closed.
func (store *SQLStore) FinalizeAuction(ctx context.Context, id int64, ownerID *int64) (bool, error) {
	closed := false

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		vehicle, err := qTx.GetVehicleForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to lock vehicle: %w", err)
		}
		if !vehicle.IsActive {
			return nil
		}

		affected, err := qTx.CloseVehicleAuction(ctx, CloseVehicleAuctionParams{
			ID:      id,
			OwnerID: ownerID,
		})
		if err != nil {
			return fmt.Errorf("failed to close auction: %w", err)
		}

		closed = affected == 1
		return nil
	})

	return closed, err
}
