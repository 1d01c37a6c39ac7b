package auction

import (
	"fmt"
	"time"

	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/shopspring/decimal"
)

// Bidder is the authenticated identity submitting a bid.
type Bidder struct {
	ID       int64
	Username string
	IsAdmin  bool
}

// Validator decides whether a bid may be accepted against a vehicle snapshot.
// A bid must always be strictly greater than the current price; MinIncrement
// additionally raises the floor to CurrentPrice+MinIncrement when positive.
type Validator struct {
	MinIncrement decimal.Decimal
}

func NewValidator(minIncrement decimal.Decimal) (Validator, error) {
	if minIncrement.IsNegative() {
		return Validator{}, fmt.Errorf("minimum increment must not be negative, got %s", minIncrement)
	}
	return Validator{MinIncrement: minIncrement}, nil
}

// Validate has no side effects. Rules are checked in order and the first
// failure is returned.
func (v Validator) Validate(vehicle db.Vehicle, bidder Bidder, amount decimal.Decimal, now time.Time) error {
	if !vehicle.IsActive || !now.Before(vehicle.AuctionEnd) {
		return fmt.Errorf("%w: auction for vehicle %d ended at %s",
			ErrAuctionEnded, vehicle.ID, vehicle.AuctionEnd.Format(time.RFC3339))
	}

	if bidder.IsAdmin {
		return ErrAdminCannotBid
	}

	if !amount.GreaterThan(vehicle.CurrentPrice) {
		if v.MinIncrement.IsPositive() {
			return v.tooLow(vehicle.CurrentPrice)
		}
		return fmt.Errorf("%w: bid must be greater than current price %s",
			ErrBidTooLow, util.FormatMoney(vehicle.CurrentPrice))
	}

	if v.MinIncrement.IsPositive() && amount.LessThan(v.MinimumBid(vehicle.CurrentPrice)) {
		return v.tooLow(vehicle.CurrentPrice)
	}

	return nil
}

// MinimumBid is the lowest amount accepted under a positive MinIncrement.
func (v Validator) MinimumBid(currentPrice decimal.Decimal) decimal.Decimal {
	return currentPrice.Add(v.MinIncrement)
}

func (v Validator) tooLow(currentPrice decimal.Decimal) error {
	return fmt.Errorf("%w: bid must be at least %s, current price: %s, bid increment: %s",
		ErrBidTooLow,
		util.FormatMoney(v.MinimumBid(currentPrice)),
		util.FormatMoney(currentPrice),
		util.FormatMoney(v.MinIncrement))
}
