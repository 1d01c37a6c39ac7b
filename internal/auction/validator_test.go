package auction

import (
	"testing"
	"time"

	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	open := db.Vehicle{
		ID:            1,
		StartingPrice: decimal.NewFromInt(1000),
		CurrentPrice:  decimal.NewFromInt(1000),
		AuctionEnd:    now.Add(time.Hour),
		IsActive:      true,
	}
	bidder := Bidder{ID: 7, Username: "alice"}

	tests := []struct {
		name      string
		increment decimal.Decimal
		vehicle   func() db.Vehicle
		bidder    Bidder
		amount    decimal.Decimal
		wantErr   error
		wantMsg   string
	}{
		{
			name:    "amount_above_current",
			vehicle: func() db.Vehicle { return open },
			bidder:  bidder,
			amount:  decimal.NewFromInt(1001),
		},
		{
			name:    "fractional_amount_above_current",
			vehicle: func() db.Vehicle { return open },
			bidder:  bidder,
			amount:  decimal.RequireFromString("1000.01"),
		},
		{
			name:    "amount_equal_to_current",
			vehicle: func() db.Vehicle { return open },
			bidder:  bidder,
			amount:  decimal.NewFromInt(1000),
			wantErr: ErrBidTooLow,
			wantMsg: "bid must be greater than current price $1,000.00",
		},
		{
			name:    "amount_below_current",
			vehicle: func() db.Vehicle { return open },
			bidder:  bidder,
			amount:  decimal.NewFromInt(900),
			wantErr: ErrBidTooLow,
		},
		{
			name: "auction_past_end",
			vehicle: func() db.Vehicle {
				v := open
				v.AuctionEnd = now.Add(-time.Second)
				return v
			},
			bidder:  bidder,
			amount:  decimal.NewFromInt(5000),
			wantErr: ErrAuctionEnded,
		},
		{
			name: "auction_ends_exactly_now",
			vehicle: func() db.Vehicle {
				v := open
				v.AuctionEnd = now
				return v
			},
			bidder:  bidder,
			amount:  decimal.NewFromInt(5000),
			wantErr: ErrAuctionEnded,
		},
		{
			name: "auction_already_closed",
			vehicle: func() db.Vehicle {
				v := open
				v.IsActive = false
				return v
			},
			bidder:  bidder,
			amount:  decimal.NewFromInt(5000),
			wantErr: ErrAuctionEnded,
		},
		{
			name:    "admin_bidder",
			vehicle: func() db.Vehicle { return open },
			bidder:  Bidder{ID: 1, Username: "root", IsAdmin: true},
			amount:  decimal.NewFromInt(5000),
			wantErr: ErrAdminCannotBid,
		},
		{
			name: "ended_checked_before_admin",
			vehicle: func() db.Vehicle {
				v := open
				v.IsActive = false
				return v
			},
			bidder:  Bidder{ID: 1, Username: "root", IsAdmin: true},
			amount:  decimal.NewFromInt(5000),
			wantErr: ErrAuctionEnded,
		},
		{
			name:      "increment_satisfied",
			increment: decimal.NewFromInt(50),
			vehicle:   func() db.Vehicle { return open },
			bidder:    bidder,
			amount:    decimal.NewFromInt(1050),
		},
		{
			name:      "increment_not_satisfied",
			increment: decimal.NewFromInt(50),
			vehicle:   func() db.Vehicle { return open },
			bidder:    bidder,
			amount:    decimal.NewFromInt(1049),
			wantErr:   ErrBidTooLow,
			wantMsg:   "bid must be at least $1,050.00, current price: $1,000.00, bid increment: $50.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := NewValidator(tc.increment)
			require.NoError(t, err)

			err = v.Validate(tc.vehicle(), tc.bidder, tc.amount, now)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				require.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestNewValidator_RejectsNegativeIncrement(t *testing.T) {
	_, err := NewValidator(decimal.NewFromInt(-1))
	require.Error(t, err)
}

func TestKind(t *testing.T) {
	require.Equal(t, KindNotFound, Kind(ErrNotFound))
	require.Equal(t, KindAuctionEnded, Kind(ErrAuctionEnded))
	require.Equal(t, KindAdminCannotBid, Kind(ErrAdminCannotBid))
	require.Equal(t, KindBidTooLow, Kind(ErrBidTooLow))
	require.Equal(t, KindStorage, Kind(ErrStorage))
	require.True(t, IsRejection(ErrBidTooLow))
	require.False(t, IsRejection(ErrStorage))
}
