package db

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestVehicle(t *testing.T, store *MemoryStore, price int64, end time.Time) Vehicle {
	t.Helper()

	vehicle, err := store.CreateVehicle(context.Background(), CreateVehicleParams{
		Title:         "Ford Focus 2018",
		Slug:          "ford-focus-2018",
		StartingPrice: decimal.NewFromInt(price),
		AuctionEnd:    end,
	})
	require.NoError(t, err)
	require.True(t, vehicle.IsActive)
	require.True(t, vehicle.CurrentPrice.Equal(vehicle.StartingPrice))
	return vehicle
}

func TestMemoryStore_CompareAndSetPrice(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.AddUser(User{ID: 5, Username: "alice"})
	vehicle := createTestVehicle(t, store, 1000, time.Now().Add(time.Hour))

	swapped, err := store.CompareAndSetPrice(ctx, CompareAndSetPriceParams{
		VehicleID:     vehicle.ID,
		ExpectedPrice: decimal.NewFromInt(1000),
		NewPrice:      decimal.NewFromInt(1100),
		BidderID:      5,
	})
	require.NoError(t, err)
	require.True(t, swapped)

	// Stale expectation.
	swapped, err = store.CompareAndSetPrice(ctx, CompareAndSetPriceParams{
		VehicleID:     vehicle.ID,
		ExpectedPrice: decimal.NewFromInt(1000),
		NewPrice:      decimal.NewFromInt(1200),
		BidderID:      5,
	})
	require.NoError(t, err)
	require.False(t, swapped)

	got, err := store.GetVehicle(ctx, vehicle.ID)
	require.NoError(t, err)
	require.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(1100)))
	require.Equal(t, "alice", *got.HighestBidderName)

	bids, err := store.ListBidsByVehicle(ctx, vehicle.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.True(t, bids[0].Amount.Equal(decimal.NewFromInt(1100)))
}

func TestMemoryStore_FinalizeAuction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	vehicle := createTestVehicle(t, store, 1000, time.Now().Add(-time.Minute))

	ids, err := store.ListExpiredAuctionIDs(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, []int64{vehicle.ID}, ids)

	owner := int64(9)
	closed, err := store.FinalizeAuction(ctx, vehicle.ID, &owner)
	require.NoError(t, err)
	require.True(t, closed)

	closed, err = store.FinalizeAuction(ctx, vehicle.ID, &owner)
	require.NoError(t, err)
	require.False(t, closed)

	ids, err = store.ListExpiredAuctionIDs(ctx, time.Now())
	require.NoError(t, err)
	require.Empty(t, ids)

	owned, err := store.ListVehiclesByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)

	// Closed auctions refuse further price changes.
	swapped, err := store.CompareAndSetPrice(ctx, CompareAndSetPriceParams{
		VehicleID:     vehicle.ID,
		ExpectedPrice: decimal.NewFromInt(1000),
		NewPrice:      decimal.NewFromInt(2000),
		BidderID:      owner,
	})
	require.NoError(t, err)
	require.False(t, swapped)
}

func TestMemoryStore_DeleteAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	vehicle := createTestVehicle(t, store, 1000, time.Now().Add(time.Hour))

	end := time.Now().Add(48 * time.Hour).UTC()
	updated, err := store.UpdateAuctionEnd(ctx, UpdateAuctionEndParams{ID: vehicle.ID, AuctionEnd: end})
	require.NoError(t, err)
	require.True(t, updated.AuctionEnd.Equal(end))

	require.NoError(t, store.DeleteVehicle(ctx, vehicle.ID))
	require.ErrorIs(t, store.DeleteVehicle(ctx, vehicle.ID), ErrRecordNotFound)

	_, err = store.GetVehicle(ctx, vehicle.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = store.UpdateAuctionEnd(ctx, UpdateAuctionEndParams{ID: vehicle.ID, AuctionEnd: end})
	require.ErrorIs(t, err, ErrRecordNotFound)
}
