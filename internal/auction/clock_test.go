package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mockauction "github.com/katatrina/vehicle-auction/internal/auction/mock"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClock_SweepContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mockauction.NewMockStore(ctrl)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	winner := alice.ID
	expired := db.Vehicle{
		ID:              2,
		Title:           "Honda Civic 2015",
		CurrentPrice:    decimal.NewFromInt(4200),
		AuctionEnd:      now.Add(-time.Second),
		IsActive:        true,
		HighestBidderID: &winner,
	}

	store.EXPECT().ListExpiredAuctionIDs(gomock.Any(), now).Return([]int64{1, 2}, nil)
	store.EXPECT().GetVehicle(gomock.Any(), int64(1)).Return(db.Vehicle{}, errors.New("connection refused"))
	store.EXPECT().GetVehicle(gomock.Any(), int64(2)).Return(expired, nil)
	store.EXPECT().FinalizeAuction(gomock.Any(), int64(2), &winner).Return(true, nil)

	publisher := &recordingPublisher{}
	distributor := &fakeDistributor{}
	registry := NewRegistry(store, publisher, WithClock(func() time.Time { return now }))
	clock, err := NewClock(registry, store, time.Second, distributor)
	require.NoError(t, err)

	require.Equal(t, 1, clock.Sweep(context.Background()))

	closed := publisher.ofType(event.TypeAuctionClosed)
	require.Len(t, closed, 1)
	require.Equal(t, int64(2), closed[0].VehicleID)

	require.Len(t, distributor.closed, 1)
	require.Equal(t, "Honda Civic 2015", distributor.closed[0].Title)
	require.Equal(t, winner, *distributor.closed[0].WinnerID)
}

func TestClock_SweepListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mockauction.NewMockStore(ctrl)
	store.EXPECT().ListExpiredAuctionIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	registry := NewRegistry(store, &recordingPublisher{})
	clock, err := NewClock(registry, store, 0, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultSweepInterval, clock.interval)

	require.Equal(t, 0, clock.Sweep(context.Background()))
}

func TestClock_DistributorFailureDoesNotReopen(t *testing.T) {
	env := newTestEnv(t)
	distributor := &fakeDistributor{err: errors.New("redis unavailable")}
	clock, err := NewClock(env.registry, env.store, time.Second, distributor)
	require.NoError(t, err)

	vehicle := env.openAuction(t, "wrangler", 900, time.Second)
	env.clock.Advance(time.Second)

	require.Equal(t, 1, clock.Sweep(context.Background()))
	require.Len(t, distributor.closed, 1)

	stored, err := env.store.GetVehicle(context.Background(), vehicle.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
}

func TestClock_StartFinalizesInBackground(t *testing.T) {
	store := db.NewMemoryStore()
	publisher := &recordingPublisher{}
	registry := NewRegistry(store, publisher)

	vehicle, err := registry.Open(context.Background(), db.CreateVehicleParams{
		Title:         "prius",
		Slug:          "prius",
		StartingPrice: decimal.NewFromInt(100),
		AuctionEnd:    time.Now().Add(50 * time.Millisecond),
	})
	require.NoError(t, err)

	clock, err := NewClock(registry, store, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, clock.Start())
	defer clock.Stop()

	require.Eventually(t, func() bool {
		return len(publisher.ofType(event.TypeAuctionClosed)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := store.GetVehicle(context.Background(), vehicle.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
}
