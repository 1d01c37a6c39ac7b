package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides all functions to execute db queries and transactions.
type Store interface {
	GetVehicle(ctx context.Context, id int64) (Vehicle, error)
	ListActiveVehicles(ctx context.Context) ([]Vehicle, error)
	ListVehicles(ctx context.Context) ([]Vehicle, error)
	ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]Vehicle, error)
	ListExpiredAuctionIDs(ctx context.Context, now time.Time) ([]int64, error)
	CreateVehicle(ctx context.Context, arg CreateVehicleParams) (Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	UpdateAuctionEnd(ctx context.Context, arg UpdateAuctionEndParams) (Vehicle, error)
	ListBidsByVehicle(ctx context.Context, vehicleID int64) ([]Bid, error)
	GetUser(ctx context.Context, id int64) (User, error)

	CompareAndSetPrice(ctx context.Context, arg CompareAndSetPriceParams) (bool, error)
	FinalizeAuction(ctx context.Context, id int64, ownerID *int64) (bool, error)
}

type SQLStore struct {
	*Queries
	connPool *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) Store {
	return &SQLStore{
		Queries:  New(db),
		connPool: db,
	}
}

// Ping checks if the database connection is alive.
func (store *SQLStore) Ping(ctx context.Context) error {
	return store.connPool.Ping(ctx)
}

// ExecTx executes a function within a database transaction.
func (store *SQLStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.connPool.Begin(ctx)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
