package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type CreateBidParams struct {
	Amount    decimal.Decimal `json:"amount"`
	UserID    int64           `json:"user_id"`
	VehicleID int64           `json:"vehicle_id"`
}

const createBid = `
INSERT INTO bids (amount, user_id, vehicle_id)
VALUES ($1, $2, $3)
RETURNING id, amount, user_id, vehicle_id, created_at
`

func (q *Queries) CreateBid(ctx context.Context, arg CreateBidParams) (Bid, error) {
	row := q.db.QueryRow(ctx, createBid, arg.Amount, arg.UserID, arg.VehicleID)
	var i Bid
	err := row.Scan(
		&i.ID,
		&i.Amount,
		&i.UserID,
		&i.VehicleID,
		&i.CreatedAt,
	)
	return i, err
}

const listBidsByVehicle = `
SELECT id, amount, user_id, vehicle_id, created_at
FROM bids
WHERE vehicle_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListBidsByVehicle(ctx context.Context, vehicleID int64) ([]Bid, error) {
	rows, err := q.db.Query(ctx, listBidsByVehicle, vehicleID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Bid])
}
