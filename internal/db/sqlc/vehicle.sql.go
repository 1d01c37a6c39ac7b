package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const vehicleColumns = `
v.id, v.title, v.description, v.slug, v.image_url, v.starting_price, v.current_price,
v.auction_end, v.is_active, v.highest_bidder_id, u.username, v.owner_id, v.created_at
`

const vehicleFrom = `
FROM vehicles v
LEFT JOIN users u ON u.id = v.highest_bidder_id
`

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var i Vehicle
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Slug,
		&i.ImageURL,
		&i.StartingPrice,
		&i.CurrentPrice,
		&i.AuctionEnd,
		&i.IsActive,
		&i.HighestBidderID,
		&i.HighestBidderName,
		&i.OwnerID,
		&i.CreatedAt,
	)
	return i, err
}

func collectVehicles(rows pgx.Rows) ([]Vehicle, error) {
	defer rows.Close()
	items := []Vehicle{}
	for rows.Next() {
		i, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getVehicle = `SELECT` + vehicleColumns + vehicleFrom + `WHERE v.id = $1`

func (q *Queries) GetVehicle(ctx context.Context, id int64) (Vehicle, error) {
	row := q.db.QueryRow(ctx, getVehicle, id)
	return scanVehicle(row)
}

const getVehicleForUpdate = `SELECT` + vehicleColumns + vehicleFrom + `WHERE v.id = $1 FOR UPDATE OF v`

func (q *Queries) GetVehicleForUpdate(ctx context.Context, id int64) (Vehicle, error) {
	row := q.db.QueryRow(ctx, getVehicleForUpdate, id)
	return scanVehicle(row)
}

const listActiveVehicles = `SELECT` + vehicleColumns + vehicleFrom + `WHERE v.is_active = TRUE ORDER BY v.auction_end, v.id`

func (q *Queries) ListActiveVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, listActiveVehicles)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

const listVehicles = `SELECT` + vehicleColumns + vehicleFrom + `ORDER BY v.id`

func (q *Queries) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, listVehicles)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

const listVehiclesByOwner = `SELECT` + vehicleColumns + vehicleFrom + `WHERE v.owner_id = $1 ORDER BY v.auction_end DESC`

func (q *Queries) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, listVehiclesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

const listExpiredAuctionIDs = `
SELECT id FROM vehicles
WHERE is_active = TRUE AND auction_end <= $1
ORDER BY auction_end, id
`

func (q *Queries) ListExpiredAuctionIDs(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := q.db.Query(ctx, listExpiredAuctionIDs, now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

type CreateVehicleParams struct {
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	Slug          string          `json:"slug"`
	ImageURL      *string         `json:"image_url"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	AuctionEnd    time.Time       `json:"auction_end"`
}

const createVehicle = `
INSERT INTO vehicles (title, description, slug, image_url, starting_price, current_price, auction_end)
VALUES ($1, $2, $3, $4, $5, $5, $6)
RETURNING id
`

func (q *Queries) CreateVehicle(ctx context.Context, arg CreateVehicleParams) (Vehicle, error) {
	var id int64
	err := q.db.QueryRow(ctx, createVehicle,
		arg.Title,
		arg.Description,
		arg.Slug,
		arg.ImageURL,
		arg.StartingPrice,
		arg.AuctionEnd,
	).Scan(&id)
	if err != nil {
		return Vehicle{}, err
	}
	return q.GetVehicle(ctx, id)
}

const deleteVehicle = `DELETE FROM vehicles WHERE id = $1`

func (q *Queries) DeleteVehicle(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteVehicle, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type UpdateAuctionEndParams struct {
	ID         int64     `json:"id"`
	AuctionEnd time.Time `json:"auction_end"`
}

const updateAuctionEnd = `UPDATE vehicles SET auction_end = $2 WHERE id = $1 RETURNING id`

func (q *Queries) UpdateAuctionEnd(ctx context.Context, arg UpdateAuctionEndParams) (Vehicle, error) {
	var id int64
	if err := q.db.QueryRow(ctx, updateAuctionEnd, arg.ID, arg.AuctionEnd).Scan(&id); err != nil {
		return Vehicle{}, err
	}
	return q.GetVehicle(ctx, id)
}

type SetVehiclePriceParams struct {
	ID              int64           `json:"id"`
	ExpectedPrice   decimal.Decimal `json:"expected_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	HighestBidderID int64           `json:"highest_bidder_id"`
}

// SetVehiclePrice only touches an active row still holding ExpectedPrice.
const setVehiclePrice = `
UPDATE vehicles
SET current_price = $3, highest_bidder_id = $4
WHERE id = $1 AND current_price = $2 AND is_active = TRUE
`

func (q *Queries) SetVehiclePrice(ctx context.Context, arg SetVehiclePriceParams) (int64, error) {
	tag, err := q.db.Exec(ctx, setVehiclePrice,
		arg.ID,
		arg.ExpectedPrice,
		arg.CurrentPrice,
		arg.HighestBidderID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type CloseVehicleAuctionParams struct {
	ID      int64  `json:"id"`
	OwnerID *int64 `json:"owner_id"`
}

const closeVehicleAuction = `
UPDATE vehicles
SET is_active = FALSE, owner_id = $2
WHERE id = $1 AND is_active = TRUE
`

func (q *Queries) CloseVehicleAuction(ctx context.Context, arg CloseVehicleAuctionParams) (int64, error) {
	tag, err := q.db.Exec(ctx, closeVehicleAuction, arg.ID, arg.OwnerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
