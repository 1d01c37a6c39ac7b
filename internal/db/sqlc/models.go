package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a single item put up for auction.
type Vehicle struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	Slug          string          `json:"slug"`
	ImageURL      *string         `json:"image_url"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	AuctionEnd    time.Time       `json:"auction_end"`
	IsActive      bool            `json:"is_active"`
	// HighestBidderID is the bidder whose accepted bid set CurrentPrice.
	HighestBidderID   *int64    `json:"highest_bidder_id"`
	HighestBidderName *string   `json:"highest_bidder_name"`
	OwnerID           *int64    `json:"owner_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type Bid struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	UserID    int64           `json:"user_id"`
	VehicleID int64           `json:"vehicle_id"`
	CreatedAt time.Time       `json:"created_at"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
