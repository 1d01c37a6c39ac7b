package notification

import (
	"time"
)

type Notification struct {
	RecipientID int64     `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	TypeAuctionWin    = "auction_win"
	TypeAuctionClosed = "auction_closed"
	TypeOutbid        = "outbid"
)
