package event

import (
	"encoding/json"
	"fmt"
	"time"

	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/shopspring/decimal"
)

// Type tags an Event on the wire.
type Type string

const (
	TypeBidAccepted    Type = "bid_update"      // A bid raised the current price
	TypeAuctionClosed  Type = "auction_closed"  // The auction ended and was finalized
	TypeAuctionOpened  Type = "vehicle_added"   // A new vehicle went up for auction
	TypeVehicleRemoved Type = "vehicle_removed" // A vehicle was withdrawn by an admin
)

// Event is an immutable notification pushed to every subscriber. Only the
// fields relevant to Type are set.
type Event struct {
	Type      Type
	VehicleID int64
	Price     decimal.Decimal
	Bidder    string
	OwnerID   *int64
	Vehicle   *VehicleSnapshot
}

// VehicleSnapshot is the full item view carried by TypeAuctionOpened.
type VehicleSnapshot struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Slug          string  `json:"slug"`
	ImageURL      *string `json:"image_url"`
	StartingPrice float64 `json:"starting_price"`
	CurrentPrice  float64 `json:"current_price"`
	AuctionEnd    string  `json:"auction_end"`
}

func BidAccepted(vehicleID int64, bidder string, newPrice decimal.Decimal) Event {
	return Event{
		Type:      TypeBidAccepted,
		VehicleID: vehicleID,
		Price:     newPrice,
		Bidder:    bidder,
	}
}

// AuctionClosed announces finalization. ownerID is nil when nobody bid.
func AuctionClosed(vehicleID int64, ownerID *int64, finalPrice decimal.Decimal) Event {
	var owner *int64
	if ownerID != nil {
		id := *ownerID
		owner = &id
	}

	return Event{
		Type:      TypeAuctionClosed,
		VehicleID: vehicleID,
		Price:     finalPrice,
		OwnerID:   owner,
	}
}

func AuctionOpened(v db.Vehicle) Event {
	description := ""
	if v.Description != nil {
		description = *v.Description
	}

	return Event{
		Type:      TypeAuctionOpened,
		VehicleID: v.ID,
		Price:     v.CurrentPrice,
		Vehicle: &VehicleSnapshot{
			ID:            v.ID,
			Title:         v.Title,
			Description:   description,
			Slug:          v.Slug,
			ImageURL:      v.ImageURL,
			StartingPrice: v.StartingPrice.InexactFloat64(),
			CurrentPrice:  v.CurrentPrice.InexactFloat64(),
			AuctionEnd:    v.AuctionEnd.Format(time.RFC3339),
		},
	}
}

func VehicleRemoved(vehicleID int64) Event {
	return Event{
		Type:      TypeVehicleRemoved,
		VehicleID: vehicleID,
	}
}

// MarshalJSON renders the wire form expected by auction clients.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeBidAccepted:
		return json.Marshal(struct {
			Type         Type    `json:"type"`
			VehicleID    int64   `json:"vehicle_id"`
			CurrentPrice float64 `json:"current_price"`
			Bidder       string  `json:"bidder"`
		}{e.Type, e.VehicleID, e.Price.InexactFloat64(), e.Bidder})
	case TypeAuctionClosed:
		return json.Marshal(struct {
			Type         Type    `json:"type"`
			VehicleID    int64   `json:"vehicle_id"`
			CurrentPrice float64 `json:"current_price"`
			OwnerID      *int64  `json:"owner_id,omitempty"`
		}{e.Type, e.VehicleID, e.Price.InexactFloat64(), e.OwnerID})
	case TypeAuctionOpened:
		return json.Marshal(struct {
			Type    Type             `json:"type"`
			Vehicle *VehicleSnapshot `json:"vehicle"`
		}{e.Type, e.Vehicle})
	case TypeVehicleRemoved:
		return json.Marshal(struct {
			Type      Type  `json:"type"`
			VehicleID int64 `json:"vehicle_id"`
		}{e.Type, e.VehicleID})
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}
