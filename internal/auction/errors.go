package auction

import (
	"errors"
)

// Bid outcomes. Everything except ErrStorage is an expected rejection, not a
// system failure.
var (
	ErrNotFound       = errors.New("auction not found")
	ErrAuctionEnded   = errors.New("auction has ended")
	ErrAdminCannotBid = errors.New("admins cannot place bids")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrStorage        = errors.New("auction storage failure")
)

const (
	KindNotFound       = "not_found"
	KindAuctionEnded   = "auction_ended"
	KindAdminCannotBid = "admin_cannot_bid"
	KindBidTooLow      = "bid_too_low"
	KindStorage        = "storage_error"
)

// Kind classifies err into one of the Kind constants. Unknown errors count
// as storage failures.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAuctionEnded):
		return KindAuctionEnded
	case errors.Is(err, ErrAdminCannotBid):
		return KindAdminCannotBid
	case errors.Is(err, ErrBidTooLow):
		return KindBidTooLow
	default:
		return KindStorage
	}
}

// IsRejection reports whether err is an expected, user-facing outcome.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAuctionEnded) ||
		errors.Is(err, ErrAdminCannotBid) ||
		errors.Is(err, ErrBidTooLow)
}
