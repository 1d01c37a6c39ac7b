package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/vehicle-auction/internal/auction"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrAdminRequired   = errors.New("requires admin role")
	ErrInvalidID       = errors.New("invalid ID format")
	ErrInboxDisabled   = errors.New("notification inbox is not configured")
	ErrNonPositiveBid  = errors.New("bid amount must be greater than 0")
	ErrNonPositiveBase = errors.New("starting price must be greater than 0")
	ErrTooManyDecimals = errors.New("amount must have at most 2 decimal places")
	ErrAmountTooLarge  = errors.New("amount exceeds the maximum of 9999999999.99")
)

// maxMoneyAmount is the largest value a NUMERIC(12,2) price column holds.
var maxMoneyAmount = decimal.RequireFromString("9999999999.99")

type FailedValidationResponse struct {
	Message         string            `json:"message"`
	FieldViolations []*FieldViolation `json:"field_violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func fieldViolation(field string, err error) *FieldViolation {
	return &FieldViolation{
		Field:       field,
		Description: err.Error(),
	}
}

// moneyViolation checks that amount is positive and storable as a price.
func moneyViolation(field string, amount decimal.Decimal, nonPositive error) *FieldViolation {
	switch {
	case !amount.IsPositive():
		return fieldViolation(field, fmt.Errorf("%w, provided: %s", nonPositive, amount))
	case !amount.Equal(amount.Round(2)):
		return fieldViolation(field, fmt.Errorf("%w, provided: %s", ErrTooManyDecimals, amount))
	case amount.GreaterThan(maxMoneyAmount):
		return fieldViolation(field, fmt.Errorf("%w, provided: %s", ErrAmountTooLarge, amount))
	}
	return nil
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func failedValidationError(violations []*FieldViolation) *FailedValidationResponse {
	return &FailedValidationResponse{
		Message:         "Invalid request parameters",
		FieldViolations: violations,
	}
}

// auctionErrorResponse carries the machine-readable outcome of an auction operation.
type auctionErrorResponse struct {
	ErrorKind string `json:"error_kind"`
	Error     string `json:"error"`
}

// auctionErrorStatus maps an auction outcome to its HTTP status.
func auctionErrorStatus(err error) int {
	switch {
	case errors.Is(err, auction.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auction.ErrAdminCannotBid):
		return http.StatusForbidden
	case auction.IsRejection(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithAuctionError writes err as an auctionErrorResponse. Storage
// failures are logged; rejections are expected outcomes.
func abortWithAuctionError(c *gin.Context, err error) {
	status := auctionErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("auction operation failed")
	} else {
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("auction operation rejected")
	}

	c.AbortWithStatusJSON(status, auctionErrorResponse{
		ErrorKind: auction.Kind(err),
		Error:     err.Error(),
	})
}
