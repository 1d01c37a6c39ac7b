package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/vehicle-auction/internal/auction"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/shopspring/decimal"
)

type placeBidRequest struct {
	VehicleID int64           `json:"vehicle_id" binding:"required,min=1"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number" example:"1100.00"`
}

type placeBidResponse struct {
	VehicleID    int64           `json:"vehicle_id"`
	CurrentPrice decimal.Decimal `json:"current_price" swaggertype:"number"`
	Bidder       string          `json:"bidder"`
}

//	@Summary		Place a bid on a vehicle
//	@Description	Accepted bids become the new current price and are broadcast to every live subscriber.
//	@Tags			bids
//	@Accept			json
//	@Produce		json
//	@Param			request	body		placeBidRequest	true	"Bid"
//	@Success		200		{object}	placeBidResponse
//	@Failure		400		{object}	FailedValidationResponse	"Amount not positive, more than 2 decimals or too large"
//	@Failure		403		{object}	auctionErrorResponse	"Admins cannot bid"
//	@Failure		404		{object}	auctionErrorResponse	"Vehicle not found"
//	@Failure		422		{object}	auctionErrorResponse	"Bid too low or auction ended"
//	@Failure		500		{object}	auctionErrorResponse	"Storage failure"
//	@Security		accessToken
//	@Router			/bids [post]
func (server *Server) placeBid(c *gin.Context) {
	identity := authIdentity(c)

	var req placeBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	if violation := moneyViolation("amount", req.Amount, ErrNonPositiveBid); violation != nil {
		c.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{violation}))
		return
	}

	bidder := auction.Bidder{
		ID:       identity.UserID,
		Username: identity.Username,
		IsAdmin:  identity.IsAdmin,
	}
	price, err := server.registry.PlaceBid(c, req.VehicleID, bidder, req.Amount)
	if err != nil {
		abortWithAuctionError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeBidResponse{
		VehicleID:    req.VehicleID,
		CurrentPrice: price,
		Bidder:       identity.Username,
	})
}

//	@Summary		List bids of a vehicle
//	@Description	Bid history, newest first.
//	@Tags			bids
//	@Produce		json
//	@Param			id	path	int	true	"Vehicle ID"
//	@Success		200	{array}	db.Bid
//	@Failure		404	{object}	auctionErrorResponse
//	@Router			/vehicles/{id}/bids [get]
func (server *Server) listVehicleBids(c *gin.Context) {
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := server.dbStore.GetVehicle(c, vehicleID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			abortWithAuctionError(c, fmt.Errorf("%w: vehicle ID %d", auction.ErrNotFound, vehicleID))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to get vehicle: %w", err)))
		return
	}

	bids, err := server.dbStore.ListBidsByVehicle(c, vehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to list bids: %w", err)))
		return
	}

	c.JSON(http.StatusOK, bids)
}

// parseIDParam reads the positive integer :id path parameter.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("%w: %q", ErrInvalidID, c.Param("id"))))
		return 0, false
	}
	return id, true
}
