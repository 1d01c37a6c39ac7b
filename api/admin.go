package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrAuctionEndInPast = errors.New("auction end must be in the future")

type createVehicleRequest struct {
	Title         string          `json:"title" binding:"required,max=255"`
	Description   *string         `json:"description"`
	ImageURL      *string         `json:"image_url" binding:"omitempty,url"`
	StartingPrice decimal.Decimal `json:"starting_price" swaggertype:"number" example:"1000.00"`
	AuctionEnd    time.Time       `json:"auction_end" binding:"required" example:"2026-12-31T18:00:00Z"`
}

//	@Summary		Put a vehicle up for auction
//	@Description	Creates the vehicle and announces it to live subscribers.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createVehicleRequest	true	"Vehicle"
//	@Success		201		{object}	db.Vehicle
//	@Failure		400		{object}	FailedValidationResponse
//	@Security		accessToken
//	@Router			/admin/vehicles [post]
func (server *Server) createVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	var violations []*FieldViolation
	if strings.TrimSpace(req.Title) == "" {
		violations = append(violations, fieldViolation("title", errors.New("title must not be blank")))
	}
	if violation := moneyViolation("starting_price", req.StartingPrice, ErrNonPositiveBase); violation != nil {
		violations = append(violations, violation)
	}
	if !req.AuctionEnd.After(server.registry.Now()) {
		violations = append(violations, fieldViolation("auction_end", ErrAuctionEndInPast))
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, failedValidationError(violations))
		return
	}

	title := strings.TrimSpace(req.Title)
	vehicle, err := server.registry.Open(c, db.CreateVehicleParams{
		Title:         title,
		Description:   req.Description,
		Slug:          util.GenerateRandomSlug(title),
		ImageURL:      req.ImageURL,
		StartingPrice: req.StartingPrice,
		AuctionEnd:    req.AuctionEnd.UTC(),
	})
	if err != nil {
		abortWithAuctionError(c, err)
		return
	}

	log.Info().
		Int64("vehicle_id", vehicle.ID).
		Str("slug", vehicle.Slug).
		Time("auction_end", vehicle.AuctionEnd).
		Msg("vehicle added to auction")

	c.JSON(http.StatusCreated, vehicle)
}

//	@Summary		Remove a vehicle
//	@Description	Deletes the vehicle with its bids and announces the removal.
//	@Tags			admin
//	@Param			id	path	int	true	"Vehicle ID"
//	@Success		204
//	@Failure		404	{object}	auctionErrorResponse
//	@Security		accessToken
//	@Router			/admin/vehicles/{id} [delete]
func (server *Server) deleteVehicle(c *gin.Context) {
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := server.registry.Remove(c, vehicleID); err != nil {
		abortWithAuctionError(c, err)
		return
	}

	log.Info().Int64("vehicle_id", vehicleID).Msg("vehicle removed from auction")
	c.Status(http.StatusNoContent)
}

type updateAuctionEndRequest struct {
	AuctionEnd time.Time `json:"auction_end" binding:"required" example:"2026-12-31T18:00:00Z"`
}

//	@Summary		Change the end time of an auction
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Vehicle ID"
//	@Param			request	body		updateAuctionEndRequest	true	"New end time"
//	@Success		200		{object}	db.Vehicle
//	@Failure		404		{object}	auctionErrorResponse
//	@Security		accessToken
//	@Router			/admin/vehicles/{id}/auction-end [patch]
func (server *Server) updateAuctionEnd(c *gin.Context) {
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateAuctionEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	vehicle, err := server.registry.Reschedule(c, vehicleID, req.AuctionEnd.UTC())
	if err != nil {
		abortWithAuctionError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
