package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

//	@Summary		List active auctions
//	@Description	Vehicles still open for bidding, soonest to end first.
//	@Tags			vehicles
//	@Produce		json
//	@Success		200	{array}	db.Vehicle
//	@Router			/vehicles [get]
func (server *Server) listActiveVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, server.registry.Active())
}

//	@Summary		Get a vehicle
//	@Tags			vehicles
//	@Produce		json
//	@Param			id	path		int	true	"Vehicle ID"
//	@Success		200	{object}	db.Vehicle
//	@Failure		404	{object}	auctionErrorResponse
//	@Router			/vehicles/{id} [get]
func (server *Server) getVehicle(c *gin.Context) {
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicle, err := server.registry.Snapshot(c, vehicleID)
	if err != nil {
		abortWithAuctionError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

//	@Summary		List my vehicles
//	@Description	Vehicles the caller won.
//	@Tags			users
//	@Produce		json
//	@Success		200	{array}	db.Vehicle
//	@Security		accessToken
//	@Router			/users/me/vehicles [get]
func (server *Server) listMyVehicles(c *gin.Context) {
	identity := authIdentity(c)

	vehicles, err := server.dbStore.ListVehiclesByOwner(c, identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to list owned vehicles: %w", err)))
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
