package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type listNotificationsQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

//	@Summary		List my notifications
//	@Tags			users
//	@Produce		json
//	@Param			limit	query	int	false	"Max items (1-100)"
//	@Success		200		{array}	notification.Notification
//	@Security		accessToken
//	@Router			/users/me/notifications [get]
func (server *Server) listMyNotifications(c *gin.Context) {
	identity := authIdentity(c)

	var query listNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if server.inbox == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse(ErrInboxDisabled))
		return
	}

	notifications, err := server.inbox.List(c, identity.UserID, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(fmt.Errorf("failed to list notifications: %w", err)))
		return
	}

	c.JSON(http.StatusOK, notifications)
}
