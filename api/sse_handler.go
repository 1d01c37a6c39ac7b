package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sseKeepAliveInterval = 15 * time.Second

// @Summary		Stream auction events via Server-Sent Events
// @Description	Receives every bid_update, auction_closed, vehicle_added and vehicle_removed event published after the connection opens.
// @Tags			auctions
// @Produce		text/event-stream
// @Success		200	{string}	string	"Event stream. Each event is sent as 'event: {type}\ndata: {json}'"
// @Router			/auctions/stream [get]
func (server *Server) streamAuctionEvents(c *gin.Context) {
	ctx := c.Request.Context()
	sub := server.hub.Subscribe(ctx)
	defer sub.Close()

	// SSE headers
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	log.Debug().Str("subscriber_id", sub.ID()).Msg("sse subscriber connected")

	for {
		nextCtx, cancel := context.WithTimeout(ctx, sseKeepAliveInterval)
		ev, err := sub.Next(nextCtx)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// SSE comment frame, ignored by EventSource.
			if _, err = fmt.Fprint(c.Writer, ": keep-alive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
			continue
		}
		if err != nil {
			log.Debug().
				Str("subscriber_id", sub.ID()).
				Uint64("dropped", sub.Dropped()).
				Msg("sse subscriber disconnected")
			return
		}

		data, err := json.Marshal(ev)
		if err != nil {
			log.Error().Err(err).Str("type", string(ev.Type)).Msg("failed to marshal event")
			continue
		}

		if _, err = fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
			return
		}
		c.Writer.Flush()
	}
}
