package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

func (server *Server) websocketUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(server.config.AllowedOrigins, origin)
		},
	}
}

// @Summary		Stream auction events over WebSocket
// @Description	Each text frame is one JSON event. Messages sent by the client are ignored.
// @Tags			auctions
// @Success		101	{string}	string	"Switching Protocols"
// @Router			/ws/auction [get]
func (server *Server) serveAuctionSocket(c *gin.Context) {
	conn, err := server.websocketUpgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := server.hub.Subscribe(ctx)
	defer sub.Close()

	log.Debug().Str("subscriber_id", sub.ID()).Msg("websocket subscriber connected")

	// Reader: handles pongs and notices the client going away.
	go func() {
		defer cancel()

		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		nextCtx, cancelNext := context.WithTimeout(ctx, wsPingPeriod)
		ev, err := sub.Next(nextCtx)
		cancelNext()

		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}
		if err != nil {
			log.Debug().
				Str("subscriber_id", sub.ID()).
				Uint64("dropped", sub.Dropped()).
				Msg("websocket subscriber disconnected")
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err = conn.WriteJSON(ev); err != nil {
			log.Debug().Err(err).Str("subscriber_id", sub.ID()).Msg("failed to write websocket event")
			return
		}
	}
}
