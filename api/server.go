package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/katatrina/vehicle-auction/internal/auction"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/event"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/katatrina/vehicle-auction/internal/token"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NotificationLister reads a user's notification inbox.
type NotificationLister interface {
	List(ctx context.Context, userID int64, limit int64) ([]notification.Notification, error)
}

type Server struct {
	router     *gin.Engine
	dbStore    db.Store
	registry   *auction.Registry
	hub        *event.Hub
	tokenMaker token.Maker
	config     *util.Config
	inbox      NotificationLister
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(config *util.Config, store db.Store, registry *auction.Registry, hub *event.Hub, inbox NotificationLister) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	server := &Server{
		dbStore:    store,
		registry:   registry,
		hub:        hub,
		tokenMaker: tokenMaker,
		config:     config,
		inbox:      inbox,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	vehicleGroup := v1.Group("/vehicles")
	{
		vehicleGroup.GET("", server.listActiveVehicles)
		vehicleGroup.GET(":id", server.getVehicle)
		vehicleGroup.GET(":id/bids", server.listVehicleBids)
	}

	v1.POST("/bids", authMiddleware(server.tokenMaker), server.placeBid)

	userGroup := v1.Group("/users/me", authMiddleware(server.tokenMaker))
	{
		userGroup.GET("vehicles", server.listMyVehicles)
		userGroup.GET("notifications", server.listMyNotifications)
	}

	adminGroup := v1.Group("/admin", authMiddleware(server.tokenMaker), requiredAdminRole())
	{
		adminGroup.POST("vehicles", server.createVehicle)
		adminGroup.DELETE("vehicles/:id", server.deleteVehicle)
		adminGroup.PATCH("vehicles/:id/auction-end", server.updateAuctionEnd)
	}

	// Live feeds. Browsers cannot set headers on EventSource or WebSocket,
	// so both are public like the read endpoints.
	v1.GET("/auctions/stream", server.streamAuctionEvents)
	v1.GET("/ws/auction", server.serveAuctionSocket)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

// shutdownTimeout bounds how long in-flight requests may run after ctx ends.
const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server on a specific address until ctx is done, then
// shuts it down gracefully.
func (server *Server) Start(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return server.serve(ctx, listener)
}

func (server *Server) serve(ctx context.Context, listener net.Listener) error {
	// Request contexts are cancelled on shutdown so live streams end.
	// Bids detach from their request context and still finish.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	httpServer := &http.Server{
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}
	httpServer.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	log.Info().Str("address", listener.Addr().String()).Msg("HTTP server started ✅")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
