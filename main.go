package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katatrina/vehicle-auction/api"
	"github.com/katatrina/vehicle-auction/internal/auction"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/event"
	"github.com/katatrina/vehicle-auction/internal/mailer"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/katatrina/vehicle-auction/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/katatrina/vehicle-auction/docs"
)

//	@title			Vehicle Auction API
//	@version		1.0.0
//	@description	Live vehicle auction: bidding, auction lifecycle and real-time price feeds

//	@host		localhost:8080
//	@BasePath	/v1
//	@schemes	http https

//	@securityDefinitions.apikey	accessToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}
	log.Info().Msg("configurations loaded successfully ✅")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newStore(ctx, config)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	defer redisDb.Close()

	// Background workers and the inbox need redis. The in-memory store can run
	// without them.
	var (
		taskDistributor worker.TaskDistributor
		inbox           api.NotificationLister
	)
	if err = redisDb.Ping(ctx).Err(); err != nil {
		if config.StoreDriver != util.StoreDriverMemory {
			log.Fatal().Err(err).Msg("failed to connect to redis 😣")
		}
		log.Warn().Err(err).Msg("redis unavailable, running without background workers and notifications")
	} else {
		log.Info().Msg("connected to redis ✅")

		redisOpt := asynq.RedisClientOpt{
			Addr: config.RedisServerAddress,
		}
		taskDistributor = worker.NewTaskDistributor(redisOpt)
		redisInbox := notification.NewRedisInbox(redisDb, notification.DefaultInboxSize)
		inbox = redisInbox

		processor := newTaskProcessor(redisOpt, config, store, redisInbox)
		if err = processor.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start task processor 😣")
		}
		defer processor.Shutdown()
		log.Info().Msg("task processor started ✅")
	}

	validator, err := auction.NewValidator(config.BidIncrement)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bid increment 😣")
	}

	hub := event.NewHub(config.SubscriberQueueSize)
	registryOpts := []auction.RegistryOption{auction.WithValidator(validator)}
	if taskDistributor != nil {
		registryOpts = append(registryOpts, auction.WithTaskDistributor(taskDistributor))
	}
	registry := auction.NewRegistry(store, hub, registryOpts...)
	if err = registry.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load active auctions 😣")
	}

	clock, err := auction.NewClock(registry, store, config.SweepInterval, taskDistributor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create auction clock 😣")
	}
	if err = clock.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start auction clock 😣")
	}
	defer func() {
		if err := clock.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop auction clock")
		}
	}()

	// Blocks until a signal arrives and in-flight requests have drained.
	runHTTPServer(ctx, &config, store, registry, hub, inbox)
	log.Info().Msg("shutting down 👋")
}

func newStore(ctx context.Context, config util.Config) db.Store {
	if config.StoreDriver == util.StoreDriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return db.NewMemoryStore()
	}

	// Create connection pool
	connPool, err := pgxpool.New(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	if err = connPool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	return db.NewStore(connPool)
}

func newTaskProcessor(redisOpt asynq.RedisClientOpt, config util.Config, store db.Store, inbox worker.Inbox) *worker.RedisTaskProcessor {
	var emailSender worker.EmailSender
	if config.SMTPUsername != "" && config.SMTPPassword != "" {
		gmailSender, err := mailer.NewGmailSender(config.SMTPUsername, config.SMTPPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer service 😣")
		}
		emailSender = gmailSender
	}

	var announcer worker.Announcer
	if config.DiscordBotToken != "" && config.DiscordChannelID != "" {
		discordAnnouncer, err := notification.NewDiscordAnnouncer(config.DiscordBotToken, config.DiscordChannelID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord announcer 😣")
		}
		announcer = discordAnnouncer
	}

	return worker.NewRedisTaskProcessor(redisOpt, store, inbox, emailSender, announcer)
}

func runHTTPServer(ctx context.Context, config *util.Config, store db.Store, registry *auction.Registry, hub *event.Hub, inbox api.NotificationLister) {
	server, err := api.NewServer(config, store, registry, hub, inbox)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(ctx, config.HTTPServerAddress)
	if err != nil {
		log.Error().Err(err).Msg("HTTP server stopped with error")
	}
}
