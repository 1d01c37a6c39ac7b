package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/hibiken/asynq"
	"github.com/katatrina/vehicle-auction/internal/worker"
	"github.com/rs/zerolog/log"
)

const DefaultSweepInterval = time.Second

// Clock periodically finalizes auctions whose end time has passed.
type Clock struct {
	registry        *Registry
	store           Store
	interval        time.Duration
	taskDistributor worker.TaskDistributor
	scheduler       gocron.Scheduler
}

// NewClock creates a clock sweeping every interval. taskDistributor may be
// nil, in which case closed auctions are not handed to background workers.
func NewClock(registry *Registry, store Store, interval time.Duration, taskDistributor worker.TaskDistributor) (*Clock, error) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Clock{
		registry:        registry,
		store:           store,
		interval:        interval,
		taskDistributor: taskDistributor,
		scheduler:       scheduler,
	}, nil
}

// Start schedules the sweep. A sweep never overlaps the previous one.
func (c *Clock) Start() error {
	_, err := c.scheduler.NewJob(
		gocron.DurationJob(c.interval),
		gocron.NewTask(
			func() {
				c.Sweep(context.Background())
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	c.scheduler.Start()
	log.Info().Dur("interval", c.interval).Msg("auction clock started")
	return nil
}

func (c *Clock) Stop() error {
	return c.scheduler.Shutdown()
}

// Sweep finalizes every expired auction once and returns how many were closed.
// A failure on one auction is logged and does not stop the others.
func (c *Clock) Sweep(ctx context.Context) int {
	ids, err := c.store.ListExpiredAuctionIDs(ctx, c.registry.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired auctions")
		return 0
	}

	closed := 0
	for _, id := range ids {
		vehicle, ok, err := c.registry.Finalize(ctx, id)
		if err != nil {
			log.Error().
				Err(err).
				Int64("auction_id", id).
				Msg("failed to finalize auction")
			continue
		}
		if !ok {
			continue
		}
		closed++

		entry := log.Info().
			Int64("auction_id", id).
			Str("final_price", vehicle.CurrentPrice.String())
		if vehicle.OwnerID != nil {
			entry = entry.Int64("owner_id", *vehicle.OwnerID)
		}
		entry.Msg("auction finalized")

		if c.taskDistributor == nil {
			continue
		}

		payload := &worker.PayloadAuctionClosed{
			VehicleID:  vehicle.ID,
			Title:      vehicle.Title,
			FinalPrice: vehicle.CurrentPrice,
			WinnerID:   vehicle.OwnerID,
		}
		opts := []asynq.Option{
			asynq.MaxRetry(3),
			asynq.Queue(worker.QueueCritical),
		}
		if err = c.taskDistributor.DistributeTaskAuctionClosed(ctx, payload, opts...); err != nil {
			log.Error().
				Err(fmt.Errorf("failed to distribute auction closed task: %w", err)).
				Int64("auction_id", id).
				Msg("auction close follow-up skipped")
		}
	}

	return closed
}
