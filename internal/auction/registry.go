package auction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/event"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/katatrina/vehicle-auction/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxCommitAttempts bounds re-validation after a lost compare-and-set.
const maxCommitAttempts = 3

//go:generate mockgen -package mockauction -destination mock/store.go github.com/katatrina/vehicle-auction/internal/auction Store

// Store is the persistence the registry depends on. The store is the source
// of truth; the registry caches it.
type Store interface {
	GetVehicle(ctx context.Context, id int64) (db.Vehicle, error)
	ListActiveVehicles(ctx context.Context) ([]db.Vehicle, error)
	ListExpiredAuctionIDs(ctx context.Context, now time.Time) ([]int64, error)
	CompareAndSetPrice(ctx context.Context, arg db.CompareAndSetPriceParams) (bool, error)
	FinalizeAuction(ctx context.Context, id int64, ownerID *int64) (bool, error)
	CreateVehicle(ctx context.Context, arg db.CreateVehicleParams) (db.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	UpdateAuctionEnd(ctx context.Context, arg db.UpdateAuctionEndParams) (db.Vehicle, error)
}

// Publisher receives events once they are committed. Publish must not block.
type Publisher interface {
	Publish(ev event.Event)
}

type entry struct {
	mu      sync.Mutex // held across validate+commit
	publish sync.Mutex // taken before mu is released; keeps per-auction publish order
	vehicle db.Vehicle
	removed bool
}

// Registry is the in-memory authoritative view of every active auction.
// Closed auctions are dropped from it and served from the store.
// Bids on one auction are strictly serialized; bids on different auctions
// run in parallel.
type Registry struct {
	store           Store
	publisher       Publisher
	validator       Validator
	now             func() time.Time
	taskDistributor worker.TaskDistributor // optional

	mu      sync.RWMutex
	entries map[int64]*entry
}

type RegistryOption func(*Registry)

func WithValidator(v Validator) RegistryOption {
	return func(r *Registry) {
		r.validator = v
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// WithTaskDistributor enables outbid notifications.
func WithTaskDistributor(taskDistributor worker.TaskDistributor) RegistryOption {
	return func(r *Registry) {
		r.taskDistributor = taskDistributor
	}
}

func NewRegistry(store Store, publisher Publisher, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:     store,
		publisher: publisher,
		now:       time.Now,
		entries:   make(map[int64]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the registry's notion of the current time.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Load rebuilds the cache from every active auction in the store. It must
// run before the registry accepts bids.
func (r *Registry) Load(ctx context.Context) error {
	vehicles, err := r.store.ListActiveVehicles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active vehicles: %w", err)
	}

	entries := make(map[int64]*entry, len(vehicles))
	for _, v := range vehicles {
		entries[v.ID] = &entry{vehicle: v}
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	log.Info().Int("auctions", len(entries)).Msg("auction registry loaded")
	return nil
}

// entryFor returns the tracked entry for id, loading it from the store on a
// miss. A closed auction gets a detached entry that is never tracked.
func (r *Registry) entryFor(ctx context.Context, id int64) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	vehicle, err := r.store.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get vehicle %d: %v", ErrStorage, id, err)
	}
	if !vehicle.IsActive {
		return &entry{vehicle: vehicle}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.entries[id]; ok {
		return e, nil
	}
	e = &entry{vehicle: vehicle}
	r.entries[id] = e
	return e, nil
}

func (r *Registry) forget(id int64, e *entry) {
	r.mu.Lock()
	if r.entries[id] == e {
		delete(r.entries, id)
	}
	r.mu.Unlock()
}

// unlockAndPublish releases the auction lock, then publishes ev. The publish
// lock is acquired first so the next committer of the same auction cannot
// publish ahead of this event.
func (r *Registry) unlockAndPublish(e *entry, ev event.Event) {
	e.publish.Lock()
	e.mu.Unlock()
	r.publisher.Publish(ev)
	e.publish.Unlock()
}

// PlaceBid validates and commits a bid, returning the new current price.
// Once admitted, a bid runs to completion even if ctx is cancelled.
func (r *Registry) PlaceBid(ctx context.Context, auctionID int64, bidder Bidder, amount decimal.Decimal) (decimal.Decimal, error) {
	ctx = context.WithoutCancel(ctx)

	e, err := r.entryFor(ctx, auctionID)
	if err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	ev, notice, err := r.commitBid(ctx, auctionID, e, bidder, amount)
	if err != nil {
		e.mu.Unlock()
		return decimal.Zero, err
	}
	r.unlockAndPublish(e, ev)

	log.Info().
		Int64("auction_id", auctionID).
		Int64("bidder_id", bidder.ID).
		Str("amount", amount.String()).
		Msg("bid placed successfully")

	if notice != nil {
		r.notifyOutbid(ctx, notice)
	}

	return amount, nil
}

// commitBid runs with e.mu held. The returned notice is non-nil when another
// user held the highest bid before this one.
func (r *Registry) commitBid(ctx context.Context, auctionID int64, e *entry, bidder Bidder, amount decimal.Decimal) (event.Event, *worker.PayloadSendNotification, error) {
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		if e.removed {
			return event.Event{}, nil, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
		}

		if err := r.validator.Validate(e.vehicle, bidder, amount, r.now()); err != nil {
			return event.Event{}, nil, err
		}

		swapped, err := r.store.CompareAndSetPrice(ctx, db.CompareAndSetPriceParams{
			VehicleID:     auctionID,
			ExpectedPrice: e.vehicle.CurrentPrice,
			NewPrice:      amount,
			BidderID:      bidder.ID,
		})
		if err != nil {
			log.Error().
				Err(err).
				Int64("auction_id", auctionID).
				Int64("bidder_id", bidder.ID).
				Msg("failed to commit bid")
			return event.Event{}, nil, fmt.Errorf("%w: failed to commit bid: %v", ErrStorage, err)
		}

		if swapped {
			var notice *worker.PayloadSendNotification
			if previous := e.vehicle.HighestBidderID; previous != nil && *previous != bidder.ID {
				notice = outbidNotice(*previous, auctionID, e.vehicle.Title, amount)
			}

			bidderID, bidderName := bidder.ID, bidder.Username
			e.vehicle.CurrentPrice = amount
			e.vehicle.HighestBidderID = &bidderID
			e.vehicle.HighestBidderName = &bidderName
			return event.BidAccepted(auctionID, bidder.Username, amount), notice, nil
		}

		// The row changed behind the cache, e.g. another process bid on it.
		log.Warn().
			Int64("auction_id", auctionID).
			Int("attempt", attempt).
			Msg("stale auction snapshot, reloading")

		fresh, err := r.store.GetVehicle(ctx, auctionID)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				e.removed = true
				r.forget(auctionID, e)
				return event.Event{}, nil, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
			}
			return event.Event{}, nil, fmt.Errorf("%w: failed to reload vehicle: %v", ErrStorage, err)
		}
		e.vehicle = fresh
		if !fresh.IsActive {
			r.forget(auctionID, e)
		}
	}

	return event.Event{}, nil, fmt.Errorf("%w: price of vehicle %d kept changing, retry the bid", ErrStorage, auctionID)
}

func outbidNotice(recipientID, vehicleID int64, title string, amount decimal.Decimal) *worker.PayloadSendNotification {
	return &worker.PayloadSendNotification{
		RecipientID: recipientID,
		Title:       "You have been outbid",
		Message:     fmt.Sprintf("Someone bid %s on %s.", util.FormatMoney(amount), title),
		Type:        notification.TypeOutbid,
		ReferenceID: strconv.FormatInt(vehicleID, 10),
	}
}

// notifyOutbid hands the notice to the background workers. A failure only
// costs the notification, never the bid.
func (r *Registry) notifyOutbid(ctx context.Context, notice *worker.PayloadSendNotification) {
	if r.taskDistributor == nil {
		return
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Queue(worker.QueueDefault),
	}
	if err := r.taskDistributor.DistributeTaskSendNotification(ctx, notice, opts...); err != nil {
		log.Warn().
			Err(err).
			Int64("recipient_id", notice.RecipientID).
			Str("auction_id", notice.ReferenceID).
			Msg("failed to distribute outbid notification")
	}
}

// Finalize closes auctionID if it is active and its end time has passed.
// The highest bidder, if any, becomes the owner. It reports whether this call
// closed the auction; closing an already-closed auction is a no-op.
func (r *Registry) Finalize(ctx context.Context, auctionID int64) (db.Vehicle, bool, error) {
	e, err := r.entryFor(ctx, auctionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return db.Vehicle{}, false, nil
		}
		return db.Vehicle{}, false, err
	}

	e.mu.Lock()
	if e.removed || !e.vehicle.IsActive || r.now().Before(e.vehicle.AuctionEnd) {
		vehicle := e.vehicle
		e.mu.Unlock()
		return vehicle, false, nil
	}

	ownerID := e.vehicle.HighestBidderID
	closed, err := r.store.FinalizeAuction(ctx, auctionID, ownerID)
	if err != nil {
		e.mu.Unlock()
		return db.Vehicle{}, false, fmt.Errorf("%w: failed to finalize auction %d: %v", ErrStorage, auctionID, err)
	}

	if !closed {
		// Closed outside this process; adopt the stored state without an event.
		fresh, err := r.store.GetVehicle(ctx, auctionID)
		switch {
		case err == nil:
			e.vehicle = fresh
			if !fresh.IsActive {
				r.forget(auctionID, e)
			}
		case errors.Is(err, db.ErrRecordNotFound):
			e.removed = true
			r.forget(auctionID, e)
		default:
			// The store no longer holds it active; the next lookup reloads it.
			log.Warn().
				Err(err).
				Int64("auction_id", auctionID).
				Msg("failed to reload auction closed elsewhere")
			e.vehicle.IsActive = false
			r.forget(auctionID, e)
		}
		vehicle := e.vehicle
		e.mu.Unlock()
		return vehicle, false, nil
	}

	e.vehicle.IsActive = false
	e.vehicle.OwnerID = ownerID
	vehicle := e.vehicle
	r.forget(auctionID, e)
	r.unlockAndPublish(e, event.AuctionClosed(auctionID, ownerID, vehicle.CurrentPrice))

	return vehicle, true, nil
}

// Open creates a new auction, starts tracking it and announces it.
func (r *Registry) Open(ctx context.Context, arg db.CreateVehicleParams) (db.Vehicle, error) {
	vehicle, err := r.store.CreateVehicle(ctx, arg)
	if err != nil {
		return db.Vehicle{}, fmt.Errorf("%w: failed to create vehicle: %v", ErrStorage, err)
	}

	e := &entry{vehicle: vehicle}
	e.mu.Lock()
	r.mu.Lock()
	r.entries[vehicle.ID] = e
	r.mu.Unlock()
	r.unlockAndPublish(e, event.AuctionOpened(vehicle))

	return vehicle, nil
}

// Remove deletes an auction and its bids and announces the removal.
func (r *Registry) Remove(ctx context.Context, auctionID int64) error {
	e, err := r.entryFor(ctx, auctionID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.removed {
		e.mu.Unlock()
		return fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
	}

	if err = r.store.DeleteVehicle(ctx, auctionID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			e.removed = true
			r.forget(auctionID, e)
			e.mu.Unlock()
			return fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
		}
		e.mu.Unlock()
		return fmt.Errorf("%w: failed to delete vehicle: %v", ErrStorage, err)
	}

	e.removed = true
	r.forget(auctionID, e)
	r.unlockAndPublish(e, event.VehicleRemoved(auctionID))

	return nil
}

// Reschedule moves the end time of an auction.
func (r *Registry) Reschedule(ctx context.Context, auctionID int64, auctionEnd time.Time) (db.Vehicle, error) {
	e, err := r.entryFor(ctx, auctionID)
	if err != nil {
		return db.Vehicle{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return db.Vehicle{}, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
	}

	vehicle, err := r.store.UpdateAuctionEnd(ctx, db.UpdateAuctionEndParams{
		ID:         auctionID,
		AuctionEnd: auctionEnd,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return db.Vehicle{}, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
		}
		return db.Vehicle{}, fmt.Errorf("%w: failed to update auction end: %v", ErrStorage, err)
	}

	e.vehicle.AuctionEnd = vehicle.AuctionEnd
	return e.vehicle, nil
}

// Snapshot returns a copy of the current state of one auction.
func (r *Registry) Snapshot(ctx context.Context, auctionID int64) (db.Vehicle, error) {
	e, err := r.entryFor(ctx, auctionID)
	if err != nil {
		return db.Vehicle{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return db.Vehicle{}, fmt.Errorf("%w: vehicle ID %d", ErrNotFound, auctionID)
	}
	return e.vehicle, nil
}

// Active returns the tracked auctions that are still open, ordered by end time.
func (r *Registry) Active() []db.Vehicle {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	vehicles := make([]db.Vehicle, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.removed && e.vehicle.IsActive {
			vehicles = append(vehicles, e.vehicle)
		}
		e.mu.Unlock()
	}

	sort.Slice(vehicles, func(i, j int) bool {
		if vehicles[i].AuctionEnd.Equal(vehicles[j].AuctionEnd) {
			return vehicles[i].ID < vehicles[j].ID
		}
		return vehicles[i].AuctionEnd.Before(vehicles[j].AuctionEnd)
	})
	return vehicles
}
