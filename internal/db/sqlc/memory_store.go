package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
type MemoryStore struct {
	mu       sync.RWMutex
	vehicles map[int64]Vehicle
	bids     map[int64][]Bid // key: vehicleID
	users    map[int64]User
	nextID   int64
	nextBid  int64
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vehicles: make(map[int64]Vehicle),
		bids:     make(map[int64][]Bid),
		users:    make(map[int64]User),
		now:      time.Now,
	}
}

// AddUser registers a user so bids and ownership can reference it.
func (s *MemoryStore) AddUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	s.users[user.ID] = user
}

func (s *MemoryStore) withBidderName(v Vehicle) Vehicle {
	v.HighestBidderName = nil
	if v.HighestBidderID != nil {
		if u, ok := s.users[*v.HighestBidderID]; ok {
			name := u.Username
			v.HighestBidderName = &name
		}
	}
	return v
}

func (s *MemoryStore) GetVehicle(ctx context.Context, id int64) (Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[id]
	if !ok {
		return Vehicle{}, ErrRecordNotFound
	}
	return s.withBidderName(v), nil
}

func (s *MemoryStore) filter(keep func(Vehicle) bool, less func(a, b Vehicle) bool) []Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []Vehicle{}
	for _, v := range s.vehicles {
		if keep(v) {
			items = append(items, s.withBidderName(v))
		}
	}
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items
}

func byEndThenID(a, b Vehicle) bool {
	if a.AuctionEnd.Equal(b.AuctionEnd) {
		return a.ID < b.ID
	}
	return a.AuctionEnd.Before(b.AuctionEnd)
}

func (s *MemoryStore) ListActiveVehicles(ctx context.Context) ([]Vehicle, error) {
	return s.filter(func(v Vehicle) bool { return v.IsActive }, byEndThenID), nil
}

func (s *MemoryStore) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	return s.filter(func(Vehicle) bool { return true }, func(a, b Vehicle) bool { return a.ID < b.ID }), nil
}

func (s *MemoryStore) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]Vehicle, error) {
	return s.filter(func(v Vehicle) bool {
		return v.OwnerID != nil && *v.OwnerID == ownerID
	}, func(a, b Vehicle) bool { return a.AuctionEnd.After(b.AuctionEnd) }), nil
}

func (s *MemoryStore) ListExpiredAuctionIDs(ctx context.Context, now time.Time) ([]int64, error) {
	expired := s.filter(func(v Vehicle) bool {
		return v.IsActive && !v.AuctionEnd.After(now)
	}, byEndThenID)

	ids := make([]int64, 0, len(expired))
	for _, v := range expired {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func (s *MemoryStore) CreateVehicle(ctx context.Context, arg CreateVehicleParams) (Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	v := Vehicle{
		ID:            s.nextID,
		Title:         arg.Title,
		Description:   arg.Description,
		Slug:          arg.Slug,
		ImageURL:      arg.ImageURL,
		StartingPrice: arg.StartingPrice,
		CurrentPrice:  arg.StartingPrice,
		AuctionEnd:    arg.AuctionEnd,
		IsActive:      true,
		CreatedAt:     s.now(),
	}
	s.vehicles[v.ID] = v
	return v, nil
}

func (s *MemoryStore) DeleteVehicle(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.vehicles, id)
	delete(s.bids, id)
	return nil
}

func (s *MemoryStore) UpdateAuctionEnd(ctx context.Context, arg UpdateAuctionEndParams) (Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[arg.ID]
	if !ok {
		return Vehicle{}, ErrRecordNotFound
	}
	v.AuctionEnd = arg.AuctionEnd
	s.vehicles[arg.ID] = v
	return s.withBidderName(v), nil
}

func (s *MemoryStore) ListBidsByVehicle(ctx context.Context, vehicleID int64) ([]Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bids[vehicleID]
	items := make([]Bid, 0, len(bids))
	for i := len(bids) - 1; i >= 0; i-- {
		items = append(items, bids[i])
	}
	return items, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrRecordNotFound
	}
	return u, nil
}

func (s *MemoryStore) CompareAndSetPrice(ctx context.Context, arg CompareAndSetPriceParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[arg.VehicleID]
	if !ok || !v.IsActive || !v.CurrentPrice.Equal(arg.ExpectedPrice) {
		return false, nil
	}

	bidderID := arg.BidderID
	v.CurrentPrice = arg.NewPrice
	v.HighestBidderID = &bidderID
	s.vehicles[v.ID] = v

	s.nextBid++
	s.bids[v.ID] = append(s.bids[v.ID], Bid{
		ID:        s.nextBid,
		Amount:    arg.NewPrice,
		UserID:    arg.BidderID,
		VehicleID: v.ID,
		CreatedAt: s.now(),
	})
	return true, nil
}

func (s *MemoryStore) FinalizeAuction(ctx context.Context, id int64, ownerID *int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[id]
	if !ok || !v.IsActive {
		return false, nil
	}

	v.IsActive = false
	if ownerID != nil {
		owner := *ownerID
		v.OwnerID = &owner
	}
	s.vehicles[id] = v
	return true, nil
}
