package event

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultQueueSize is the per-subscriber backlog used when none is configured.
const DefaultQueueSize = 64

var ErrSubscriptionClosed = errors.New("subscription closed")

// Hub fans events out to every subscriber. Each subscriber owns a bounded
// FIFO; when it is full the oldest event is dropped, so Publish never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscription
	queueSize   int
}

func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Hub{
		subscribers: make(map[string]*Subscription),
		queueSize:   queueSize,
	}
}

// Subscribe registers a new subscriber. It is removed when ctx is done or
// Close is called, whichever happens first.
func (h *Hub) Subscribe(ctx context.Context) *Subscription {
	sub := &Subscription{
		id:   uuid.NewString(),
		hub:  h,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	total := len(h.subscribers)
	h.mu.Unlock()

	log.Debug().Str("subscriber_id", sub.id).Int("subscribers", total).Msg("subscriber joined")

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub
}

// Publish enqueues ev for every current subscriber.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		sub.enqueue(ev, h.queueSize)
	}
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.subscribers, id)
	total := len(h.subscribers)
	h.mu.Unlock()

	log.Debug().Str("subscriber_id", id).Int("subscribers", total).Msg("subscriber left")
}

// Subscription is one subscriber's view of the event stream.
type Subscription struct {
	id  string
	hub *Hub

	mu      sync.Mutex
	queue   []Event
	dropped uint64

	wake      chan struct{} // 1-slot, signals a non-empty queue
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Subscription) ID() string {
	return s.id
}

func (s *Subscription) enqueue(ev Event, limit int) {
	s.mu.Lock()
	if len(s.queue) >= limit {
		s.queue[0] = Event{}
		s.queue = s.queue[1:]
		s.dropped++
	}
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Next blocks until an event is queued, the subscription is closed, or ctx
// is done.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	for {
		select {
		case <-s.done:
			return Event{}, ErrSubscriptionClosed
		default:
		}

		s.mu.Lock()
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue[0] = Event{}
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return ev, nil
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.done:
			return Event{}, ErrSubscriptionClosed
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Pending returns the number of queued events.
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Dropped returns how many events were discarded because the queue was full.
func (s *Subscription) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Done is closed once the subscription has been removed from the hub.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close removes the subscription from the hub and releases its queue.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.hub.remove(s.id)

		s.mu.Lock()
		s.queue = nil
		s.mu.Unlock()
	})
}
