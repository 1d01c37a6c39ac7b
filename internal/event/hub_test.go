package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func priceEvent(vehicleID int64, price int64) Event {
	return BidAccepted(vehicleID, "bidder", decimal.NewFromInt(price))
}

func TestHub_PublishDeliversInOrder(t *testing.T) {
	hub := NewHub(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := hub.Subscribe(ctx)
	second := hub.Subscribe(ctx)
	require.Equal(t, 2, hub.Len())

	for i := int64(1); i <= 5; i++ {
		hub.Publish(priceEvent(7, i*100))
	}

	for _, sub := range []*Subscription{first, second} {
		for i := int64(1); i <= 5; i++ {
			ev, err := sub.Next(ctx)
			require.NoError(t, err)
			require.Equal(t, TypeBidAccepted, ev.Type)
			require.True(t, ev.Price.Equal(decimal.NewFromInt(i*100)))
		}
	}
}

func TestHub_OverflowDropsOldest(t *testing.T) {
	hub := NewHub(10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := hub.Subscribe(ctx)
	for i := int64(1); i <= 50; i++ {
		hub.Publish(priceEvent(1, i))
	}

	require.Equal(t, 10, sub.Pending())
	require.Equal(t, uint64(40), sub.Dropped())

	var last Event
	for i := int64(41); i <= 50; i++ {
		ev, err := sub.Next(ctx)
		require.NoError(t, err)
		require.True(t, ev.Price.Equal(decimal.NewFromInt(i)), "want %d got %s", i, ev.Price)
		last = ev
	}
	require.True(t, last.Price.Equal(decimal.NewFromInt(50)))
}

func TestHub_StalledSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = hub.Subscribe(ctx) // never read
	reader := hub.Subscribe(ctx)

	published := make(chan struct{})
	go func() {
		for i := int64(1); i <= 10000; i++ {
			hub.Publish(priceEvent(3, i))
		}
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(5 * time.Second):
		t.Fatal("publish blocked on a stalled subscriber")
	}

	var last Event
	for reader.Pending() > 0 {
		ev, err := reader.Next(ctx)
		require.NoError(t, err)
		last = ev
	}
	require.True(t, last.Price.Equal(decimal.NewFromInt(10000)))
}

func TestHub_CancelledContextRemovesSubscriber(t *testing.T) {
	hub := NewHub(4)
	ctx, cancel := context.WithCancel(context.Background())

	sub := hub.Subscribe(ctx)
	require.Equal(t, 1, hub.Len())

	cancel()

	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
	<-sub.Done()

	_, err := sub.Next(context.Background())
	require.ErrorIs(t, err, ErrSubscriptionClosed)

	// Publishing after removal must not touch the closed subscription.
	hub.Publish(priceEvent(1, 1))
	require.Equal(t, 0, sub.Pending())
}

func TestSubscription_NextHonoursContext(t *testing.T) {
	hub := NewHub(4)
	sub := hub.Subscribe(context.Background())
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := sub.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, hub.Len())
}

func TestHub_ConcurrentPublishersAndSubscribers(t *testing.T) {
	hub := NewHub(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subCtx, subCancel := context.WithCancel(ctx)
			sub := hub.Subscribe(subCtx)
			for j := 0; j < 50; j++ {
				readCtx, readCancel := context.WithTimeout(subCtx, time.Millisecond)
				_, _ = sub.Next(readCtx)
				readCancel()
			}
			subCancel()
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(vehicleID int64) {
			defer wg.Done()
			for j := int64(0); j < 200; j++ {
				hub.Publish(priceEvent(vehicleID, j))
			}
		}(int64(i))
	}
	wg.Wait()

	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}
