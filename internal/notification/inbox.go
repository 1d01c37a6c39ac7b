package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultInboxSize = 100

// RedisInbox keeps the most recent notifications of each user in a capped
// redis list, newest first.
type RedisInbox struct {
	client  *redis.Client
	maxSize int64
}

func NewRedisInbox(client *redis.Client, maxSize int64) *RedisInbox {
	if maxSize <= 0 {
		maxSize = DefaultInboxSize
	}

	return &RedisInbox{
		client:  client,
		maxSize: maxSize,
	}
}

func inboxKey(userID int64) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Push prepends n to the recipient's inbox and trims it to the configured size.
func (i *RedisInbox) Push(ctx context.Context, n Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := inboxKey(n.RecipientID)
	_, err = i.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, i.maxSize-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	return nil
}

// List returns up to limit notifications for userID, newest first.
func (i *RedisInbox) List(ctx context.Context, userID int64, limit int64) ([]Notification, error) {
	if limit <= 0 || limit > i.maxSize {
		limit = i.maxSize
	}

	items, err := i.client.LRange(ctx, inboxKey(userID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]Notification, 0, len(items))
	for _, item := range items {
		var n Notification
		if err = json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}
