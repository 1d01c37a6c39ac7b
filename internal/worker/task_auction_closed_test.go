package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingInbox struct {
	mu    sync.Mutex
	items []notification.Notification
	err   error
}

func (i *recordingInbox) Push(ctx context.Context, n notification.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.items = append(i.items, n)
	return nil
}

type recordingMailer struct {
	to      []string
	subject string
	err     error
}

func (m *recordingMailer) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	m.to = to
	m.subject = subject
	return m.err
}

type recordingAnnouncer struct {
	messages []string
}

func (a *recordingAnnouncer) Announce(ctx context.Context, message string) error {
	a.messages = append(a.messages, message)
	return nil
}

func auctionClosedTask(t *testing.T, payload PayloadAuctionClosed) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(TaskAuctionClosed, data)
}

func TestProcessTaskAuctionClosed_WithWinner(t *testing.T) {
	store := db.NewMemoryStore()
	store.AddUser(db.User{ID: 5, Username: "xavier", Email: "xavier@example.com"})

	inbox := &recordingInbox{}
	mailer := &recordingMailer{}
	announcer := &recordingAnnouncer{}
	processor := &RedisTaskProcessor{store: store, inbox: inbox, mailer: mailer, announcer: announcer}

	winnerID := int64(5)
	err := processor.ProcessTaskAuctionClosed(context.Background(), auctionClosedTask(t, PayloadAuctionClosed{
		VehicleID:  12,
		Title:      "Mazda MX-5",
		FinalPrice: decimal.RequireFromString("1100"),
		WinnerID:   &winnerID,
	}))
	require.NoError(t, err)

	require.Len(t, inbox.items, 1)
	require.Equal(t, int64(5), inbox.items[0].RecipientID)
	require.Equal(t, notification.TypeAuctionWin, inbox.items[0].Type)
	require.Equal(t, "12", inbox.items[0].ReferenceID)
	require.Contains(t, inbox.items[0].Message, "$1,100.00")

	require.Equal(t, []string{"xavier@example.com"}, mailer.to)
	require.Contains(t, mailer.subject, "Mazda MX-5")

	require.Len(t, announcer.messages, 1)
	require.Contains(t, announcer.messages[0], "sold to xavier")
}

func TestProcessTaskAuctionClosed_NoWinner(t *testing.T) {
	inbox := &recordingInbox{}
	announcer := &recordingAnnouncer{}
	processor := &RedisTaskProcessor{store: db.NewMemoryStore(), inbox: inbox, announcer: announcer}

	err := processor.ProcessTaskAuctionClosed(context.Background(), auctionClosedTask(t, PayloadAuctionClosed{
		VehicleID:  3,
		Title:      "Lada Niva",
		FinalPrice: decimal.NewFromInt(500),
	}))
	require.NoError(t, err)
	require.Empty(t, inbox.items)
	require.Len(t, announcer.messages, 1)
	require.Contains(t, announcer.messages[0], "no bids")
}

func TestProcessTaskAuctionClosed_MailFailureIsNotFatal(t *testing.T) {
	store := db.NewMemoryStore()
	store.AddUser(db.User{ID: 1, Username: "yara", Email: "yara@example.com"})

	inbox := &recordingInbox{}
	processor := &RedisTaskProcessor{store: store, inbox: inbox, mailer: &recordingMailer{err: errors.New("smtp down")}}

	winnerID := int64(1)
	err := processor.ProcessTaskAuctionClosed(context.Background(), auctionClosedTask(t, PayloadAuctionClosed{
		VehicleID:  9,
		Title:      "Volvo 240",
		FinalPrice: decimal.NewFromInt(2000),
		WinnerID:   &winnerID,
	}))
	require.NoError(t, err)
	require.Len(t, inbox.items, 1)
}

func TestProcessTaskAuctionClosed_InboxFailureRetries(t *testing.T) {
	store := db.NewMemoryStore()
	store.AddUser(db.User{ID: 1, Username: "yara"})

	processor := &RedisTaskProcessor{store: store, inbox: &recordingInbox{err: errors.New("redis down")}}

	winnerID := int64(1)
	err := processor.ProcessTaskAuctionClosed(context.Background(), auctionClosedTask(t, PayloadAuctionClosed{
		VehicleID: 9,
		WinnerID:  &winnerID,
	}))
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessTaskAuctionClosed_BadPayload(t *testing.T) {
	processor := &RedisTaskProcessor{store: db.NewMemoryStore(), inbox: &recordingInbox{}}

	err := processor.ProcessTaskAuctionClosed(context.Background(), asynq.NewTask(TaskAuctionClosed, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessTaskSendNotification(t *testing.T) {
	inbox := &recordingInbox{}
	processor := &RedisTaskProcessor{inbox: inbox}

	data, err := json.Marshal(PayloadSendNotification{RecipientID: 8, Title: "hi", Message: "there", Type: "info"})
	require.NoError(t, err)

	err = processor.ProcessTaskSendNotification(context.Background(), asynq.NewTask(TaskSendNotification, data))
	require.NoError(t, err)
	require.Len(t, inbox.items, 1)
	require.Equal(t, int64(8), inbox.items[0].RecipientID)
	require.False(t, inbox.items[0].CreatedAt.IsZero())
}
