package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/hibiken/asynq"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type PayloadAuctionClosed struct {
	VehicleID  int64           `json:"vehicle_id"`
	Title      string          `json:"title"`
	FinalPrice decimal.Decimal `json:"final_price"`
	WinnerID   *int64          `json:"winner_id"` // nil when nobody bid
}

// DistributeTaskAuctionClosed enqueues the follow-up work of a finalized auction.
func (distributor *RedisTaskDistributor) DistributeTaskAuctionClosed(
	ctx context.Context,
	payload *PayloadAuctionClosed,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := fmt.Sprintf("auction:closed:%d", payload.VehicleID)
	task := asynq.NewTask(TaskAuctionClosed, jsonPayload, append(opts, asynq.TaskID(taskID))...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", taskID).
		Int64("vehicle_id", payload.VehicleID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("auction closed task enqueued")

	return nil
}

// ProcessTaskAuctionClosed notifies the winner (inbox + email) and the admin channel.
func (processor *RedisTaskProcessor) ProcessTaskAuctionClosed(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadAuctionClosed
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	referenceID := strconv.FormatInt(payload.VehicleID, 10)
	finalPrice := util.FormatMoney(payload.FinalPrice)

	if payload.WinnerID == nil {
		processor.announce(ctx, fmt.Sprintf("Auction #%d \"%s\" ended with no bids.", payload.VehicleID, payload.Title))

		log.Info().
			Int64("vehicle_id", payload.VehicleID).
			Bool("has_winner", false).
			Msg("auction closed task processed")
		return nil
	}

	winner, err := processor.store.GetUser(ctx, *payload.WinnerID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			log.Warn().
				Int64("vehicle_id", payload.VehicleID).
				Int64("winner_id", *payload.WinnerID).
				Msg("winner not found, skipping notifications")
			return nil
		}
		return fmt.Errorf("failed to get winner: %w", err)
	}

	err = processor.inbox.Push(ctx, notification.Notification{
		RecipientID: winner.ID,
		Title:       "You won the auction!",
		Message: fmt.Sprintf("Congratulations! %s is yours for %s.",
			payload.Title, finalPrice),
		Type:        notification.TypeAuctionWin,
		ReferenceID: referenceID,
	})
	if err != nil {
		return fmt.Errorf("failed to push win notification: %w", err)
	}

	if processor.mailer != nil && winner.Email != "" {
		subject := fmt.Sprintf("You won %s", util.TruncateContent(payload.Title, 60))
		body := fmt.Sprintf("<p>Hi %s,</p><p>The auction for <b>%s</b> has ended and the vehicle is now yours for <b>%s</b>.</p>",
			winner.Username, payload.Title, finalPrice)
		if err = processor.mailer.SendEmail(ctx, []string{winner.Email}, subject, body); err != nil {
			log.Warn().
				Err(err).
				Int64("winner_id", winner.ID).
				Int64("vehicle_id", payload.VehicleID).
				Msg("failed to email auction winner")
		}
	}

	processor.announce(ctx, fmt.Sprintf("Auction #%d \"%s\" sold to %s for %s.",
		payload.VehicleID, payload.Title, winner.Username, finalPrice))

	log.Info().
		Int64("vehicle_id", payload.VehicleID).
		Int64("winner_id", winner.ID).
		Bool("has_winner", true).
		Msg("auction closed task processed")

	return nil
}

func (processor *RedisTaskProcessor) announce(ctx context.Context, message string) {
	if processor.announcer == nil {
		return
	}

	if err := processor.announcer.Announce(ctx, message); err != nil {
		log.Warn().Err(err).Msg("failed to announce auction result")
	}
}
