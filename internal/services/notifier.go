package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pubnub "github.com/pubnub/go/v7"

	"imagique/models"
)

// Notifier tells a customer's other devices about booking changes. Delivery
// is best effort: failures are logged and never returned to the caller.
type Notifier interface {
	BookingConfirmed(ctx context.Context, userDetailsID int64, b models.Booking)
	BookingCancelled(ctx context.Context, userDetailsID int64, bookingID int64)
}

type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(context.Context, int64, models.Booking) {}
func (NopNotifier) BookingCancelled(context.Context, int64, int64)          {}

type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
	SecretKey    string
	UserID       string
}

// publishTimeout bounds one pubnub publish, in seconds.
const publishTimeout = 5

// BookingNotifier publishes on the per-user channel "user-<userDetailsId>".
// Publishing happens in the background so callers never wait on pubnub.
type BookingNotifier struct {
	publish func(channel string, message map[string]any) error
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewNotifier returns a pubnub backed notifier, or a NopNotifier when the
// publish and subscribe keys are not both configured.
func NewNotifier(cfg PubNubConfig) Notifier {
	if cfg.PublishKey == "" || cfg.SubscribeKey == "" {
		slog.Info("pubnub keys not configured, booking notifications disabled")
		return NopNotifier{}
	}

	userID := cfg.UserID
	if userID == "" {
		userID = "imagique"
	}
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	pnCfg.PublishKey = cfg.PublishKey
	pnCfg.SubscribeKey = cfg.SubscribeKey
	pnCfg.SecretKey = cfg.SecretKey
	pnCfg.NonSubscribeRequestTimeout = publishTimeout
	pn := pubnub.NewPubNub(pnCfg)

	return &BookingNotifier{
		publish: func(channel string, message map[string]any) error {
			_, _, err := pn.Publish().
				Channel(channel).
				Message(message).
				Execute()
			return err
		},
		now: time.Now,
	}
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, userDetailsID int64, b models.Booking) {
	n.send(ctx, userDetailsID, map[string]any{
		"type":         "booking_confirmed",
		"booking_id":   b.BookingID,
		"event_name":   b.EventName,
		"tickets":      b.NoOfTickets,
		"total_price":  b.TotalPrice.String(),
		"published_at": n.now().Unix(),
	})
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, userDetailsID int64, bookingID int64) {
	n.send(ctx, userDetailsID, map[string]any{
		"type":         "booking_cancelled",
		"booking_id":   bookingID,
		"published_at": n.now().Unix(),
	})
}

func (n *BookingNotifier) send(ctx context.Context, userDetailsID int64, message map[string]any) {
	if ctx.Err() != nil {
		return
	}
	channel := UserChannel(userDetailsID)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.publish(channel, message); err != nil {
			slog.Warn("booking notification failed", "channel", channel, "type", message["type"], "error", err)
		}
	}()
}

// Wait blocks until every publish started so far has finished.
func (n *BookingNotifier) Wait() {
	n.wg.Wait()
}

func UserChannel(userDetailsID int64) string {
	return fmt.Sprintf("user-%d", userDetailsID)
}
