package service

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ReminderText is the fixed daily reminder payload.
const ReminderText = "⏰ Buongiorno! Ricordati di registrare il tuo peso con il comando /peso 💪"

// MessageSender delivers an outbound message to a user. Failures are per-call
// and isolated; the transport layer implements this.
type MessageSender interface {
	Send(userID int64, text string) error
}

// Notifier dispatches the daily reminder to every opted-in user.
type Notifier struct {
	repo   Repository
	sender MessageSender
}

func NewNotifier(repo Repository, sender MessageSender) *Notifier {
	return &Notifier{
		repo:   repo,
		sender: sender,
	}
}

// RunDailyReminder reads the subscription registry and sends the reminder to
// each active user. A failed send is logged and skipped, never aborting the
// remaining dispatch; failures are aggregated into the returned error. The
// count of successfully notified users is returned either way.
func (n *Notifier) RunDailyReminder(ctx context.Context) (int, error) {
	subs, err := n.repo.GetActiveSubscriptions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get active subscriptions: %w", err)
	}

	notified := 0
	var sendErrs []error
	for _, sub := range subs {
		if err := n.sender.Send(sub.UserID, ReminderText); err != nil {
			log.Printf("reminder to user %d failed: %v", sub.UserID, err)
			sendErrs = append(sendErrs, fmt.Errorf("user %d: %w", sub.UserID, err))
			continue
		}
		notified++
	}

	if len(sendErrs) > 0 {
		log.Printf("daily reminder: %d of %d sends failed", len(sendErrs), len(subs))
		return notified, errors.Join(sendErrs...)
	}
	return notified, nil
}
