package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/google/uuid"
)

// Repository defines the data access methods for notifications.
type Repository interface {
	Create(n *Notification) error
	ListByRecipient(recipientID string) ([]*Notification, error)
	MarkRead(recipientID string, ids []string) error
}

// Outcome reports one recipient's write result from a fan-out.
type Outcome struct {
	RecipientID string
	Err         error
}

// Dispatcher writes notification records for the reporting chain of an
// acting user. Fan-out writes are independent: each recipient succeeds or
// fails on its own, and a failure never reverts the record that triggered
// the event.
type Dispatcher struct {
	repo   Repository
	logger *slog.Logger
}

func NewDispatcher(repo Repository, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		logger: logger,
	}
}

// Recipients resolves the fixed escalation table: staff notify their team
// lead and manager, team leads their manager, everyone else nobody.
func Recipients(actor events.ActorSnapshot) []string {
	var recipients []string
	switch actor.Role {
	case directory.RoleStaff:
		if actor.TeamLeadID != nil && *actor.TeamLeadID != "" {
			recipients = append(recipients, *actor.TeamLeadID)
		}
		if actor.ManagerID != nil && *actor.ManagerID != "" {
			recipients = append(recipients, *actor.ManagerID)
		}
	case directory.RoleTeamLead:
		if actor.ManagerID != nil && *actor.ManagerID != "" {
			recipients = append(recipients, *actor.ManagerID)
		}
	}
	return recipients
}

// FanOut creates one notification per resolved recipient, concurrently,
// and waits until every write has settled. Failed writes are logged and
// returned as outcomes, never as an error.
func (d *Dispatcher) FanOut(ctx context.Context, actor events.ActorSnapshot, notifType, message string) []Outcome {
	recipients := Recipients(actor)
	if len(recipients) == 0 {
		d.logger.Debug("no recipients to notify", "actor_id", actor.UserID, "role", actor.Role)
		return nil
	}

	outcomes := make([]Outcome, len(recipients))
	var wg sync.WaitGroup

	for i, recipientID := range recipients {
		wg.Add(1)
		go func(i int, recipientID string) {
			defer wg.Done()
			err := d.write(recipientID, actor.DisplayName, notifType, message)
			outcomes[i] = Outcome{RecipientID: recipientID, Err: err}
			if err != nil {
				d.logger.Error("notification write failed",
					"recipient_id", recipientID,
					"actor_id", actor.UserID,
					"type", notifType,
					"error", err)
			}
		}(i, recipientID)
	}

	wg.Wait()

	d.logger.Info("notification fan-out settled",
		"actor_id", actor.UserID,
		"recipients", len(recipients),
		"type", notifType)
	return outcomes
}

// Direct sends a single notification to one recipient, bypassing the
// escalation table. Used for decision replies to a requester.
func (d *Dispatcher) Direct(ctx context.Context, recipientID, senderName, notifType, message string) error {
	if err := d.write(recipientID, senderName, notifType, message); err != nil {
		d.logger.Error("direct notification failed",
			"recipient_id", recipientID,
			"type", notifType,
			"error", err)
		return err
	}
	return nil
}

func (d *Dispatcher) write(recipientID, senderName, notifType, message string) error {
	return d.repo.Create(&Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		SenderName:  senderName,
		Message:     message,
		Type:        notifType,
		IsRead:      false,
		Timestamp:   time.Now().UTC(),
	})
}
