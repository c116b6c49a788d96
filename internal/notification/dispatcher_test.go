package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/frahmantamala/attendance-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

// Mock repository; guarded because fan-out writes concurrently.
type mockNotificationRepository struct {
	mu            sync.Mutex
	created       []*notification.Notification
	failRecipient string
}

func (m *mockNotificationRepository) Create(n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRecipient != "" && n.RecipientID == m.failRecipient {
		return errors.New("write failed")
	}
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) ListByRecipient(recipientID string) ([]*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkRead(recipientID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for _, n := range m.created {
		if n.RecipientID == recipientID && set[n.ID] {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.created))
	for i, n := range m.created {
		out[i] = n.RecipientID
	}
	return out
}

func snapshotFor(role string, teamLeadID, managerID *string) events.ActorSnapshot {
	return events.ActorSnapshot{
		UserID:      "actor-1",
		DisplayName: "Sam Okafor",
		Role:        role,
		TeamLeadID:  teamLeadID,
		ManagerID:   managerID,
	}
}

var _ = Describe("Recipients", func() {
	teamLeadID := "tl-1"
	managerID := "mgr-1"
	empty := ""

	It("resolves both supervisors for staff", func() {
		actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)
		Expect(notification.Recipients(actor)).To(Equal([]string{teamLeadID, managerID}))
	})

	It("skips missing links in a staff chain", func() {
		actor := snapshotFor(directory.RoleStaff, nil, &managerID)
		Expect(notification.Recipients(actor)).To(Equal([]string{managerID}))

		actor = snapshotFor(directory.RoleStaff, &empty, &managerID)
		Expect(notification.Recipients(actor)).To(Equal([]string{managerID}))
	})

	It("resolves only the manager for a team lead", func() {
		actor := snapshotFor(directory.RoleTeamLead, nil, &managerID)
		Expect(notification.Recipients(actor)).To(Equal([]string{managerID}))
	})

	It("resolves nobody for managers, HR and admins", func() {
		for _, role := range []string{directory.RoleManager, directory.RoleHR, directory.RoleAdmin} {
			actor := snapshotFor(role, &teamLeadID, &managerID)
			Expect(notification.Recipients(actor)).To(BeEmpty(), "role %s", role)
		}
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		dispatcher *notification.Dispatcher
		repo       *mockNotificationRepository
	)

	teamLeadID := "tl-1"
	managerID := "mgr-1"

	BeforeEach(func() {
		repo = &mockNotificationRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher = notification.NewDispatcher(repo, logger)
	})

	Describe("FanOut", func() {
		It("writes one notification per recipient and waits for all of them", func() {
			actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)

			outcomes := dispatcher.FanOut(context.Background(), actor, notification.TypeAttendance, "Sam Okafor CHECKED IN at 09:00")

			Expect(outcomes).To(HaveLen(2))
			Expect(repo.recipients()).To(ConsistOf(teamLeadID, managerID))
		})

		It("returns nothing for an actor with no recipients", func() {
			actor := snapshotFor(directory.RoleManager, nil, nil)

			outcomes := dispatcher.FanOut(context.Background(), actor, notification.TypeAttendance, "whatever")

			Expect(outcomes).To(BeEmpty())
			Expect(repo.recipients()).To(BeEmpty())
		})

		It("keeps writing to other recipients when one write fails", func() {
			repo.failRecipient = teamLeadID
			actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)

			outcomes := dispatcher.FanOut(context.Background(), actor, notification.TypeLeave, "Sam Okafor requested vacation leave from 2026-04-01 to 2026-04-03")

			Expect(outcomes).To(HaveLen(2))
			Expect(repo.recipients()).To(ConsistOf(managerID))

			byRecipient := map[string]error{}
			for _, o := range outcomes {
				byRecipient[o.RecipientID] = o.Err
			}
			Expect(byRecipient[teamLeadID]).To(HaveOccurred())
			Expect(byRecipient[managerID]).ToNot(HaveOccurred())
		})

		It("stamps sender, type and unread state on each write", func() {
			actor := snapshotFor(directory.RoleTeamLead, nil, &managerID)

			dispatcher.FanOut(context.Background(), actor, notification.TypeAttendance, "message")

			list, err := repo.ListByRecipient(managerID)
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].SenderName).To(Equal("Sam Okafor"))
			Expect(list[0].Type).To(Equal(notification.TypeAttendance))
			Expect(list[0].IsRead).To(BeFalse())
			Expect(list[0].ID).ToNot(BeEmpty())
		})
	})

	Describe("Direct", func() {
		It("writes a single notification to the named recipient", func() {
			err := dispatcher.Direct(context.Background(), "staff-1", "Morgan Vale", notification.TypeLeave, "Your leave request (2026-04-01 to 2026-04-03) was approved by Morgan Vale")

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.recipients()).To(Equal([]string{"staff-1"}))
		})

		It("returns the write error to the caller", func() {
			repo.failRecipient = "staff-1"

			err := dispatcher.Direct(context.Background(), "staff-1", "Morgan Vale", notification.TypeLeave, "message")

			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("EventHandler", func() {
	var (
		handler *notification.EventHandler
		repo    *mockNotificationRepository
		bus     *events.EventBus
	)

	teamLeadID := "tl-1"
	managerID := "mgr-1"

	BeforeEach(func() {
		repo = &mockNotificationRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher := notification.NewDispatcher(repo, logger)
		handler = notification.NewEventHandler(dispatcher, logger)
		bus = events.NewEventBus(logger)
		handler.RegisterEventHandlers(bus)
	})

	It("fans out a check-in to the actor's reporting chain", func() {
		actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)
		event := events.NewCheckedInEvent(actor, "rec-1")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Expect(repo.recipients()).To(ConsistOf(teamLeadID, managerID))
	})

	It("formats the attendance message with actor, action and time", func() {
		actor := snapshotFor(directory.RoleTeamLead, nil, &managerID)
		event := events.NewCheckedOutEvent(actor, "rec-1")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		list, err := repo.ListByRecipient(managerID)
		Expect(err).ToNot(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Message).To(Equal("Sam Okafor CHECKED OUT at " + event.OccurredAt().Format("15:04")))
	})

	It("fans out a leave request as LEAVE with a lower-cased leave type", func() {
		actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)
		event := events.NewLeaveRequestEvent(actor, "req-1", "VACATION", "2026-04-01", "2026-04-03")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		list, err := repo.ListByRecipient(teamLeadID)
		Expect(err).ToNot(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Type).To(Equal(notification.TypeLeave))
		Expect(list[0].Message).To(Equal("Sam Okafor requested vacation leave from 2026-04-01 to 2026-04-03"))
	})

	It("sends a leave decision as one direct reply to the requester", func() {
		event := events.NewLeaveDecisionEvent("staff-1", "Morgan Vale", "APPROVED", "2026-04-01", "2026-04-03")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(repo.recipients()).To(Equal([]string{"staff-1"}))
		list, err := repo.ListByRecipient("staff-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(list[0].Message).To(Equal("Your leave request (2026-04-01 to 2026-04-03) was approved by Morgan Vale"))
	})

	It("never propagates a dispatch failure to the publisher", func() {
		repo.failRecipient = teamLeadID
		actor := snapshotFor(directory.RoleStaff, &teamLeadID, &managerID)

		Expect(bus.PublishSync(context.Background(), events.NewCheckedInEvent(actor, "rec-1"))).To(Succeed())
	})
})

var _ = Describe("NotificationService", func() {
	var (
		service *notification.Service
		repo    *mockNotificationRepository
	)

	BeforeEach(func() {
		repo = &mockNotificationRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = notification.NewService(repo, logger)
	})

	It("lists the caller's notifications newest first", func() {
		base := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			Expect(repo.Create(&notification.Notification{
				ID:          string(rune('a' + i)),
				RecipientID: "mgr-1",
				Timestamp:   base.Add(time.Duration(i) * time.Hour),
			})).To(Succeed())
		}

		list, err := service.ListForUser("mgr-1")

		Expect(err).ToNot(HaveOccurred())
		Expect(list).To(HaveLen(3))
		Expect(list[0].Timestamp.After(list[1].Timestamp)).To(BeTrue())
		Expect(list[1].Timestamp.After(list[2].Timestamp)).To(BeTrue())
	})

	It("marks only the caller's notifications as read", func() {
		Expect(repo.Create(&notification.Notification{ID: "n1", RecipientID: "mgr-1"})).To(Succeed())
		Expect(repo.Create(&notification.Notification{ID: "n2", RecipientID: "tl-1"})).To(Succeed())

		Expect(service.MarkRead("mgr-1", []string{"n1", "n2"})).To(Succeed())

		mine, _ := repo.ListByRecipient("mgr-1")
		theirs, _ := repo.ListByRecipient("tl-1")
		Expect(mine[0].IsRead).To(BeTrue())
		Expect(theirs[0].IsRead).To(BeFalse())
	})
})
