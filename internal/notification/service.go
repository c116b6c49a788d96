package notification

import (
	"log/slog"
	"sort"

	"github.com/frahmantamala/attendance-management/internal"
)

// Service exposes the read side of notifications: each user sees their own
// inbox and may bulk mark it read when viewing.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListForUser(userID string) ([]*Notification, error) {
	notifications, err := s.repo.ListByRecipient(userID)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list notifications", err)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Timestamp.After(notifications[j].Timestamp)
	})
	return notifications, nil
}

// MarkRead flags the given notifications read, scoped to the caller so one
// user cannot mark another's inbox.
func (s *Service) MarkRead(userID string, ids []string) error {
	if len(ids) == 0 {
		return internal.NewValidationError("no notification ids provided", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.MarkRead(userID, ids); err != nil {
		s.logger.Error("failed to mark notifications read", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}
