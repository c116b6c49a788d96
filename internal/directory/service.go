package directory

import (
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
)

// Repository defines the data access methods for the user directory.
type Repository interface {
	GetByID(id string) (*User, error)
	GetByUsername(username string) (*User, error)
	ListByDepartment(department string) ([]*User, error)
	ListByTeamLead(teamLeadID string) ([]*User, error)
}

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

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetByUsername(username string) (*User, error) {
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		s.logger.Error("failed to get user by username", "error", err, "username", username)
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}
