package leave

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/frahmantamala/attendance-management/pkg/timeutil"
	"github.com/google/uuid"
)

// Repository defines the data access methods for leave requests.
type Repository interface {
	Create(req *Request) error
	GetByID(id string) (*Request, error)
	ListAll() ([]*Request, error)
	ListByUserID(userID string) ([]*Request, error)
	ListByUserIDs(userIDs []string) ([]*Request, error)
	Update(req *Request) error
	Delete(id string) error
}

// EventPublisher decouples the workflow from notification fan-out.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      Repository
	users     directory.Repository
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, users directory.Repository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit creates a pending request owned by the caller and notifies the
// owner's reporting chain.
func (s *Service) Submit(ctx context.Context, owner *directory.User, dto SubmitLeaveDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	req := &Request{
		ID:        uuid.New().String(),
		UserID:    owner.ID,
		Username:  owner.Username,
		StartDate: timeutil.DateOnly(dto.StartDate),
		EndDate:   timeutil.DateOnly(dto.EndDate),
		LeaveType: dto.LeaveType,
		Reason:    dto.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", owner.ID)
		return nil, internal.NewInternalError("failed to create leave request", err)
	}

	s.logger.Info("leave request submitted",
		"request_id", req.ID,
		"user_id", owner.ID,
		"leave_type", req.LeaveType)

	event := events.NewLeaveRequestEvent(owner.Snapshot(), req.ID, req.LeaveType, req.StartDate, req.EndDate)
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Error("leave request notification dispatch failed", "error", err, "request_id", req.ID)
	}

	return req, nil
}

// Decide approves or rejects a pending request. Self-approval is forbidden
// regardless of role; the requester gets exactly one direct reply.
func (s *Service) Decide(ctx context.Context, approver *directory.User, id, decision string) (*Request, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return nil, internal.NewValidationError("decision must be APPROVED or REJECTED", internal.ErrCodeInvalidStatus)
	}

	if !auth.Can(approver.Role, auth.CapDecideLeave) {
		s.logger.Warn("leave decision denied", "approver_id", approver.ID, "role", approver.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLeaveNotFound
	}

	if approver.ID == req.UserID {
		s.logger.Warn("self-approval rejected", "request_id", id, "user_id", approver.ID)
		return nil, internal.ErrSelfApproval
	}

	if !req.CanBeDecided() {
		s.logger.Warn("cannot decide leave request in current status",
			"request_id", id,
			"status", req.Status)
		return nil, internal.ErrLeaveNotPending
	}

	req.Status = decision
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to persist leave decision", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to persist leave decision", err)
	}

	s.logger.Info("leave request decided",
		"request_id", id,
		"decision", decision,
		"approver_id", approver.ID)

	event := events.NewLeaveDecisionEvent(req.UserID, approver.DisplayName(), decision, req.StartDate, req.EndDate)
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Error("leave decision notification dispatch failed", "error", err, "request_id", id)
	}

	return req, nil
}

// Withdraw hard-deletes a still-pending request. Owner only, no
// notification.
func (s *Service) Withdraw(owner *directory.User, id string) error {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrLeaveNotFound
	}

	if req.UserID != owner.ID {
		s.logger.Warn("withdraw denied: not the owner", "request_id", id, "user_id", owner.ID)
		return internal.ErrNotRequestOwner
	}

	if !req.CanBeWithdrawn() {
		s.logger.Warn("withdraw denied: request already decided",
			"request_id", id,
			"status", req.Status)
		return internal.ErrLeaveNotPending
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to withdraw leave request", "error", err, "request_id", id)
		return internal.NewInternalError("failed to withdraw leave request", err)
	}

	s.logger.Info("leave request withdrawn", "request_id", id, "user_id", owner.ID)
	return nil
}

// Ledger returns the requests the viewer may see, newest first.
func (s *Service) Ledger(viewer *directory.User) ([]*Request, error) {
	var (
		requests []*Request
		err      error
	)

	switch auth.LeaveScope(viewer.Role) {
	case auth.ScopeAll:
		requests, err = s.repo.ListAll()
	case auth.ScopeDepartment:
		requests, err = s.listForScope(viewer, s.departmentUserIDs)
	case auth.ScopeTeam:
		requests, err = s.listForScope(viewer, s.teamUserIDs)
	default:
		requests, err = s.repo.ListByUserID(viewer.ID)
	}
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "viewer_id", viewer.ID)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *Service) listForScope(viewer *directory.User, resolve func(*directory.User) ([]string, error)) ([]*Request, error) {
	ids, err := resolve(viewer)
	if err != nil {
		return nil, err
	}

	// The viewer always sees their own requests on top of their scope.
	seen := false
	for _, id := range ids {
		if id == viewer.ID {
			seen = true
			break
		}
	}
	if !seen {
		ids = append(ids, viewer.ID)
	}
	return s.repo.ListByUserIDs(ids)
}

func (s *Service) departmentUserIDs(viewer *directory.User) ([]string, error) {
	users, err := s.users.ListByDepartment(viewer.Department)
	if err != nil {
		s.logger.Error("failed to resolve department members", "error", err, "department", viewer.Department)
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *Service) teamUserIDs(viewer *directory.User) ([]string, error) {
	users, err := s.users.ListByTeamLead(viewer.ID)
	if err != nil {
		s.logger.Error("failed to resolve team members", "error", err, "team_lead_id", viewer.ID)
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
