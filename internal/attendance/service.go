package attendance

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"github.com/frahmantamala/attendance-management/pkg/timeutil"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	Create(rec *Record) error
	GetByID(id string) (*Record, error)
	// GetOpenByUserID returns (nil, nil) when the user has no open session.
	GetOpenByUserID(userID string) (*Record, error)
	ListAll() ([]*Record, error)
	ListByUserID(userID string) ([]*Record, error)
	Update(rec *Record) error
	Delete(id string) error
}

// EventPublisher decouples the state machine from notification fan-out.
// Publishing happens strictly after the record write has committed.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Clock is injected so lateness and duration boundaries are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Service drives the shift session state machine.
type Service struct {
	repo      Repository
	publisher EventPublisher
	clock     Clock
	logger    *slog.Logger
}

func NewService(repo Repository, publisher EventPublisher, clock Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// CheckIn opens a new session for the user. The open-session precondition
// is re-checked here rather than trusted from the caller.
func (s *Service) CheckIn(ctx context.Context, user *directory.User, dto CheckInDTO) (*Record, error) {
	open, err := s.repo.GetOpenByUserID(user.ID)
	if err != nil {
		s.logger.Error("failed to query open session", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to query open session", err)
	}
	if open != nil {
		s.logger.Warn("check-in rejected: session already open", "user_id", user.ID, "record_id", open.ID)
		return nil, internal.ErrSessionAlreadyOpen
	}

	now := s.clock.Now().UTC()

	location := dto.Location
	if location == "" {
		location = DefaultLocation
	}

	rec := &Record{
		ID:       NewRecordID(user.ID, now),
		UserID:   user.ID,
		Username: user.Username,
		Date:     now.Format(timeutil.DateLayout),
		CheckIn:  timeutil.Canonical(now),
		Status:   s.deriveCheckInStatus(user, now),
		Location: location,
	}

	if err := s.repo.Create(rec); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create attendance record", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to create attendance record", err)
	}

	s.logger.Info("checked in",
		"record_id", rec.ID,
		"user_id", user.ID,
		"status", rec.Status)

	// Fan-out settles before we return; its failures never surface here.
	if err := s.publisher.PublishSync(ctx, events.NewCheckedInEvent(user.Snapshot(), rec.ID)); err != nil {
		s.logger.Error("check-in notification dispatch failed", "error", err, "record_id", rec.ID)
	}

	return rec, nil
}

// CheckOut closes the user's open session, enforcing the minimum stay and
// applying the half-day downgrade.
func (s *Service) CheckOut(ctx context.Context, user *directory.User) (*Record, error) {
	open, err := s.repo.GetOpenByUserID(user.ID)
	if err != nil {
		s.logger.Error("failed to query open session", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to query open session", err)
	}
	if open == nil {
		return nil, internal.ErrNoOpenSession
	}

	checkedInAt, err := timeutil.ParseLenient(open.CheckIn)
	if err != nil {
		s.logger.Error("open session has unparseable check_in", "record_id", open.ID, "check_in", open.CheckIn)
		return nil, internal.NewValidationError("session check_in is unreadable", internal.ErrCodeInvalidDate)
	}

	now := s.clock.Now().UTC()
	elapsed := now.Sub(checkedInAt)
	durationHours := elapsed.Hours()

	if durationHours < MinimumStayHours {
		remaining := int(math.Ceil(MinimumStayHours*60 - elapsed.Minutes()))
		s.logger.Warn("check-out rejected: minimum stay not met",
			"record_id", open.ID,
			"user_id", user.ID,
			"remaining_minutes", remaining)
		return nil, internal.NewMinimumStayError(remaining)
	}

	checkOut := timeutil.Canonical(now)
	open.CheckOut = &checkOut
	if durationHours < HalfDayThresholdHours {
		// Last rule wins: a prior LATE classification is overwritten.
		open.Status = StatusHalfDay
	}

	if err := s.repo.Update(open); err != nil {
		s.logger.Error("failed to persist check-out", "error", err, "record_id", open.ID)
		return nil, internal.NewInternalError("failed to persist check-out", err)
	}

	s.logger.Info("checked out",
		"record_id", open.ID,
		"user_id", user.ID,
		"status", open.Status,
		"duration_hours", durationHours)

	if err := s.publisher.PublishSync(ctx, events.NewCheckedOutEvent(user.Snapshot(), open.ID)); err != nil {
		s.logger.Error("check-out notification dispatch failed", "error", err, "record_id", open.ID)
	}

	return open, nil
}

// ManualEdit overwrites record fields for an admin. Dates are re-normalized
// to the canonical forms but status derivation is not re-run and no
// notifications fire.
func (s *Service) ManualEdit(actor *directory.User, id string, dto ManualEditDTO) (*Record, error) {
	if !auth.Can(actor.Role, auth.CapEditAttendance) {
		s.logger.Warn("manual edit denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrUnauthorizedAccess
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rec, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRecordNotFound
	}

	if dto.Date != nil {
		rec.Date = timeutil.DateOnly(*dto.Date)
	}
	if dto.CheckIn != nil {
		normalized, err := timeutil.NormalizeDateTime(*dto.CheckIn)
		if err != nil {
			return nil, internal.NewValidationError("invalid check_in value", internal.ErrCodeInvalidDate)
		}
		rec.CheckIn = normalized
	}
	if dto.CheckOut != nil {
		if *dto.CheckOut == "" {
			rec.CheckOut = nil
		} else {
			normalized, err := timeutil.NormalizeDateTime(*dto.CheckOut)
			if err != nil {
				return nil, internal.NewValidationError("invalid check_out value", internal.ErrCodeInvalidDate)
			}
			rec.CheckOut = &normalized
		}
	}
	if dto.Status != nil {
		rec.Status = *dto.Status
	}
	if dto.Location != nil {
		rec.Location = *dto.Location
	}

	if err := s.repo.Update(rec); err != nil {
		s.logger.Error("failed to persist manual edit", "error", err, "record_id", id)
		return nil, internal.NewInternalError("failed to persist manual edit", err)
	}

	s.logger.Info("record manually edited", "record_id", id, "actor_id", actor.ID)
	return rec, nil
}

// Delete removes a record permanently. Admin only.
func (s *Service) Delete(actor *directory.User, id string) error {
	if !auth.Can(actor.Role, auth.CapDeleteAttendance) {
		s.logger.Warn("delete denied", "actor_id", actor.ID, "role", actor.Role)
		return internal.ErrUnauthorizedAccess
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrRecordNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete record", "error", err, "record_id", id)
		return internal.NewInternalError("failed to delete record", err)
	}

	s.logger.Info("record deleted", "record_id", id, "actor_id", actor.ID)
	return nil
}

// Ledger returns the viewer's visible records as display views, newest
// check-in first.
func (s *Service) Ledger(viewer *directory.User) ([]RecordView, error) {
	var (
		records []*Record
		err     error
	)

	if auth.AttendanceScope(viewer.Role) == auth.ScopeAll {
		records, err = s.repo.ListAll()
	} else {
		records, err = s.repo.ListByUserID(viewer.ID)
	}
	if err != nil {
		s.logger.Error("failed to list attendance records", "error", err, "viewer_id", viewer.ID)
		return nil, internal.NewInternalError("failed to list attendance records", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey().After(records[j].SortKey())
	})

	views := make([]RecordView, len(records))
	for i, rec := range records {
		views[i] = rec.View()
	}
	return views, nil
}

// deriveCheckInStatus applies the lateness rule. Seconds count: one second
// past the grace window is LATE.
func (s *Service) deriveCheckInStatus(user *directory.User, now time.Time) string {
	shiftMinutes, err := timeutil.MinutesOfDay(user.ShiftStart())
	if err != nil {
		s.logger.Warn("unparseable shift start, using default",
			"user_id", user.ID,
			"shift_start", user.ShiftStartTime)
		shiftMinutes, _ = timeutil.MinutesOfDay(directory.DefaultShiftStart)
	}

	currentMinutes := float64(now.Hour()*60+now.Minute()) + float64(now.Second())/60.0
	if currentMinutes > float64(shiftMinutes+LateGraceMinutes) {
		return StatusLate
	}
	return StatusPresent
}
