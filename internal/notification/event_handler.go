package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// EventHandler bridges domain events to notification writes. Handlers
// always return nil: dispatch failures are logged per recipient and must
// never fail the publishing operation.
type EventHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *EventHandler) HandleAttendanceEvent(ctx context.Context, event events.Event) error {
	attEvent, ok := event.(*events.AttendanceEvent)
	if !ok {
		h.logger.Error("invalid event type for attendance handler", "event_type", event.EventType())
		return nil
	}

	message := fmt.Sprintf("%s %s at %s",
		attEvent.Actor.DisplayName,
		attEvent.Action,
		attEvent.OccurredAt().Format("15:04"))

	h.dispatcher.FanOut(ctx, attEvent.Actor, TypeAttendance, message)
	return nil
}

func (h *EventHandler) HandleLeaveRequest(ctx context.Context, event events.Event) error {
	leaveEvent, ok := event.(*events.LeaveRequestEvent)
	if !ok {
		h.logger.Error("invalid event type for leave request handler", "event_type", event.EventType())
		return nil
	}

	message := fmt.Sprintf("%s requested %s leave from %s to %s",
		leaveEvent.Actor.DisplayName,
		strings.ToLower(leaveEvent.LeaveType),
		leaveEvent.StartDate,
		leaveEvent.EndDate)

	h.dispatcher.FanOut(ctx, leaveEvent.Actor, TypeLeave, message)
	return nil
}

func (h *EventHandler) HandleLeaveDecision(ctx context.Context, event events.Event) error {
	decision, ok := event.(*events.LeaveDecisionEvent)
	if !ok {
		h.logger.Error("invalid event type for leave decision handler", "event_type", event.EventType())
		return nil
	}

	message := fmt.Sprintf("Your leave request (%s to %s) was %s by %s",
		decision.StartDate,
		decision.EndDate,
		strings.ToLower(decision.Decision),
		decision.DeciderName)

	// A decision is a single direct reply to the requester, not a fan-out.
	if err := h.dispatcher.Direct(ctx, decision.RequesterID, decision.DeciderName, TypeLeave, message); err != nil {
		h.logger.Error("leave decision notification failed",
			"requester_id", decision.RequesterID,
			"error", err)
	}
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeCheckedIn, h.HandleAttendanceEvent)
	eventBus.Subscribe(events.EventTypeCheckedOut, h.HandleAttendanceEvent)
	eventBus.Subscribe(events.EventTypeLeaveRequest, h.HandleLeaveRequest)
	eventBus.Subscribe(events.EventTypeLeaveDecision, h.HandleLeaveDecision)

	h.logger.Info("notification event handlers registered",
		"event_types", []string{
			events.EventTypeCheckedIn,
			events.EventTypeCheckedOut,
			events.EventTypeLeaveRequest,
			events.EventTypeLeaveDecision,
		})
}
