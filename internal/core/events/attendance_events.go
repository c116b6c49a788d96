package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCheckedIn     = "attendance.checked_in"
	EventTypeCheckedOut    = "attendance.checked_out"
	EventTypeLeaveRequest  = "leave.submitted"
	EventTypeLeaveDecision = "leave.decided"
)

// ActorSnapshot captures the acting user and their reporting chain at the
// moment the event fired. Recipients are resolved from this snapshot, not
// re-read later.
type ActorSnapshot struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	TeamLeadID  *string `json:"team_lead_id,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
}

type AttendanceEvent struct {
	BaseEvent
	Actor    ActorSnapshot `json:"actor"`
	Action   string        `json:"action"`
	RecordID string        `json:"record_id"`
}

// NewCheckedInEvent fires after a check-in record has been persisted.
func NewCheckedInEvent(actor ActorSnapshot, recordID string) *AttendanceEvent {
	return newAttendanceEvent(EventTypeCheckedIn, actor, "CHECKED IN", recordID)
}

// NewCheckedOutEvent fires after a check-out has been persisted.
func NewCheckedOutEvent(actor ActorSnapshot, recordID string) *AttendanceEvent {
	return newAttendanceEvent(EventTypeCheckedOut, actor, "CHECKED OUT", recordID)
}

func newAttendanceEvent(eventType string, actor ActorSnapshot, action, recordID string) *AttendanceEvent {
	return &AttendanceEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now().UTC(),
		},
		Actor:    actor,
		Action:   action,
		RecordID: recordID,
	}
}

type LeaveRequestEvent struct {
	BaseEvent
	Actor     ActorSnapshot `json:"actor"`
	RequestID string        `json:"request_id"`
	LeaveType string        `json:"leave_type"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
}

// NewLeaveRequestEvent fires after a leave request has been persisted.
func NewLeaveRequestEvent(actor ActorSnapshot, requestID, leaveType, startDate, endDate string) *LeaveRequestEvent {
	return &LeaveRequestEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveRequest,
			Timestamp: time.Now().UTC(),
		},
		Actor:     actor,
		RequestID: requestID,
		LeaveType: leaveType,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

type LeaveDecisionEvent struct {
	BaseEvent
	RequesterID string `json:"requester_id"`
	DeciderName string `json:"decider_name"`
	Decision    string `json:"decision"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// NewLeaveDecisionEvent fires after a pending leave request has been
// approved or rejected. It addresses the original requester directly.
func NewLeaveDecisionEvent(requesterID, deciderName, decision, startDate, endDate string) *LeaveDecisionEvent {
	return &LeaveDecisionEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveDecision,
			Timestamp: time.Now().UTC(),
		},
		RequesterID: requesterID,
		DeciderName: deciderName,
		Decision:    decision,
		StartDate:   startDate,
		EndDate:     endDate,
	}
}
