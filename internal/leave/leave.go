package leave

import (
	"time"
)

// Request status values. PENDING transitions exactly once to APPROVED or
// REJECTED; a pending request may instead be withdrawn (deleted) by its
// owner.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypeVacation = "VACATION"
	TypeSick     = "SICK"
	TypeCasual   = "CASUAL"
	TypeOther    = "OTHER"
)

type Request struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null;index"`
	Username  string    `json:"username"`
	StartDate string    `json:"start_date" gorm:"column:start_date;not null"`
	EndDate   string    `json:"end_date" gorm:"column:end_date;not null"`
	LeaveType string    `json:"leave_type" gorm:"column:leave_type;not null"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status" gorm:"not null;default:PENDING"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Request) TableName() string {
	return "leave_requests"
}

func (r *Request) CanBeDecided() bool {
	return r.Status == StatusPending
}

func (r *Request) CanBeWithdrawn() bool {
	return r.Status == StatusPending
}

func ValidLeaveType(t string) bool {
	switch t {
	case TypeVacation, TypeSick, TypeCasual, TypeOther:
		return true
	}
	return false
}
