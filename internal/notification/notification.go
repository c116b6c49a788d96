package notification

import (
	"time"
)

// Notification type values, matching the triggering domain. ATTENDANCE
// covers check-in/out fan-outs, LEAVE the whole leave workflow:
// submission fan-outs and decision replies alike.
const (
	TypeAttendance = "ATTENDANCE"
	TypeLeave      = "LEAVE"
)

type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	RecipientID string    `json:"recipient_id" gorm:"column:recipient_id;not null;index"`
	SenderName  string    `json:"sender_name" gorm:"column:sender_name"`
	Message     string    `json:"message" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"`
	IsRead      bool      `json:"is_read" gorm:"column:is_read;default:false"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`
}

func (Notification) TableName() string {
	return "notifications"
}
