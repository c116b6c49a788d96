package directory

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// Role values. STAFF report to a team lead and/or a manager, team leads
// report to a manager, the rest are roots of the reporting forest.
const (
	RoleStaff    = "STAFF"
	RoleTeamLead = "TEAM_LEAD"
	RoleManager  = "MANAGER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

// DefaultShiftStart applies when a user has no shift configured.
const DefaultShiftStart = "09:00"

type User struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	FullName       string    `json:"full_name" gorm:"column:full_name"`
	PasswordHash   string    `json:"-" gorm:"column:password_hash"`
	Role           string    `json:"role" gorm:"not null;default:STAFF"`
	Department     string    `json:"department"`
	ShiftStartTime string    `json:"shift_start_time" gorm:"column:shift_start_time"`
	TeamLeadID     *string   `json:"team_lead_id,omitempty" gorm:"column:team_lead_id"`
	ManagerID      *string   `json:"manager_id,omitempty" gorm:"column:manager_id"`
	IsActive       bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// ShiftStart returns the configured shift start clock, or the default.
func (u *User) ShiftStart() string {
	if u.ShiftStartTime == "" {
		return DefaultShiftStart
	}
	return u.ShiftStartTime
}

// Snapshot freezes the user's identity and reporting chain for an event.
func (u *User) Snapshot() events.ActorSnapshot {
	return events.ActorSnapshot{
		UserID:      u.ID,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		TeamLeadID:  u.TeamLeadID,
		ManagerID:   u.ManagerID,
	}
}
