package attendance

import (
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-management/pkg/timeutil"
)

// Record status values. PRESENT/LATE are derived at check-in, HALF-DAY may
// override either at check-out, ABSENT and ON-LEAVE are set by admin edits.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF-DAY"
	StatusAbsent  = "ABSENT"
	StatusOnLeave = "ON-LEAVE"
)

const (
	// LateGraceMinutes past shift start before a check-in counts as LATE.
	LateGraceMinutes = 30
	// MinimumStayHours a session must last before check-out is allowed.
	MinimumStayHours = 1.0
	// HalfDayThresholdHours under which a closed session is downgraded.
	HalfDayThresholdHours = 5.0
	// SubOptimalHours is a display-only advisory threshold. It is
	// deliberately distinct from the half-day rule and never mutates status.
	SubOptimalHours = 7.5

	DefaultLocation = "Office"
)

// Record is one shift session. CheckIn and CheckOut hold canonical wire
// strings; a nil CheckOut marks an open session.
type Record struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null;index"`
	Username  string    `json:"username"`
	Date      string    `json:"date" gorm:"not null"`
	CheckIn   string    `json:"check_in" gorm:"column:check_in;not null"`
	CheckOut  *string   `json:"check_out" gorm:"column:check_out"`
	Status    string    `json:"status" gorm:"not null"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// NewRecordID builds the composite session id. Millisecond precision keeps
// multiple sessions per user per day distinct.
func NewRecordID(userID string, at time.Time) string {
	return fmt.Sprintf("%s-%d", userID, at.UnixMilli())
}

func (r *Record) IsOpen() bool {
	return r.CheckOut == nil
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}

// RecordView adds the display fields the ledger computes but never stores.
type RecordView struct {
	Record
	Duration   string `json:"duration"`
	SubOptimal bool   `json:"sub_optimal"`
}

// View derives the display duration and the sub-optimal advisory flag.
func (r *Record) View() RecordView {
	view := RecordView{Record: *r}

	if r.CheckOut == nil {
		view.Duration = "Active"
		return view
	}

	in, inErr := timeutil.ParseLenient(r.CheckIn)
	out, outErr := timeutil.ParseLenient(*r.CheckOut)
	if inErr != nil || outErr != nil {
		view.Duration = "-"
		return view
	}

	hours := out.Sub(in).Hours()
	view.Duration = fmt.Sprintf("%.1f", hours)
	view.SubOptimal = hours < SubOptimalHours
	return view
}

// SortKey orders ledger rows: parsed check-in instant, with unparseable or
// missing values treated as the epoch so they sort last under descending
// order.
func (r *Record) SortKey() time.Time {
	t, err := timeutil.ParseLenient(r.CheckIn)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
