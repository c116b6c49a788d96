package leave

import (
	"errors"

	"github.com/frahmantamala/attendance-management/pkg/timeutil"
)

type SubmitLeaveDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason"`
}

func (dto SubmitLeaveDTO) Validate() error {
	if dto.StartDate == "" {
		return errors.New("start_date is required")
	}
	if dto.EndDate == "" {
		return errors.New("end_date is required")
	}
	start, err := timeutil.ParseLenient(dto.StartDate)
	if err != nil {
		return errors.New("start_date is not a valid date")
	}
	end, err := timeutil.ParseLenient(dto.EndDate)
	if err != nil {
		return errors.New("end_date is not a valid date")
	}
	if end.Before(start) {
		return errors.New("end_date cannot be before start_date")
	}
	if !ValidLeaveType(dto.LeaveType) {
		return errors.New("leave_type must be one of VACATION, SICK, CASUAL, OTHER")
	}
	if dto.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
