package attendance

import (
	"errors"

	"github.com/frahmantamala/attendance-management/pkg/timeutil"
)

// CheckInDTO is the optional request payload for a check-in.
type CheckInDTO struct {
	Location string `json:"location,omitempty"`
}

// ManualEditDTO is the admin overwrite payload. Nil fields are left
// untouched; set fields are re-normalized before persisting.
type ManualEditDTO struct {
	Date     *string `json:"date,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   *string `json:"status,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (dto ManualEditDTO) Validate() error {
	if dto.Date == nil && dto.CheckIn == nil && dto.CheckOut == nil && dto.Status == nil && dto.Location == nil {
		return errors.New("at least one field must be provided")
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return errors.New("invalid status value")
	}
	if dto.Date != nil {
		if _, err := timeutil.ParseLenient(*dto.Date); err != nil {
			return errors.New("invalid date value")
		}
	}
	if dto.CheckIn != nil {
		if _, err := timeutil.ParseLenient(*dto.CheckIn); err != nil {
			return errors.New("invalid check_in value")
		}
	}
	if dto.CheckOut != nil && *dto.CheckOut != "" {
		if _, err := timeutil.ParseLenient(*dto.CheckOut); err != nil {
			return errors.New("invalid check_out value")
		}
	}
	return nil
}
