package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements the attendance.Repository interface using GORM
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// Create saves a new session. A partial unique index on
// (user_id) WHERE check_out IS NULL backs the single-open-session
// invariant; violations map to the domain conflict error.
func (r *AttendanceRepository) Create(rec *attendance.Record) error {
	err := r.db.Create(rec).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrSessionAlreadyOpen
	}
	return err
}

func (r *AttendanceRepository) GetByID(id string) (*attendance.Record, error) {
	var rec attendance.Record
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) GetOpenByUserID(userID string) (*attendance.Record, error) {
	var rec attendance.Record
	err := r.db.Where("user_id = ? AND check_out IS NULL", userID).
		Order("check_in DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) ListAll() ([]*attendance.Record, error) {
	var records []*attendance.Record
	err := r.db.Order("check_in DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) ListByUserID(userID string) ([]*attendance.Record, error) {
	var records []*attendance.Record
	err := r.db.Where("user_id = ?", userID).
		Order("check_in DESC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) Update(rec *attendance.Record) error {
	rec.UpdatedAt = time.Now()
	return r.db.Save(rec).Error
}

func (r *AttendanceRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&attendance.Record{}).Error
}
