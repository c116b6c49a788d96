package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements the leave.Repository interface using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(req *leave.Request) error {
	return r.db.Create(req).Error
}

func (r *LeaveRepository) GetByID(id string) (*leave.Request, error) {
	var req leave.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLeaveNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRepository) ListAll() ([]*leave.Request, error) {
	var requests []*leave.Request
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) ListByUserID(userID string) ([]*leave.Request, error) {
	var requests []*leave.Request
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) ListByUserIDs(userIDs []string) ([]*leave.Request, error) {
	if len(userIDs) == 0 {
		return []*leave.Request{}, nil
	}
	var requests []*leave.Request
	err := r.db.Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) Update(req *leave.Request) error {
	req.UpdatedAt = time.Now()
	return r.db.Save(req).Error
}

func (r *LeaveRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&leave.Request{}).Error
}
