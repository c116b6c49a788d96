package postgres

import (
	"errors"

	"github.com/frahmantamala/attendance-management/internal/directory"
	"gorm.io/gorm"
)

// UserRepository implements the directory.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) directory.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*directory.User, error) {
	var u directory.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*directory.User, error) {
	var u directory.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListByDepartment(department string) ([]*directory.User, error) {
	var users []*directory.User
	err := r.db.Where("department = ?", department).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByTeamLead(teamLeadID string) ([]*directory.User, error) {
	var users []*directory.User
	err := r.db.Where("team_lead_id = ?", teamLeadID).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
