package postgres

import (
	"github.com/frahmantamala/attendance-management/internal/notification"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification.Repository interface using GORM
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(recipientID string) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("timestamp DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) MarkRead(recipientID string, ids []string) error {
	return r.db.Model(&notification.Notification{}).
		Where("recipient_id = ? AND id IN ?", recipientID, ids).
		Update("is_read", true).Error
}
