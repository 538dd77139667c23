package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

type NotificationRepository interface {
	Create(n models.Notification) (models.Notification, error)
	GetByUser(userID int) ([]models.Notification, error)
	UnreadCount(userID int) (int, error)
	MarkRead(id, userID int) error
	MarkAllRead(userID int) error
}
