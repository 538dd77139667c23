package repo

import (
	"sync"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type InMemoryNotificationRepository struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        int
}

func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{
		notifications: []models.Notification{},
		nextID:        1,
	}
}

func (r *InMemoryNotificationRepository) Create(n models.Notification) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now().UTC()
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *InMemoryNotificationRepository) GetByUser(userID int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			out = append(out, r.notifications[i])
		}
	}
	return out, nil
}

func (r *InMemoryNotificationRepository) UnreadCount(userID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryNotificationRepository) MarkRead(id, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			r.notifications[idx].IsRead = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *InMemoryNotificationRepository) MarkAllRead(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, n := range r.notifications {
		if n.UserID == userID {
			r.notifications[idx].IsRead = true
		}
	}
	return nil
}

func (r *InMemoryNotificationRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = []models.Notification{}
	r.nextID = 1
}
