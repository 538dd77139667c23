package repo

import (
	"sync"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type InMemoryUserRepository struct {
	mu    sync.Mutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == u.Email {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	u.ID = len(r.users) + 1
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetAdmins() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admins []models.User
	for _, user := range r.users {
		if user.Role == models.RoleAdmin || user.Role == models.RoleManager {
			admins = append(admins, user)
		}
	}
	return admins, nil
}

func (r *InMemoryUserRepository) UpdatePasswordHash(id int, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, user := range r.users {
		if user.ID == id {
			user.PasswordHash = hash
			user.UpdatedAt = time.Now().UTC()
			r.users[idx] = user
			return nil
		}
	}
	return ErrUserNotFound
}
