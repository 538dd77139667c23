package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

type UserRepository interface {
	GetByEmail(email string) (models.User, error)
	GetByID(id int) (models.User, error)
	CreateUser(u models.User) (models.User, error)
	// UpdatePasswordHash rewrites a user's stored credential; used to
	// migrate legacy plaintext passwords to bcrypt on successful login.
	UpdatePasswordHash(id int, hash string) error
	// GetAdmins returns every user with the admin or manager role,
	// the recipients of stock alerts.
	GetAdmins() ([]models.User, error)
}
