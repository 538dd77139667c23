package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

// RequestRepository owns request headers and their item lines.
//
// UpdateStatus is the approval workflow: moving a pending request to
// approved deducts the requested quantities from the referenced items in
// the same atomic unit that flips the status. The deduction fires only on
// the pending→approved transition, so a request can never be deducted
// twice. Any failure leaves both the request and every item untouched.
type RequestRepository interface {
	Create(req models.Request) (models.Request, error)
	GetAll() ([]models.Request, error)
	GetByRequester(userID int) ([]models.Request, error)
	GetByID(id string) (models.Request, error)
	UpdateStatus(id, newStatus string) (models.Request, error)
}
