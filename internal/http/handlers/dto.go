package handlers

import "github.com/gudang-mitra/gudang-api/internal/models"

type ItemRequest struct {
	Id          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
}

type ItemResponse struct {
	Id               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Category         string  `json:"category"`
	CategoryDisplay  string  `json:"category_display"`
	Quantity         int     `json:"quantity"`
	MinQuantity      int     `json:"min_quantity"`
	BorrowedQuantity int     `json:"borrowed_quantity"`
	Available        int     `json:"available"`
	Price            float64 `json:"price"`
	Status           string  `json:"status"`
}

func toItemResponse(i models.Item) ItemResponse {
	return ItemResponse{
		Id:               i.ID,
		Name:             i.Name,
		Description:      i.Description,
		Category:         i.Category,
		CategoryDisplay:  models.CategoryDisplayName(i.Category),
		Quantity:         i.Quantity,
		MinQuantity:      i.MinQuantity,
		BorrowedQuantity: i.BorrowedQuantity,
		Available:        i.Available(),
		Price:            i.Price,
		Status:           i.Status(),
	}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ItemsSearchResult struct {
	Data []ItemResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type CategoryRequest struct {
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	Id          int    `json:"id"`
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

type RequestItemPayload struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

type CreateRequestPayload struct {
	ProjectName string               `json:"project_name"`
	RequesterID int                  `json:"requester_id,omitempty"`
	Reason      string               `json:"reason,omitempty"`
	Priority    string               `json:"priority"`
	DueDate     string               `json:"due_date,omitempty"`
	Items       []RequestItemPayload `json:"items"`
}

type UpdateRequestStatusPayload struct {
	Status string `json:"status"`
}

type BorrowPayload struct {
	UserID   int    `json:"userId,omitempty"`
	ItemID   int    `json:"itemId"`
	Quantity int    `json:"quantity"`
	DueDate  string `json:"dueDate"`
	Notes    string `json:"notes,omitempty"`
}

type ReturnPayload struct {
	LoanID string `json:"loanId"`
	Notes  string `json:"notes,omitempty"`
}

type LoanResponse struct {
	Id           string `json:"id"`
	UserID       int    `json:"user_id"`
	ItemID       int    `json:"item_id"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
	BorrowedDate string `json:"borrowed_date"`
	DueDate      string `json:"due_date"`
	ReturnedDate string `json:"returned_date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ItemID    int    `json:"item_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Success      bool         `json:"success"`
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserAsAdminPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

type ImportItemsResult struct {
	ImportedItemsCount int                    `json:"imported"`
	Errors             []FieldValidationError `json:"errors"`
}

// FailureResponse is the structured error payload every mutating endpoint
// returns on failure.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
