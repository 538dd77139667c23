package handlers

import (
	"strings"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type FieldValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateItem(i ItemRequest) []FieldValidationError {
	errs := []FieldValidationError{}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, FieldValidationError{Field: "Name", Description: "Name is required"})
	}
	if i.Price < 0 {
		errs = append(errs, FieldValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if i.Quantity < 0 {
		errs = append(errs, FieldValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if i.MinQuantity < 0 {
		errs = append(errs, FieldValidationError{Field: "MinQuantity", Description: "MinQuantity cannot be negative"})
	}
	return errs
}

func validateCreateRequest(p CreateRequestPayload) []FieldValidationError {
	errs := []FieldValidationError{}
	if strings.TrimSpace(p.ProjectName) == "" {
		errs = append(errs, FieldValidationError{Field: "ProjectName", Description: "Project name is required"})
	}
	if p.Priority != "" && !models.ValidPriority(p.Priority) {
		errs = append(errs, FieldValidationError{Field: "Priority", Description: "Priority must be low, medium or high"})
	}
	if len(p.Items) == 0 {
		errs = append(errs, FieldValidationError{Field: "Items", Description: "At least one item is required"})
	}
	for _, line := range p.Items {
		if line.Quantity <= 0 {
			errs = append(errs, FieldValidationError{Field: "Items", Description: "Item quantities must be greater than zero"})
			break
		}
	}
	return errs
}

// validateBorrow checks the borrow payload and parses its due date, which
// must land 1 to 30 days out.
func validateBorrow(p BorrowPayload, now time.Time) ([]FieldValidationError, time.Time) {
	errs := []FieldValidationError{}
	if p.ItemID <= 0 {
		errs = append(errs, FieldValidationError{Field: "ItemId", Description: "Item is required"})
	}
	if p.Quantity <= 0 {
		errs = append(errs, FieldValidationError{Field: "Quantity", Description: "Quantity must be greater than zero"})
	}

	var dueDate time.Time
	if p.DueDate == "" {
		errs = append(errs, FieldValidationError{Field: "DueDate", Description: "Due date is required"})
	} else {
		var err error
		dueDate, err = time.Parse(time.RFC3339, p.DueDate)
		if err != nil {
			// date-only form accepted as midnight UTC
			dueDate, err = time.Parse("2006-01-02", p.DueDate)
		}
		if err != nil {
			errs = append(errs, FieldValidationError{Field: "DueDate", Description: "Due date must be RFC3339 or YYYY-MM-DD"})
		} else if dueDate.Before(now.Add(24*time.Hour)) || dueDate.After(now.Add(30*24*time.Hour)) {
			errs = append(errs, FieldValidationError{Field: "DueDate", Description: "Due date must be between 1 and 30 days from now"})
		}
	}
	return errs, dueDate
}
