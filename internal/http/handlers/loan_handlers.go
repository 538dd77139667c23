package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

func toLoanResponse(l models.Loan, now time.Time) LoanResponse {
	resp := LoanResponse{
		Id:           l.ID,
		UserID:       l.UserID,
		ItemID:       l.ItemID,
		Quantity:     l.Quantity,
		Status:       l.DisplayStatus(now),
		BorrowedDate: l.BorrowedDate.Format(time.RFC3339),
		DueDate:      l.DueDate.Format(time.RFC3339),
		Notes:        l.Notes,
	}
	if l.ReturnedDate != nil {
		resp.ReturnedDate = l.ReturnedDate.Format(time.RFC3339)
	}
	return resp
}

// BorrowHandler godoc
// @Summary Borrow item units
// @Description Creates an active loan if enough unborrowed stock remains
// @Tags loans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param loan body BorrowPayload true "Loan to open"
// @Success 201 {object} LoanResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/loans/borrow [post]
func BorrowHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var payload BorrowPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors, dueDate := validateBorrow(payload, time.Now().UTC())
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	borrower := payload.UserID
	if borrower == 0 {
		borrower = userID
	}

	loan, err := loanRepo.Borrow(borrower, payload.ItemID, payload.Quantity, dueDate, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrItemNotFound):
			writeFailure(w, http.StatusNotFound, "item not found")
		case errors.Is(err, repo.ErrInsufficientStock):
			writeFailure(w, http.StatusConflict, "insufficient stock available")
		default:
			log.Printf("failed to borrow item %d: %v", payload.ItemID, err)
			writeFailure(w, http.StatusInternalServerError, "could not create loan")
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, toLoanResponse(loan, time.Now().UTC())); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// ReturnLoanHandler godoc
// @Summary Return a loan
// @Tags loans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param loan body ReturnPayload true "Loan to close"
// @Success 200 {object} LoanResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/loans/return [post]
func ReturnLoanHandler(w http.ResponseWriter, r *http.Request) {
	var payload ReturnPayload
	if err := readJSON(w, r, &payload); err != nil || payload.LoanID == "" {
		writeFailure(w, http.StatusBadRequest, "loanId is required")
		return
	}

	loan, err := loanRepo.Return(payload.LoanID, payload.Notes)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrLoanNotFound):
			writeFailure(w, http.StatusNotFound, "loan not found")
		case errors.Is(err, repo.ErrLoanAlreadyReturned):
			writeFailure(w, http.StatusConflict, "loan already returned")
		default:
			log.Printf("failed to return loan %s: %v", payload.LoanID, err)
			writeFailure(w, http.StatusInternalServerError, "could not return loan")
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, toLoanResponse(loan, time.Now().UTC())); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetLoansHandler godoc
// @Summary List loans
// @Description Filter by user_id, item_id and status (active, returned, overdue)
// @Tags loans
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Borrower"
// @Param item_id query int false "Item"
// @Param status query string false "Status filter"
// @Success 200 {array} LoanResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/loans [get]
func GetLoansHandler(w http.ResponseWriter, r *http.Request) {
	userID, role, err := callerIdentity(r)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return
	}

	q := r.URL.Query()
	filter := repo.LoanFilter{
		UserID: parseIntPtr(q.Get("user_id")),
		ItemID: parseIntPtr(q.Get("item_id")),
		Status: q.Get("status"),
	}
	// plain users only ever see their own loans
	if role != models.RoleAdmin && role != models.RoleManager {
		filter.UserID = &userID
	}

	loans, err := loanRepo.Filter(filter)
	if err != nil {
		log.Printf("failed to fetch loans: %v", err)
		http.Error(w, "could not fetch loans", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	response := make([]LoanResponse, len(loans))
	for i, l := range loans {
		response[i] = toLoanResponse(l, now)
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
