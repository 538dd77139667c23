package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

// CreateItemHandler godoc
// @Summary Create a new item
// @Description Adds an item to the warehouse catalog
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body ItemRequest true "Item to add"
// @Success 201 {object} ItemResponse
// @Failure 400 {array} FieldValidationError
// @Router /api/items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateItem(req)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item := models.Item{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := itemRepo.Create(item)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeFailure(w, http.StatusConflict, "item name already exists")
			return
		}
		log.Printf("failed to create item: %v", err)
		writeFailure(w, http.StatusInternalServerError, "could not create item")
		return
	}

	if err := writeJSON(w, http.StatusCreated, toItemResponse(created)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetItemsHandler godoc
// @Summary List items
// @Description Lists catalog items with optional name/category/price/quantity filters
// @Tags items
// @Produce json
// @Param name query string false "Name substring"
// @Param category query string false "Category slug"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_qty query int false "Minimum quantity"
// @Param max_qty query int false "Maximum quantity"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ItemsSearchResult
// @Failure 500 {string} string "Internal error"
// @Router /api/items [get]
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.ItemFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
		MinPrice: parseFloatPtr(q.Get("min_price")),
		MaxPrice: parseFloatPtr(q.Get("max_price")),
		MinQty:   parseIntPtr(q.Get("min_qty")),
		MaxQty:   parseIntPtr(q.Get("max_qty")),
		Offset:   parseIntPtr(q.Get("offset")),
		Limit:    parseIntPtr(q.Get("limit")),
	}

	items, total, err := itemRepo.Filter(filter)
	if err != nil {
		log.Printf("failed to fetch items: %v", err)
		http.Error(w, "could not fetch items", http.StatusInternalServerError)
		return
	}

	response := ItemsSearchResult{
		Data: make([]ItemResponse, len(items)),
		Meta: Meta{TotalCount: total},
	}
	for i, item := range items {
		response.Data[i] = toItemResponse(item)
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetItemByIDHandler godoc
// @Summary Get item by ID
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/items/{id} [get]
func GetItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := itemRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to fetch item %d: %v", id, err)
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, toItemResponse(item)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateItemHandler godoc
// @Summary Update an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param item body ItemRequest true "Updated item"
// @Success 200 {object} ItemResponse
// @Failure 400 {array} FieldValidationError
// @Failure 404 {object} FailureResponse
// @Router /api/items/{id} [put]
func UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req ItemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateItem(req)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	item := models.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Price:       req.Price,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	updated, err := itemRepo.Update(item)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeFailure(w, http.StatusNotFound, "item not found")
			return
		}
		log.Printf("failed to update item %d: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not update item")
		return
	}

	if err := writeJSON(w, http.StatusOK, toItemResponse(updated)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// DeleteItemHandler godoc
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/items/{id} [delete]
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	if err := itemRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeFailure(w, http.StatusNotFound, "item not found")
			return
		}
		log.Printf("failed to delete item %d: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustQuantityHandler godoc
// @Summary Adjust quantity of an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity change"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/items/{id}/adjust [post]
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	item, err := itemRepo.AdjustQuantity(id, req.Delta)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidQuantityChange) {
			writeFailure(w, http.StatusConflict, "quantity cannot become negative")
			return
		}
		log.Printf("failed to adjust item %d: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not update quantity")
		return
	}
	_ = movementRepo.Log(id, req.Delta, models.MovementAdjustment)

	if item.Status() != models.StatusInStock {
		log.Printf("ALERT: item %d (%s) is %s: qty=%d, min=%d",
			item.ID, item.Name, item.Status(), item.Quantity, item.MinQuantity)
		notifyLowStock(item)
	}

	if err := writeJSON(w, http.StatusOK, toItemResponse(item)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
