package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

func toCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		Id:          c.ID,
		Slug:        c.Slug,
		DisplayName: models.CategoryDisplayName(c.Slug),
		Description: c.Description,
	}
}

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll()
	if err != nil {
		log.Printf("failed to fetch categories: %v", err)
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toCategoryResponse(c)
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category to add"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/categories [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Slug == "" {
		writeFailure(w, http.StatusBadRequest, "slug is required")
		return
	}

	created, err := categoryRepo.Create(models.Category{
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeFailure(w, http.StatusConflict, "category already exists")
			return
		}
		log.Printf("failed to create category: %v", err)
		writeFailure(w, http.StatusInternalServerError, "could not create category")
		return
	}

	if err := writeJSON(w, http.StatusCreated, toCategoryResponse(created)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateCategoryHandler godoc
// @Summary Update a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CategoryRequest true "Updated category"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/categories/{id} [put]
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Slug == "" {
		writeFailure(w, http.StatusBadRequest, "slug is required")
		return
	}

	updated, err := categoryRepo.Update(models.Category{
		ID:          id,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			writeFailure(w, http.StatusNotFound, "category not found")
			return
		}
		log.Printf("failed to update category %d: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not update category")
		return
	}

	if err := writeJSON(w, http.StatusOK, toCategoryResponse(updated)); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// DeleteCategoryHandler godoc
// @Summary Delete a category
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/categories/{id} [delete]
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := categoryRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			writeFailure(w, http.StatusNotFound, "category not found")
			return
		}
		log.Printf("failed to delete category %d: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
