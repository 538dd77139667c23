package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	api "github.com/gudang-mitra/gudang-api/internal/http"
	handler "github.com/gudang-mitra/gudang-api/internal/http/handlers"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

func TestCreateItemHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{
		Name:        "Floor Cleaner",
		Category:    "cleaning-materials",
		Quantity:    10,
		MinQuantity: 3,
		Price:       4.5,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Floor Cleaner" {
		t.Errorf("expected name 'Floor Cleaner', got %v", resp.Name)
	}
	if resp.Status != models.StatusInStock {
		t.Errorf("expected derived status in-stock, got %q", resp.Status)
	}
	if resp.CategoryDisplay != "Cleaning Materials" {
		t.Errorf("expected display name 'Cleaning Materials', got %q", resp.CategoryDisplay)
	}
	if resp.Available != 10 {
		t.Errorf("expected 10 available, got %d", resp.Available)
	}
}

func TestCreateItemHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ItemRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name",
			payload:        handler.ItemRequest{Name: "", Category: "misc", Price: 1},
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Negative price",
			payload:        handler.ItemRequest{Name: "Mop", Category: "misc", Price: -5},
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative quantity",
			payload:        handler.ItemRequest{Name: "Mop", Category: "misc", Quantity: -1},
			expectedErrors: []string{"Quantity"},
		},
		{
			name:           "Negative min quantity",
			payload:        handler.ItemRequest{Name: "Mop", Category: "misc", MinQuantity: -1},
			expectedErrors: []string{"MinQuantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createItem(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.FieldValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateItemHandler_Forbidden(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/items", handler.ItemRequest{
		Name: "Not Allowed", Category: "misc", Quantity: 1,
	}, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestGetItemByIDHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Broom", Category: "cleaning-materials", Quantity: 5, MinQuantity: 2})

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/items/%d", item.Id), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Id != item.Id || resp.Name != "Broom" {
		t.Errorf("unexpected item: %+v", resp)
	}

	w = doJSON(r, http.MethodGet, "/api/items/999999", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestGetItemsHandler_Filters(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	mustCreateItem(r, handler.ItemRequest{Name: "Broom", Category: "cleaning-materials", Quantity: 10, Price: 5})
	mustCreateItem(r, handler.ItemRequest{Name: "Stapler", Category: "office-supplies", Quantity: 3, Price: 2})

	w := doJSON(r, http.MethodGet, "/api/items?category=office-supplies", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ItemsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected one office-supplies item, got %+v", resp)
	}
	if resp.Data[0].Name != "Stapler" {
		t.Errorf("expected Stapler, got %q", resp.Data[0].Name)
	}
}

func TestUpdateItemHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Broom", Category: "cleaning-materials", Quantity: 5, MinQuantity: 2})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/items/%d", item.Id), handler.ItemRequest{
		Name:        "Push Broom",
		Category:    "cleaning-materials",
		Quantity:    8,
		MinQuantity: 2,
		Price:       6,
	}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Push Broom" || resp.Quantity != 8 {
		t.Errorf("unexpected item after update: %+v", resp)
	}
}

func TestDeleteItemHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Broom", Category: "cleaning-materials", Quantity: 5})

	// delete is admin-only
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/items/%d", item.Id), nil, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/items/%d", item.Id), nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/items/%d", item.Id), nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestAdjustQuantityHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Gloves", Category: "safety-equipment", Quantity: 10, MinQuantity: 3})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/items/%d/adjust", item.Id), handler.QuantityAdjustmentRequest{Delta: -8}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", resp.Quantity)
	}
	if resp.Status != models.StatusLowStock {
		t.Errorf("expected low-stock after adjustment, got %q", resp.Status)
	}

	// going below zero is rejected
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/items/%d/adjust", item.Id), handler.QuantityAdjustmentRequest{Delta: -5}, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}
