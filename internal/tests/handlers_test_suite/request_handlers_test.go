package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/gudang-mitra/gudang-api/internal/http"
	handler "github.com/gudang-mitra/gudang-api/internal/http/handlers"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

func submitRequest(r http.Handler, p handler.CreateRequestPayload, token string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/requests", p, token)
}

func TestCreateRequestHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10, MinQuantity: 3})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Warehouse B refit",
		Priority:    models.PriorityHigh,
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 4}},
	}, userToken)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.Request
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Status != models.RequestPending {
		t.Errorf("expected pending, got %q", resp.Status)
	}
	if resp.RequesterID != regularUserID {
		t.Errorf("expected requester to default to the caller, got %d", resp.RequesterID)
	}
}

func TestCreateRequestHandler_DefaultPriority(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "No priority given",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp models.Request
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %q", resp.Priority)
	}
}

func TestCreateRequestHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	tests := []struct {
		name    string
		payload handler.CreateRequestPayload
	}{
		{"no project name", handler.CreateRequestPayload{Items: []handler.RequestItemPayload{{ItemID: 1, Quantity: 1}}}},
		{"no items", handler.CreateRequestPayload{ProjectName: "Empty"}},
		{"zero quantity line", handler.CreateRequestPayload{ProjectName: "Zero", Items: []handler.RequestItemPayload{{ItemID: 1, Quantity: 0}}}},
		{"unknown priority", handler.CreateRequestPayload{ProjectName: "Odd", Priority: "urgent", Items: []handler.RequestItemPayload{{ItemID: 1, Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitRequest(r, tt.payload, userToken)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestGetRequestsHandler_RoleScoping(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})

	// one request from the regular user, one submitted by the admin
	submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "User project",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)
	submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Admin project",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, adminToken)

	w := doJSON(r, http.MethodGet, "/api/requests", nil, userToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var mine []models.Request
	if err := json.NewDecoder(w.Body).Decode(&mine); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(mine) != 1 || mine[0].ProjectName != "User project" {
		t.Errorf("expected the user to see only their own request, got %+v", mine)
	}

	w = doJSON(r, http.MethodGet, "/api/requests", nil, adminToken)
	var all []models.Request
	if err := json.NewDecoder(w.Body).Decode(&all); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected the admin to see both requests, got %d", len(all))
	}
}

func TestGetRequestByIDHandler_OwnershipCheck(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Admin project",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, adminToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodGet, "/api/requests/"+created.ID, nil, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for someone else's request, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/requests/"+created.ID, nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for the owner, got %d", w.Code)
	}
}

func TestUpdateRequestStatusHandler_ApprovalDeductsStock(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10, MinQuantity: 3})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Warehouse B refit",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 4}},
	}, userToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodPatch, "/api/requests/"+created.ID+"/status",
		handler.UpdateRequestStatusPayload{Status: models.RequestApproved}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Request
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if updated.Status != models.RequestApproved {
		t.Errorf("expected approved, got %q", updated.Status)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/items/%d", item.Id), nil, "")
	var got handler.ItemResponse
	json.NewDecoder(w.Body).Decode(&got)
	if got.Quantity != 6 {
		t.Errorf("expected quantity 6 after approval, got %d", got.Quantity)
	}
	if got.Status != models.StatusInStock {
		t.Errorf("expected item to stay in-stock, got %q", got.Status)
	}
}

func TestUpdateRequestStatusHandler_DoubleApproveConflicts(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10, MinQuantity: 3})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Warehouse B refit",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 4}},
	}, userToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	path := "/api/requests/" + created.ID + "/status"
	payload := handler.UpdateRequestStatusPayload{Status: models.RequestApproved}

	if w := doJSON(r, http.MethodPatch, path, payload, adminToken); w.Code != http.StatusOK {
		t.Fatalf("first approval failed with %d", w.Code)
	}
	if w := doJSON(r, http.MethodPatch, path, payload, adminToken); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict on second approval, got %d", w.Code)
	}

	// no double deduction
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/items/%d", item.Id), nil, "")
	var got handler.ItemResponse
	json.NewDecoder(w.Body).Decode(&got)
	if got.Quantity != 6 {
		t.Errorf("expected quantity 6 after a single deduction, got %d", got.Quantity)
	}
}

func TestUpdateRequestStatusHandler_LegacySpellings(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Legacy client",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodPatch, "/api/requests/"+created.ID+"/status",
		handler.UpdateRequestStatusPayload{Status: "denied"}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var updated models.Request
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Status != models.RequestRejected {
		t.Errorf(`expected "denied" stored as rejected, got %q`, updated.Status)
	}
}

func TestUpdateRequestStatusHandler_InvalidStatus(t *testing.T) {
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPatch, "/api/requests/some-id/status",
		handler.UpdateRequestStatusPayload{Status: "cancelled"}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestUpdateRequestStatusHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPatch, "/api/requests/no-such-request/status",
		handler.UpdateRequestStatusPayload{Status: models.RequestApproved}, adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateRequestStatusHandler_Forbidden(t *testing.T) {
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPatch, "/api/requests/any-id/status",
		handler.UpdateRequestStatusPayload{Status: models.RequestApproved}, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden for plain users, got %d", w.Code)
	}
}
