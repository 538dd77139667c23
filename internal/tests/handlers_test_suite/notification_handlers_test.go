package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	api "github.com/gudang-mitra/gudang-api/internal/http"
	handler "github.com/gudang-mitra/gudang-api/internal/http/handlers"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

func TestNotifications_RequestLifecycle(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Warehouse B refit",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 2}},
	}, userToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var notifications []models.Notification
	if err := json.NewDecoder(w.Body).Decode(&notifications); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotifRequestSubmitted {
		t.Fatalf("expected one submitted notification, got %+v", notifications)
	}

	// approval adds a second one
	doJSON(r, http.MethodPatch, "/api/requests/"+created.ID+"/status",
		handler.UpdateRequestStatusPayload{Status: models.RequestApproved}, adminToken)

	w = doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 2 {
		t.Fatalf("expected two notifications after approval, got %d", len(notifications))
	}
	if notifications[0].Type != models.NotifRequestApproved {
		t.Errorf("expected the newest notification to be the approval, got %q", notifications[0].Type)
	}
}

func TestNotifications_UnreadCountAndMarkRead(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})
	submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Project A",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)
	submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Project B",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)

	w := doJSON(r, http.MethodGet, "/api/notifications/unread-count", nil, userToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var count map[string]int
	json.NewDecoder(w.Body).Decode(&count)
	if count["count"] != 2 {
		t.Fatalf("expected 2 unread, got %d", count["count"])
	}

	var notifications []models.Notification
	w = doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", notifications[0].ID), nil, userToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/notifications/unread-count", nil, userToken)
	json.NewDecoder(w.Body).Decode(&count)
	if count["count"] != 1 {
		t.Errorf("expected 1 unread after marking one read, got %d", count["count"])
	}

	w = doJSON(r, http.MethodPatch, "/api/notifications/read-all", nil, userToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/notifications/unread-count", nil, userToken)
	json.NewDecoder(w.Body).Decode(&count)
	if count["count"] != 0 {
		t.Errorf("expected 0 unread after read-all, got %d", count["count"])
	}
}

func TestNotifications_ScopedToOwner(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Cement Bag", Category: "cleaning-materials", Quantity: 10})
	submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "User project",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 1}},
	}, userToken)

	var notifications []models.Notification
	w := doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 1 {
		t.Fatalf("expected one notification for the requester, got %d", len(notifications))
	}

	// another user cannot mark it read
	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/notifications/%d/read", notifications[0].ID), nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when touching someone else's notification, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/notifications", nil, adminToken)
	var adminNotifications []models.Notification
	json.NewDecoder(w.Body).Decode(&adminNotifications)
	if len(adminNotifications) != 0 {
		t.Errorf("expected the admin to have no notifications, got %+v", adminNotifications)
	}
}

func TestNotifications_LowStockAlertOnAdjustment(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Safety Helmet", Category: "safety-equipment", Quantity: 10, MinQuantity: 3})

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/items/%d/adjust", item.Id),
		handler.QuantityAdjustmentRequest{Delta: -8}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var notifications []models.Notification
	w = doJSON(r, http.MethodGet, "/api/notifications", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) == 0 {
		t.Fatal("expected a stock alert for the admin")
	}
	if notifications[0].Type != models.NotifLowStock {
		t.Errorf("expected a low_stock notification, got %q", notifications[0].Type)
	}
	if notifications[0].RelatedItemID == nil || *notifications[0].RelatedItemID != item.Id {
		t.Errorf("expected the alert to reference item %d, got %+v", item.Id, notifications[0].RelatedItemID)
	}

	// plain users are not alerted
	w = doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 0 {
		t.Errorf("expected no stock alerts for a plain user, got %+v", notifications)
	}
}

func TestNotifications_LowStockAlertOnApproval(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllRequests)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Paint Bucket", Category: "materials", Quantity: 5, MinQuantity: 3})

	w := submitRequest(r, handler.CreateRequestPayload{
		ProjectName: "Repaint hall",
		Items:       []handler.RequestItemPayload{{ItemID: item.Id, Quantity: 4}},
	}, userToken)
	var created models.Request
	json.NewDecoder(w.Body).Decode(&created)

	doJSON(r, http.MethodPatch, "/api/requests/"+created.ID+"/status",
		handler.UpdateRequestStatusPayload{Status: models.RequestApproved}, adminToken)

	var notifications []models.Notification
	w = doJSON(r, http.MethodGet, "/api/notifications", nil, adminToken)
	json.NewDecoder(w.Body).Decode(&notifications)

	found := false
	for _, n := range notifications {
		if n.Type == models.NotifLowStock {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a low_stock alert after the approval drained the item, got %+v", notifications)
	}
}

func TestNotifications_OverdueLoanSweep(t *testing.T) {
	t.Cleanup(clearAllItems)
	t.Cleanup(clearAllLoans)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "Ladder", Category: "tools", Quantity: 5})
	loan, err := loanRepo.Borrow(regularUserID, item.Id, 1, time.Now().UTC().Add(-48*time.Hour), "")
	if err != nil {
		t.Fatalf("could not create loan: %v", err)
	}

	handler.SweepOverdueLoans()

	var notifications []models.Notification
	w := doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 1 || notifications[0].Type != models.NotifLoanDue {
		t.Fatalf("expected one loan_due notification for the borrower, got %+v", notifications)
	}
	if notifications[0].RelatedItemID == nil || *notifications[0].RelatedItemID != item.Id {
		t.Errorf("expected the reminder to reference item %d, got %+v", item.Id, notifications[0].RelatedItemID)
	}

	// a second sweep does not repeat the reminder
	handler.SweepOverdueLoans()
	w = doJSON(r, http.MethodGet, "/api/notifications", nil, userToken)
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 1 {
		t.Fatalf("expected the reminder for loan %s exactly once, got %d", loan.ID, len(notifications))
	}
}
