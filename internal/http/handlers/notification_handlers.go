package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

// notifyLowStock alerts every admin and manager when an item has dropped
// to low or out of stock. Failures only log.
func notifyLowStock(item models.Item) {
	if item.Status() == models.StatusInStock {
		return
	}
	admins, err := userRepo.GetAdmins()
	if err != nil {
		log.Printf("failed to list stock alert recipients: %v", err)
		return
	}
	itemID := item.ID
	for _, admin := range admins {
		if _, err := notificationRepo.Create(models.Notification{
			UserID:        admin.ID,
			Type:          models.NotifLowStock,
			Message:       fmt.Sprintf("Item %q is %s (quantity %d, minimum %d)", item.Name, item.Status(), item.Quantity, item.MinQuantity),
			RelatedItemID: &itemID,
		}); err != nil {
			log.Printf("failed to write low stock notification for item %d: %v", item.ID, err)
		}
	}
}

// GetNotificationsHandler godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Notification
// @Failure 500 {string} string "Internal error"
// @Router /api/notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := notificationRepo.GetByUser(userID)
	if err != nil {
		log.Printf("could not retrieve notifications for user %d: %v", userID, err)
		http.Error(w, "could not retrieve notifications", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, notifications); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetUnreadCountHandler godoc
// @Summary Count the caller's unread notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {string} string "Internal error"
// @Router /api/notifications/unread-count [get]
func GetUnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := notificationRepo.UnreadCount(userID)
	if err != nil {
		log.Printf("could not count unread notifications for user %d: %v", userID, err)
		http.Error(w, "could not retrieve unread count", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]int{"count": count}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// MarkNotificationReadHandler godoc
// @Summary Mark one of the caller's notifications as read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "No content"
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Notification not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/notifications/{id}/read [patch]
func MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid notification ID", http.StatusBadRequest)
		return
	}

	// Scoping by user means a caller cannot mark another user's
	// notification read; it looks identical to a missing one.
	if err := notificationRepo.MarkRead(id, userID); err != nil {
		if errors.Is(err, repo.ErrNotificationNotFound) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}
		log.Printf("could not mark notification %d read: %v", id, err)
		http.Error(w, "could not update notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsReadHandler godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Security BearerAuth
// @Success 204 "No content"
// @Failure 500 {string} string "Internal error"
// @Router /api/notifications/read-all [patch]
func MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := notificationRepo.MarkAllRead(userID); err != nil {
		log.Printf("could not mark notifications read for user %d: %v", userID, err)
		http.Error(w, "could not update notifications", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
