package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

// CreateRequestHandler godoc
// @Summary Submit a stock request
// @Description Creates a pending request with one or more item lines
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateRequestPayload true "Request to submit"
// @Success 201 {object} models.Request
// @Failure 400 {array} FieldValidationError
// @Router /api/requests [post]
func CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerIdentity(r)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var payload CreateRequestPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateCreateRequest(payload)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	if payload.Priority == "" {
		payload.Priority = models.PriorityMedium
	}
	requesterID := payload.RequesterID
	if requesterID == 0 {
		requesterID = userID
	}

	req := models.Request{
		ProjectName: payload.ProjectName,
		RequesterID: requesterID,
		Reason:      payload.Reason,
		Priority:    payload.Priority,
		DueDate:     payload.DueDate,
	}
	for _, line := range payload.Items {
		req.Items = append(req.Items, models.RequestItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	created, err := requestRepo.Create(req)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeFailure(w, http.StatusBadRequest, "request references an unknown item")
			return
		}
		log.Printf("failed to create request: %v", err)
		writeFailure(w, http.StatusInternalServerError, "could not create request")
		return
	}

	if _, err := notificationRepo.Create(models.Notification{
		UserID:  created.RequesterID,
		Type:    models.NotifRequestSubmitted,
		Message: fmt.Sprintf("Request %q submitted with %d item(s)", created.ProjectName, len(created.Items)),
	}); err != nil {
		log.Printf("failed to write notification for request %s: %v", created.ID, err)
	}

	if err := writeJSON(w, http.StatusCreated, created); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetRequestsHandler godoc
// @Summary List requests
// @Description Admins and managers see every request; users only their own
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Request
// @Failure 500 {string} string "Internal error"
// @Router /api/requests [get]
func GetRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, role, err := callerIdentity(r)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var requests []models.Request
	if role == models.RoleAdmin || role == models.RoleManager {
		requests, err = requestRepo.GetAll()
	} else {
		requests, err = requestRepo.GetByRequester(userID)
	}
	if err != nil {
		log.Printf("failed to fetch requests: %v", err)
		http.Error(w, "could not fetch requests", http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}

	if err := writeJSON(w, http.StatusOK, requests); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetRequestByIDHandler godoc
// @Summary Get request by ID
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} models.Request
// @Failure 403 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/requests/{id} [get]
func GetRequestByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID, role, err := callerIdentity(r)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "invalid token")
		return
	}

	id := chi.URLParam(r, "id")
	req, err := requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrRequestNotFound) {
			writeFailure(w, http.StatusNotFound, "request not found")
			return
		}
		log.Printf("failed to fetch request %s: %v", id, err)
		writeFailure(w, http.StatusInternalServerError, "could not fetch request")
		return
	}

	if role != models.RoleAdmin && role != models.RoleManager && req.RequesterID != userID {
		writeFailure(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := writeJSON(w, http.StatusOK, req); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateRequestStatusHandler godoc
// @Summary Transition a request's status
// @Description Approving a pending request atomically deducts the requested quantities from its items
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param status body UpdateRequestStatusPayload true "New status"
// @Success 200 {object} models.Request
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/requests/{id}/status [patch]
func UpdateRequestStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload UpdateRequestStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid input")
		return
	}

	status, ok := models.NormalizeRequestStatus(payload.Status)
	if !ok {
		writeFailure(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated, err := requestRepo.UpdateStatus(id, status)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrRequestNotFound):
			writeFailure(w, http.StatusNotFound, "request not found")
		case errors.Is(err, repo.ErrAlreadyApproved):
			writeFailure(w, http.StatusConflict, "request already approved")
		case errors.Is(err, repo.ErrRequestNotPending):
			writeFailure(w, http.StatusConflict, "request is not pending")
		case errors.Is(err, repo.ErrItemNotFound):
			writeFailure(w, http.StatusConflict, "request references an unknown item")
		default:
			log.Printf("failed to update status of request %s: %v", id, err)
			writeFailure(w, http.StatusInternalServerError, "could not update request status")
		}
		return
	}

	notifyRequestStatus(updated)

	if updated.Status == models.RequestApproved {
		for _, line := range updated.Items {
			if item, err := itemRepo.GetByID(line.ItemID); err == nil {
				notifyLowStock(item)
			}
		}
	}

	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// notifyRequestStatus records the lifecycle notification after a
// successful commit; failures only log.
func notifyRequestStatus(req models.Request) {
	var notifType string
	switch req.Status {
	case models.RequestApproved:
		notifType = models.NotifRequestApproved
	case models.RequestRejected:
		notifType = models.NotifRequestRejected
	case models.RequestCompleted:
		notifType = models.NotifRequestCompleted
	default:
		return
	}

	if _, err := notificationRepo.Create(models.Notification{
		UserID:  req.RequesterID,
		Type:    notifType,
		Message: fmt.Sprintf("Request %q is now %s", req.ProjectName, req.Status),
	}); err != nil {
		log.Printf("failed to write notification for request %s: %v", req.ID, err)
	}
}
