package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

// GetMovementsHandler godoc
// @Summary Get item stock movements
// @Tags movements
// @Security BearerAuth
// @Produce json
// @Param id path int true "Item ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Item not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/items/{id}/movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	if _, err := itemRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to look up item %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	since, until, ok := parseTimeRange(w, r)
	if !ok {
		return
	}

	var limit, offset *int
	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = &v
	}
	offsetStr := r.URL.Query().Get("offset")
	if offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil || v < 0 {
			http.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		offset = &v
	}

	movements, total, err := movementRepo.GetByItemID(id, repo.MovementFilter{Since: since, Until: until, Limit: limit, Offset: offset})
	if err != nil {
		log.Printf("could not retrieve movements for item %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	response := MovementsSearchResult{
		Data: make([]MovementResponse, len(movements)),
		Meta: Meta{TotalCount: total},
	}
	for i, m := range movements {
		response.Data[i] = MovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		}
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// parseTimeRange reads since/until query params, undoing the + for space
// substitution URL query decoding applies to RFC3339 offsets.
func parseTimeRange(w http.ResponseWriter, r *http.Request) (since, until *time.Time, ok bool) {
	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	if sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return nil, nil, false
		}
		since = &ts
	}
	if untilStr != "" {
		ts, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return nil, nil, false
		}
		until = &ts
	}
	return since, until, true
}

// ExportMovementsHandler godoc
// @Summary Export item stock movements
// @Tags movements
// @Security BearerAuth
// @Produce text/csv, application/json
// @Param id path int true "Item ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /api/items/{id}/movements/export [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	since, until, ok := parseTimeRange(w, r)
	if !ok {
		return
	}

	movements, _, err := movementRepo.GetByItemID(id, repo.MovementFilter{Since: since, Until: until})
	if err != nil {
		log.Printf("could not retrieve movements for item %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		json.NewEncoder(w).Encode(movements)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "item_id", "delta", "reason", "created_at"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ItemID),
				strconv.Itoa(m.Delta),
				m.Reason,
				m.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
