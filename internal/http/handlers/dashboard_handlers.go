package handlers

import (
	"log"
	"net/http"
)

// GetDashboardStatsHandler godoc
// @Summary Get dashboard aggregates
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} repo.Stats
// @Failure 500 {string} string "Internal error"
// @Router /api/dashboard/stats [get]
func GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := statsRepo.GetDashboardStats()
	if err != nil {
		log.Printf("could not compute dashboard stats: %v", err)
		http.Error(w, "could not retrieve stats", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, stats); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
