// filepath: internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
)

// @Summary Client dashboard
// @Description Retrieves the authenticated user's active loans and the list of media they could borrow right now.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.ClientDashboard
// @Failure 401 {object} ErrorResponse
// @Router /dashboard/client [get]
// @Security BearerAuth
func (h *Handlers) GetClientDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Borrow.ClientDashboard(user)
	if err != nil {
		respondWithServiceError(w, err, "Failed to build dashboard.")
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// @Summary Staff dashboard
// @Description Retrieves all current loans, the overdue subset, and a page of the catalog.
// @Tags Dashboard
// @Produce json
// @Param page query int false "Catalog page number (default 1)"
// @Success 200 {object} models.StaffDashboard
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/staff [get]
// @Security BearerAuth
func (h *Handlers) GetStaffDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Borrow.StaffDashboard(user, parsePageParam(r))
	if err != nil {
		respondWithServiceError(w, err, "Failed to build dashboard.")
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}
