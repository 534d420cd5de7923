// filepath: internal/api/handlers/catalog_handler.go
package handlers

import (
	"net/http"
	"strconv"
)

// @Summary Client catalog
// @Description Retrieves the client-facing catalog, synced from the staff catalog by the import-catalog command.
// @Tags Catalog
// @Produce json
// @Param borrowable query bool false "Only items that can currently be borrowed"
// @Success 200 {array} models.ClientMedia
// @Failure 401 {object} ErrorResponse
// @Router /catalog [get]
// @Security BearerAuth
func (h *Handlers) GetClientCatalog(w http.ResponseWriter, r *http.Request) {
	borrowableOnly := false
	if borrowStr := r.URL.Query().Get("borrowable"); borrowStr != "" {
		borrowableOnly, _ = strconv.ParseBool(borrowStr)
	}

	items, err := h.Catalog.GetClientCatalog(borrowableOnly)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get catalog.")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// @Summary Borrowable media
// @Description Retrieves the media the authenticated user could borrow right now. Excludes board games and items on loan.
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Media
// @Failure 401 {object} ErrorResponse
// @Router /media/borrowable [get]
// @Security BearerAuth
func (h *Handlers) ListBorrowableMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Media.ListBorrowable(user)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list borrowable media.")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}
