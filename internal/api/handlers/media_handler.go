// filepath: internal/api/handlers/media_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mediatheque/internal/models"
)

// parseMediaFilter builds a catalog filter from the query string.
func parseMediaFilter(r *http.Request) models.MediaFilter {
	filter := models.MediaFilter{
		TypeContains: r.URL.Query().Get("media_type"),
		Page:         parsePageParam(r),
	}
	if availStr := r.URL.Query().Get("is_available"); availStr != "" {
		if avail, err := strconv.ParseBool(availStr); err == nil {
			filter.Available = &avail
		}
	}
	if borrowStr := r.URL.Query().Get("only_borrowable"); borrowStr != "" {
		if borrowable, err := strconv.ParseBool(borrowStr); err == nil {
			filter.OnlyBorrowable = borrowable
		}
	}
	return filter
}

// @Summary List media
// @Description Retrieves a paginated list of catalog items, ordered by media type, then name. Filterable by availability, media type (substring), and borrowability.
// @Tags Media
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param is_available query bool false "Filter by availability"
// @Param media_type query string false "Filter by media type (substring match)"
// @Param only_borrowable query bool false "Only items with borrowing enabled"
// @Success 200 {object} models.Page[models.Media]
// @Failure 403 {object} ErrorResponse
// @Router /media [get]
// @Security BearerAuth
func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, err := h.Media.ListMedia(parseMediaFilter(r))
	if err != nil {
		respondWithServiceError(w, err, "Failed to list media.")
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// @Summary Create a media item
// @Description Adds a new item to the catalog. Board games are created with borrowing disabled.
// @Tags Media
// @Accept json
// @Produce json
// @Param media body models.MediaCreatePayload true "Media to create"
// @Success 201 {object} models.Media
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /media [post]
// @Security BearerAuth
func (h *Handlers) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var payload models.MediaCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	media, err := h.Media.CreateMedia(payload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create media.")
		return
	}

	h.Auditor.Log(r.Context(), "media.create", getUserFromContext(r), fmt.Sprintf("Media:%d", media.ID), map[string]interface{}{
		"name":       media.Name,
		"media_type": media.Type,
	})

	respondWithJSON(w, http.StatusCreated, media)
}

// @Summary Get a media item
// @Description Retrieves a single catalog item by ID.
// @Tags Media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} models.Media
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /media/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	media, err := h.Media.GetMedia(id)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get media.")
		return
	}
	respondWithJSON(w, http.StatusOK, media)
}

// @Summary Update a media item
// @Description Updates a catalog item. The media type is immutable; board games cannot have borrowing enabled.
// @Tags Media
// @Accept json
// @Produce json
// @Param id path int true "Media ID"
// @Param media body models.MediaUpdatePayload true "Fields to update"
// @Success 200 {object} models.Media
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /media/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	var payload models.MediaUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	media, err := h.Media.UpdateMedia(id, payload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to update media.")
		return
	}

	h.Auditor.Log(r.Context(), "media.update", getUserFromContext(r), fmt.Sprintf("Media:%d", id), nil)

	respondWithJSON(w, http.StatusOK, media)
}

// @Summary Delete a media item
// @Description Removes a catalog item. Items currently on loan cannot be deleted.
// @Tags Media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Media is on loan"
// @Router /media/{id} [delete]
// @Security BearerAuth
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	if err := h.Media.DeleteMedia(id); err != nil {
		respondWithServiceError(w, err, "Failed to delete media.")
		return
	}

	h.Auditor.Log(r.Context(), "media.delete", getUserFromContext(r), fmt.Sprintf("Media:%d", id), nil)

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Media deleted."})
}
