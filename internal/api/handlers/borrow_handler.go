// filepath: internal/api/handlers/borrow_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"mediatheque/internal/models"

	"github.com/gorilla/mux"
)

// @Summary Borrow a media item
// @Description Borrows the identified media item for the authenticated user. Fails if the item is not borrowable or the user is over the loan limit or has overdue loans.
// @Tags Borrow
// @Accept json
// @Produce json
// @Param id path int true "Media ID"
// @Param borrow body models.BorrowRequest false "Borrow options (due date, ISO date)"
// @Success 201 {object} models.BorrowRecord
// @Failure 400 {object} ErrorResponse "Invalid due date"
// @Failure 404 {object} ErrorResponse "Media not found"
// @Failure 409 {object} ErrorResponse "Borrowing rule violated"
// @Router /media/{id}/borrow [post]
// @Security BearerAuth
func (h *Handlers) BorrowMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	mediaID, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	// The body is optional; an empty body means the default loan period.
	var req models.BorrowRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	record, err := h.Borrow.Borrow(user, mediaID, req.DueDate)
	if err != nil {
		respondWithServiceError(w, err, "Failed to borrow media.")
		return
	}

	h.Auditor.Log(r.Context(), "media.borrow", user.Username, fmt.Sprintf("Borrow:%s", record.Ref), map[string]interface{}{
		"media_id": mediaID,
		"due_date": record.DueDate.Format("2006-01-02"),
	})

	respondWithJSON(w, http.StatusCreated, record)
}

// @Summary Return a media item
// @Description Closes the identified loan. The media item in the body must match the one on the record.
// @Tags Borrow
// @Accept json
// @Produce json
// @Param ref path string true "Borrow reference"
// @Param return body models.ReturnRequest true "Return request"
// @Success 200 {object} models.BorrowRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Borrow record not found"
// @Failure 409 {object} ErrorResponse "Media mismatch or already returned"
// @Router /borrows/{ref}/return [post]
// @Security BearerAuth
func (h *Handlers) ReturnMedia(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	var req models.ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Borrow.Return(ref, req.MediaID)
	if err != nil {
		respondWithServiceError(w, err, "Failed to return media.")
		return
	}

	h.Auditor.Log(r.Context(), "media.return", getUserFromContext(r), fmt.Sprintf("Borrow:%s", ref), map[string]interface{}{
		"media_id": req.MediaID,
	})

	respondWithJSON(w, http.StatusOK, record)
}

// @Summary Get a borrow record
// @Description Retrieves a single loan by its reference, joined with its media item.
// @Tags Borrow
// @Produce json
// @Param ref path string true "Borrow reference"
// @Success 200 {object} models.Loan
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /borrows/{ref} [get]
// @Security BearerAuth
func (h *Handlers) GetBorrow(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	ref := mux.Vars(r)["ref"]

	loan, err := h.Borrow.GetLoan(ref)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get borrow record.")
		return
	}

	// Clients may only inspect their own loans.
	if user.Role == models.RoleClient && loan.UserID != user.ID {
		respondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	respondWithJSON(w, http.StatusOK, loan)
}

// @Summary List borrow records
// @Description Retrieves all loans, newest first. Staff only.
// @Tags Borrow
// @Produce json
// @Param active query bool false "Only active (unreturned) loans"
// @Success 200 {array} models.Loan
// @Failure 403 {object} ErrorResponse
// @Router /borrows [get]
// @Security BearerAuth
func (h *Handlers) ListBorrows(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		activeOnly, _ = strconv.ParseBool(activeStr)
	}

	loans, err := h.Borrow.ListLoans(activeOnly)
	if err != nil {
		respondWithServiceError(w, err, "Failed to list borrow records.")
		return
	}
	respondWithJSON(w, http.StatusOK, loans)
}
