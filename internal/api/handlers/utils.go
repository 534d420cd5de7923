// filepath: internal/api/handlers/utils.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/services"

	"github.com/gorilla/mux"
)

// getUserFromContext returns the username of the authenticated user, or
// "anonymous" when the request carries none. Used for audit logging.
func getUserFromContext(r *http.Request) string {
	if user, ok := r.Context().Value("user").(*models.User); ok {
		return user.Username
	}
	return "anonymous"
}

// requireUser extracts the authenticated user or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value("user").(*models.User)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No user found in context")
		return nil, false
	}
	return user, true
}

// parseIDVar parses the {id} path variable as an int64.
func parseIDVar(r *http.Request) (int64, error) {
	idStr := mux.Vars(r)["id"]
	return strconv.ParseInt(idStr, 10, 64)
}

// parsePageParam parses the ?page= query parameter. Missing or malformed
// values default to the first page.
func parsePageParam(r *http.Request) int {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 1
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondWithServiceError maps service-layer sentinel errors onto HTTP
// status codes. Business rule violations are reported as 409 Conflict.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotBorrowable),
		errors.Is(err, services.ErrBorrowLimit),
		errors.Is(err, services.ErrOverdueLoans),
		errors.Is(err, services.ErrMediaMismatch),
		errors.Is(err, services.ErrAlreadyReturned),
		errors.Is(err, services.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		logging.Log.Errorf("Unhandled service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
