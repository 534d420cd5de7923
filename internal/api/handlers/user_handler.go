// filepath: internal/api/handlers/user_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
)

// @Summary Sign up
// @Description Create a new client account. This is a public endpoint; the
// @Description resulting account always has the client role.
// @Tags Users
// @Accept json
// @Produce json
// @Param signup body models.SignupRequest true "Signup request"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Router /signup [post]
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.User.Signup(req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to create account.")
		return
	}

	h.Auditor.Log(r.Context(), "user.signup", user.Username, fmt.Sprintf("User:%d", user.ID), nil)

	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Get current user
// @Description Get the currently authenticated user's details.
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
// @Security BearerAuth
func (h *Handlers) GetUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	logging.Log.Debugf("GetUserMe: Handler started for user '%s' (ID: %d)", user.Username, user.ID)

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Update current user's profile
// @Description Allows a user to change their own name, email, or password.
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body models.ProfileUpdatePayload true "Profile update request"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me [patch]
// @Security BearerAuth
func (h *Handlers) UpdateUserMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload models.ProfileUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logging.Log.Debugf("UpdateUserMe: User '%s' updating their profile.", user.Username)

	updated, err := h.User.UpdateProfile(user, user.ID, payload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to update profile.")
		return
	}

	h.Auditor.Log(r.Context(), "user.profile_update", user.Username, fmt.Sprintf("User:%d", user.ID), nil)

	respondWithJSON(w, http.StatusOK, updated)
}
