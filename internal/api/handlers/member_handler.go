// filepath: internal/api/handlers/member_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mediatheque/internal/models"
	"mediatheque/internal/repository"
)

// @Summary List members
// @Description Retrieves a paginated list of all member accounts, ordered by username.
// @Tags Members
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} models.Page[models.User]
// @Failure 403 {object} ErrorResponse
// @Router /members [get]
// @Security BearerAuth
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	page, err := h.User.GetMembers(parsePageParam(r))
	if err != nil {
		respondWithServiceError(w, err, "Failed to list members.")
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// @Summary Create a member
// @Description Creates a new member account with an explicit role.
// @Tags Members
// @Accept json
// @Produce json
// @Param member body models.MemberCreatePayload true "Member to create"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Router /members [post]
// @Security BearerAuth
func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var payload models.MemberCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	user, err := h.User.CreateMember(repository.UserCreateArgs{
		Username:  payload.Username,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Role:      payload.Role,
		IsActive:  isActive,
	})
	if err != nil {
		respondWithServiceError(w, err, "Failed to create member.")
		return
	}

	h.Auditor.Log(r.Context(), "member.create", getUserFromContext(r), fmt.Sprintf("User:%d", user.ID), map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	})

	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Get a member
// @Description Retrieves a single member account by ID.
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /members/{id} [get]
// @Security BearerAuth
func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	user, err := h.User.GetUserByID(id)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get member.")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Update a member
// @Description Updates a member account. The last admin account cannot be demoted or deactivated.
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param member body models.MemberUpdatePayload true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /members/{id} [put]
// @Security BearerAuth
func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	var payload models.MemberUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.User.UpdateMember(id, payload)
	if err != nil {
		respondWithServiceError(w, err, "Failed to update member.")
		return
	}

	h.Auditor.Log(r.Context(), "member.update", getUserFromContext(r), fmt.Sprintf("User:%d", id), nil)

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Delete a member
// @Description Deletes a member account. The last admin account cannot be deleted.
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /members/{id} [delete]
// @Security BearerAuth
func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDVar(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	if err := h.User.DeleteMember(id); err != nil {
		respondWithServiceError(w, err, "Failed to delete member.")
		return
	}

	h.Auditor.Log(r.Context(), "member.delete", getUserFromContext(r), fmt.Sprintf("User:%d", id), nil)

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Member deleted."})
}
