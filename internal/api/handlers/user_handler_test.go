// filepath: internal/api/handlers/user_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediatheque/internal/models"
	"mediatheque/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetUserMe(t *testing.T) {
	h, _ := newTestHandlers()

	mockUser := &models.User{
		ID:           1,
		Username:     "testuser",
		Role:         models.RoleClient,
		PasswordHash: "secret-hash",
	}

	req, err := http.NewRequest("GET", "/api/me", nil)
	assert.NoError(t, err)
	ctx := context.WithValue(req.Context(), "user", mockUser)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	h.GetUserMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	// The password hash must never appear in the response.
	assert.NotContains(t, rr.Body.String(), "secret-hash")

	var returnedUser models.User
	err = json.Unmarshal(rr.Body.Bytes(), &returnedUser)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", returnedUser.Username)
	assert.Equal(t, models.RoleClient, returnedUser.Role)
}

func TestGetUserMe_NoUserInContext(t *testing.T) {
	h, _ := newTestHandlers()

	req, err := http.NewRequest("GET", "/api/me", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	h.GetUserMe(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var responseBody map[string]string
	err = json.Unmarshal(rr.Body.Bytes(), &responseBody)
	assert.NoError(t, err)
	assert.Equal(t, "No user found in context", responseBody["error"])
}

func TestUpdateUserMe(t *testing.T) {
	h, deps := newTestHandlers()

	mockUser := &models.User{
		ID:       1,
		Username: "testuser",
		Role:     models.RoleClient,
	}

	updated := &models.User{
		ID:       1,
		Username: "testuser",
		Email:    "new@example.com",
		Role:     models.RoleClient,
	}

	deps.User.On("UpdateProfile", mockUser, int64(1), mock.AnythingOfType("models.ProfileUpdatePayload")).Return(updated, nil)

	body := `{"email":"new@example.com"}`
	req, err := http.NewRequest("PATCH", "/api/me", strings.NewReader(body))
	assert.NoError(t, err)
	ctx := context.WithValue(req.Context(), "user", mockUser)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	h.UpdateUserMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	deps.User.AssertExpectations(t)

	var resp models.User
	err = json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
}

func TestSignup(t *testing.T) {
	h, deps := newTestHandlers()

	created := &models.User{
		ID:       42,
		Username: "newclient",
		Role:     models.RoleClient,
		IsActive: true,
	}
	deps.User.On("Signup", mock.AnythingOfType("models.SignupRequest")).Return(created, nil)

	body := `{"username":"newclient","password":"longenough"}`
	req, err := http.NewRequest("POST", "/api/signup", strings.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	deps.User.AssertExpectations(t)

	var resp models.User
	err = json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleClient, resp.Role)
}

func TestSignup_UsernameTaken(t *testing.T) {
	h, deps := newTestHandlers()

	deps.User.On("Signup", mock.AnythingOfType("models.SignupRequest")).
		Return(nil, services.ErrConflict)

	body := `{"username":"taken","password":"longenough"}`
	req, err := http.NewRequest("POST", "/api/signup", strings.NewReader(body))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignup_InvalidBody(t *testing.T) {
	h, _ := newTestHandlers()

	req, err := http.NewRequest("POST", "/api/signup", strings.NewReader("{not json"))
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
