// filepath: internal/services/auth/token_service_test.go
package auth_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"mediatheque/internal/config"
	"mediatheque/internal/db/migrations"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
	"mediatheque/internal/services"
	"mediatheque/internal/services/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
)

// setupServiceTest creates a temporary database, repository, user service and
// token service, plus one client user to issue tokens for.
func setupServiceTest(t *testing.T) (*repository.Repository, auth.TokenService, *models.User, func()) {
	t.Helper()
	const dbPath = "test_token_service.db"
	os.Remove(dbPath)

	testCfg := &config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
		JWT: config.JWTConfig{
			AccessDurationMin:    5,
			RefreshDurationHours: 24,
			Secret:               "super-secret-key-for-testing",
		},
		JWTSecret: "super-secret-key-for-testing",
	}

	repo, err := repository.NewRepository(testCfg)
	if err != nil {
		t.Fatalf("Failed to create repo: %v", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	userSvc := services.NewUserService(repo)
	tokenSvc := auth.NewTokenService(testCfg, userSvc, repo)

	user, err := repo.CreateUser(&repository.UserCreateArgs{
		Username: "tokenuser",
		Password: "password123",
		Role:     models.RoleClient,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	cleanup := func() {
		repo.Close()
		os.Remove(dbPath)
	}

	return repo, tokenSvc, user, cleanup
}

func TestGenerateTokens(t *testing.T) {
	repo, tokenSvc, user, cleanup := setupServiceTest(t)
	defer cleanup()

	accessToken, refreshToken, err := tokenSvc.GenerateTokens(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	parsedAccess, _ := jwt.Parse(accessToken, nil)
	accessClaims, ok := parsedAccess.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "tokenuser", accessClaims["username"])
	assert.Equal(t, string(models.RoleClient), accessClaims["role"])
	assert.Equal(t, fmt.Sprintf("%d", user.ID), accessClaims["sub"])
	assert.Equal(t, "mediatheque", accessClaims["iss"])

	var count int
	err = repo.DB.QueryRow("SELECT COUNT(*) FROM refresh_tokens WHERE user_id = ?", user.ID).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count, "Refresh token hash should be stored in database")

	// Only the hash goes into the database, never the token itself.
	var stored string
	err = repo.DB.QueryRow("SELECT token_hash FROM refresh_tokens WHERE user_id = ?", user.ID).Scan(&stored)
	assert.NoError(t, err)
	assert.NotEqual(t, refreshToken, stored)
}

func TestValidateAccessToken(t *testing.T) {
	_, tokenSvc, user, cleanup := setupServiceTest(t)
	defer cleanup()

	accessToken, _, err := tokenSvc.GenerateTokens(user)
	assert.NoError(t, err)

	validatedUser, err := tokenSvc.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validatedUser.ID)
	assert.Equal(t, user.Username, validatedUser.Username)

	tamperedToken := accessToken + "a"
	_, err = tokenSvc.ValidateAccessToken(tamperedToken)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	_, tokenSvc, user, cleanup := setupServiceTest(t)
	defer cleanup()

	secret := []byte("super-secret-key-for-testing")
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     string(user.Role),
		"sub":      fmt.Sprintf("%d", user.ID),
		"exp":      time.Now().Add(-1 * time.Minute).Unix(),
		"iss":      "mediatheque",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredTokenString, _ := token.SignedString(secret)

	_, err := tokenSvc.ValidateAccessToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateRefreshToken_Stateful(t *testing.T) {
	repo, tokenSvc, user, cleanup := setupServiceTest(t)
	defer cleanup()

	_, refreshToken, err := tokenSvc.GenerateTokens(user)
	assert.NoError(t, err)

	validatedUser, err := tokenSvc.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validatedUser.ID)

	// A revoked token fails validation even with a valid signature.
	_, err = repo.DB.Exec("DELETE FROM refresh_tokens WHERE user_id = ?", user.ID)
	assert.NoError(t, err)

	_, err = tokenSvc.ValidateRefreshToken(refreshToken)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token not found in database")
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	_, tokenSvc, user, cleanup := setupServiceTest(t)
	defer cleanup()

	_, refreshToken, err := tokenSvc.GenerateTokens(user)
	assert.NoError(t, err)

	assert.NoError(t, tokenSvc.Logout(refreshToken))

	_, err = tokenSvc.ValidateRefreshToken(refreshToken)
	assert.Error(t, err, "Refresh token should be unusable after logout")

	// Logging out an already-revoked token is a no-op, not an error.
	assert.NoError(t, tokenSvc.Logout(refreshToken))
}
