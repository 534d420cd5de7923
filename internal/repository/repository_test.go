// filepath: internal/repository/repository_test.go
package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"mediatheque/internal/config"
	"mediatheque/internal/db/migrations"
	"mediatheque/internal/models"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
)

func applyTestMigrations(t *testing.T, repo *Repository) {
	t.Helper()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}
}

func setupTestDB(t *testing.T, dbPath string) (*Repository, func()) {
	t.Helper()
	os.Remove(dbPath)

	dummyCfg := &config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
	}

	repo, err := NewRepository(dummyCfg)
	if err != nil {
		t.Fatalf("Failed to create new repository: %v", err)
	}

	applyTestMigrations(t, repo)

	cleanup := func() {
		repo.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

// mustCreateUser inserts a user and fails the test on error.
func mustCreateUser(t *testing.T, repo *Repository, username string, role models.Role) *models.User {
	t.Helper()
	user, err := repo.CreateUser(&UserCreateArgs{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

// mustCreateMedia inserts a media item and fails the test on error.
func mustCreateMedia(t *testing.T, repo *Repository, name string, mediaType models.MediaType, canBorrow bool) *models.Media {
	t.Helper()
	media, err := repo.CreateMedia(&models.Media{
		Name:        name,
		Type:        mediaType,
		IsAvailable: true,
		CanBorrow:   canBorrow,
	})
	if err != nil {
		t.Fatalf("Failed to create media %s: %v", name, err)
	}
	return media
}

func TestNewRepository(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_repository.db")
	defer cleanup()

	tables := []string{"users", "media", "borrow_records", "client_media", "refresh_tokens"}
	for _, table := range tables {
		var name string
		err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table '%s' was not created: %v", table, err)
		}
	}
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_user_crud.db")
	defer cleanup()

	created := mustCreateUser(t, repo, "alice", models.RoleClient)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.RoleClient, created.Role)
	assert.True(t, created.IsActive)

	// Duplicate usernames are rejected.
	_, err := repo.CreateUser(&UserCreateArgs{
		Username: "alice",
		Password: "password123",
		Role:     models.RoleClient,
		IsActive: true,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	byName, err := repo.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := repo.GetUserByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	// Update flows through the cache.
	byID.Email = "alice@new.example.com"
	assert.NoError(t, repo.UpdateUser(byID))
	reread, err := repo.GetUserByUsername("alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", reread.Email)

	assert.NoError(t, repo.DeleteUser(created.ID))
	_, err = repo.GetUserByUsername("alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUsers_PaginationAndOrdering(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_user_pages.db")
	defer cleanup()

	// 12 users means two pages at the fixed page size of 10.
	for i := 0; i < 12; i++ {
		mustCreateUser(t, repo, fmt.Sprintf("user%02d", i), models.RoleClient)
	}

	page1, err := repo.GetUsers(1)
	assert.NoError(t, err)
	assert.Len(t, page1.Items, PageSize)
	assert.Equal(t, 12, page1.TotalCount)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, "user00", page1.Items[0].Username)

	page2, err := repo.GetUsers(2)
	assert.NoError(t, err)
	assert.Len(t, page2.Items, 2)
	assert.Equal(t, "user10", page2.Items[0].Username)
}

func TestGetUsersByRole(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_user_roles.db")
	defer cleanup()

	mustCreateUser(t, repo, "admin1", models.RoleAdmin)
	mustCreateUser(t, repo, "staff1", models.RoleStaff)
	mustCreateUser(t, repo, "client1", models.RoleClient)

	admins, err := repo.GetUsersByRole(models.RoleAdmin)
	assert.NoError(t, err)
	assert.Len(t, admins, 1)
	assert.Equal(t, "admin1", admins[0].Username)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_tokens.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "tokenuser", models.RoleClient)

	expiry := time.Now().Add(24 * time.Hour)
	assert.NoError(t, repo.StoreRefreshToken(user.ID, "hash-abc", expiry))

	userID, err := repo.ValidateRefreshToken("hash-abc")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	assert.NoError(t, repo.DeleteRefreshToken("hash-abc"))
	_, err = repo.ValidateRefreshToken("hash-abc")
	assert.Error(t, err)
}
