// filepath: internal/services/services_test.go
package services

import (
	"os"
	"testing"

	"mediatheque/internal/config"
	"mediatheque/internal/db/migrations"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"

	"github.com/pressly/goose/v3"
)

// setupTestRepo creates a temporary database with the full schema applied.
func setupTestRepo(t *testing.T, dbPath string) (*repository.Repository, func()) {
	t.Helper()
	os.Remove(dbPath)

	repo, err := repository.NewRepository(&config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
	})
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}

	cleanup := func() {
		repo.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func seedUser(t *testing.T, repo *repository.Repository, username string, role models.Role) *models.User {
	t.Helper()
	user, err := repo.CreateUser(&repository.UserCreateArgs{
		Username: username,
		Password: "password123",
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

func seedMedia(t *testing.T, repo *repository.Repository, name string, mediaType models.MediaType, canBorrow bool) *models.Media {
	t.Helper()
	media, err := repo.CreateMedia(&models.Media{
		Name:        name,
		Type:        mediaType,
		IsAvailable: true,
		CanBorrow:   canBorrow,
	})
	if err != nil {
		t.Fatalf("Failed to seed media %s: %v", name, err)
	}
	return media
}
