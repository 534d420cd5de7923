// filepath: internal/repository/catalog_repo_test.go
package repository

import (
	"testing"

	"mediatheque/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUpsertClientMedia(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_catalog_upsert.db")
	defer cleanup()

	row := &models.ClientMedia{
		StaffMediaID: 1,
		Name:         "Dune",
		Type:         models.MediaTypeBook,
		IsAvailable:  true,
		CanBorrow:    true,
		Detail:       "Frank Herbert",
	}

	isNew, err := repo.UpsertClientMedia(row)
	assert.NoError(t, err)
	assert.True(t, isNew)

	// Same staff item again updates in place.
	row.Name = "Dune (Revised)"
	isNew, err = repo.UpsertClientMedia(row)
	assert.NoError(t, err)
	assert.False(t, isNew)

	items, err := repo.GetClientCatalog(false)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Dune (Revised)", items[0].Name)
	assert.Equal(t, "Frank Herbert", items[0].Detail)
}

func TestGetClientCatalog_BorrowableOnly(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_catalog_borrowable.db")
	defer cleanup()

	_, err := repo.UpsertClientMedia(&models.ClientMedia{
		StaffMediaID: 1,
		Name:         "Dune",
		Type:         models.MediaTypeBook,
		IsAvailable:  true,
		CanBorrow:    true,
	})
	assert.NoError(t, err)

	_, err = repo.UpsertClientMedia(&models.ClientMedia{
		StaffMediaID: 2,
		Name:         "Catan",
		Type:         models.MediaTypeBoardGame,
		IsAvailable:  true,
		CanBorrow:    false,
	})
	assert.NoError(t, err)

	all, err := repo.GetClientCatalog(false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	borrowable, err := repo.GetClientCatalog(true)
	assert.NoError(t, err)
	assert.Len(t, borrowable, 1)
	assert.Equal(t, "Dune", borrowable[0].Name)
}
