// filepath: internal/services/catalog_service.go
package services

import (
	"fmt"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
)

// Compile-time check to ensure the interface is implemented.
var _ CatalogService = (*catalogService)(nil)

// catalogService maintains the client-facing catalog table.
type catalogService struct {
	Repo *repository.Repository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.Repository) *catalogService {
	return &catalogService{Repo: repo}
}

// ImportStaffCatalog copies every staff catalog item into the client
// catalog, refreshing rows that were imported before. Board games are
// forced to can_borrow = false on the client side no matter what the
// staff row says.
func (s *catalogService) ImportStaffCatalog() (int, int, error) {
	items, err := s.Repo.GetAllMedia()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load staff catalog: %w", err)
	}

	var created, updated int
	for i := range items {
		m := &items[i]
		row := &models.ClientMedia{
			StaffMediaID: m.ID,
			Name:         m.Name,
			Type:         m.Type,
			IsAvailable:  m.IsAvailable,
			CanBorrow:    m.CanBorrow,
			Description:  m.Description,
			Detail:       m.Detail(),
		}
		if m.Type == models.MediaTypeBoardGame {
			row.CanBorrow = false
		}

		isNew, err := s.Repo.UpsertClientMedia(row)
		if err != nil {
			return created, updated, fmt.Errorf("failed to import media '%s': %w", m.Name, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
		logging.Log.Debugf("ImportStaffCatalog: %s media '%s' (%s)",
			map[bool]string{true: "created", false: "updated"}[isNew], m.Name, m.Type)
	}

	logging.Log.Infof("Catalog import finished: %d created, %d updated", created, updated)
	return created, updated, nil
}

// DisableBoardGames sets can_borrow = false on every board_game item in
// the staff catalog and returns the number of rows changed.
func (s *catalogService) DisableBoardGames() (int64, error) {
	n, err := s.Repo.DisableBoardGameBorrowing()
	if err != nil {
		return 0, fmt.Errorf("failed to update board games: %w", err)
	}
	logging.Log.Infof("%d board games updated with can_borrow=false", n)
	return n, nil
}

// GetClientCatalog retrieves the client-facing catalog.
func (s *catalogService) GetClientCatalog(borrowableOnly bool) ([]models.ClientMedia, error) {
	return s.Repo.GetClientCatalog(borrowableOnly)
}
