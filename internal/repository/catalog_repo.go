// filepath: internal/repository/catalog_repo.go
package repository

import (
	"fmt"

	"mediatheque/internal/models"

	"github.com/Masterminds/squirrel"
)

const clientMediaColumns = "id, staff_media_id, name, media_type, is_available, can_borrow, description, detail"

func scanClientMedia(row interface{ Scan(...interface{}) error }) (*models.ClientMedia, error) {
	var m models.ClientMedia
	err := row.Scan(
		&m.ID, &m.StaffMediaID, &m.Name, &m.Type,
		&m.IsAvailable, &m.CanBorrow, &m.Description, &m.Detail,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertClientMedia creates or refreshes the client-facing row for a staff
// catalog item. It reports whether a new row was created.
func (s *Repository) UpsertClientMedia(m *models.ClientMedia) (bool, error) {
	res, err := s.DB.Exec(`
		UPDATE client_media
		SET name = ?, media_type = ?, is_available = ?, can_borrow = ?, description = ?, detail = ?
		WHERE staff_media_id = ?
	`, m.Name, m.Type, m.IsAvailable, m.CanBorrow, m.Description, m.Detail, m.StaffMediaID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	result, err := s.DB.Exec(`
		INSERT INTO client_media (staff_media_id, name, media_type, is_available, can_borrow, description, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.StaffMediaID, m.Name, m.Type, m.IsAvailable, m.CanBorrow, m.Description, m.Detail)
	if err != nil {
		return false, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	m.ID = id
	return true, nil
}

// GetClientCatalog retrieves the client-facing catalog. When borrowableOnly
// is set, only available, borrowable, non-board-game rows are returned.
func (s *Repository) GetClientCatalog(borrowableOnly bool) ([]models.ClientMedia, error) {
	base := s.Builder.Select(clientMediaColumns).From("client_media")
	if borrowableOnly {
		base = base.
			Where(squirrel.Eq{"is_available": true, "can_borrow": true}).
			Where(squirrel.NotEq{"media_type": models.MediaTypeBoardGame})
	}

	query, args, err := base.OrderBy("media_type", "name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.ClientMedia, 0)
	for rows.Next() {
		m, err := scanClientMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
