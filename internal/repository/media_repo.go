// filepath: internal/repository/media_repo.go
package repository

import (
	"database/sql"
	"fmt"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"

	"github.com/Masterminds/squirrel"
)

const mediaColumns = "id, name, media_type, is_available, can_borrow, description, author, producer, artist, creators, game_type"

func scanMedia(row interface{ Scan(...interface{}) error }) (*models.Media, error) {
	var m models.Media
	err := row.Scan(
		&m.ID, &m.Name, &m.Type, &m.IsAvailable, &m.CanBorrow, &m.Description,
		&m.Author, &m.Producer, &m.Artist, &m.Creators, &m.GameType,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMedia inserts a new catalog item.
func (s *Repository) CreateMedia(m *models.Media) (*models.Media, error) {
	query := `
		INSERT INTO media (name, media_type, is_available, can_borrow, description, author, producer, artist, creators, game_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query,
		m.Name, m.Type, m.IsAvailable, m.CanBorrow, m.Description,
		m.Author, m.Producer, m.Artist, m.Creators, m.GameType,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	m.ID = id

	logging.Log.Debugf("CreateMedia: Media '%s' (%s) created with ID %d", m.Name, m.Type, id)
	return m, nil
}

// GetMedia retrieves a single catalog item by ID.
func (s *Repository) GetMedia(id int64) (*models.Media, error) {
	query := fmt.Sprintf("SELECT %s FROM media WHERE id = ?", mediaColumns)
	m, err := scanMedia(s.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateMedia persists every field of an existing catalog item.
func (s *Repository) UpdateMedia(m *models.Media) error {
	query := `
		UPDATE media
		SET name = ?, is_available = ?, can_borrow = ?, description = ?,
		    author = ?, producer = ?, artist = ?, creators = ?, game_type = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query,
		m.Name, m.IsAvailable, m.CanBorrow, m.Description,
		m.Author, m.Producer, m.Artist, m.Creators, m.GameType, m.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// DeleteMedia deletes a catalog item by ID.
func (s *Repository) DeleteMedia(id int64) error {
	res, err := s.DB.Exec("DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// GetMediaList retrieves one page of the staff catalog, narrowed by the
// filter. Items are grouped by media_type and sorted by name within each
// group.
func (s *Repository) GetMediaList(filter models.MediaFilter) (models.Page[models.Media], error) {
	var result models.Page[models.Media]
	page := filter.Page
	if page < 1 {
		page = 1
	}

	base := s.Builder.Select(mediaColumns).From("media")
	count := s.Builder.Select("COUNT(*)").From("media")

	if filter.Available != nil {
		cond := squirrel.Eq{"is_available": *filter.Available}
		base = base.Where(cond)
		count = count.Where(cond)
	}
	if filter.TypeContains != "" {
		cond := squirrel.Like{"media_type": "%" + filter.TypeContains + "%"}
		base = base.Where(cond)
		count = count.Where(cond)
	}
	if filter.OnlyBorrowable {
		cond := squirrel.Eq{"can_borrow": true}
		base = base.Where(cond)
		count = count.Where(cond)
	}

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return result, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := s.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return result, err
	}

	listSQL, listArgs, err := base.
		OrderBy("media_type", "name").
		Limit(uint64(PageSize)).
		Offset(uint64((page - 1) * PageSize)).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("failed to build list query: %w", err)
	}

	logging.Log.Debugf("GetMediaList: %s %v", listSQL, listArgs)

	rows, err := s.DB.Query(listSQL, listArgs...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	items := make([]models.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return result, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	result.Items = items
	result.Page = page
	result.PageSize = PageSize
	result.TotalCount = total
	result.TotalPages = (total + PageSize - 1) / PageSize
	return result, nil
}

// GetBorrowableMedia retrieves the catalog items a client may borrow:
// available, flagged borrowable, not a board game, and not on loan.
func (s *Repository) GetBorrowableMedia() ([]models.Media, error) {
	query, args, err := s.Builder.Select(mediaColumns).
		From("media").
		Where(squirrel.Eq{"is_available": true, "can_borrow": true}).
		Where(squirrel.NotEq{"media_type": models.MediaTypeBoardGame}).
		Where("id NOT IN (SELECT media_id FROM borrow_records WHERE is_returned = 0)").
		OrderBy("media_type", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// DisableBoardGameBorrowing sets can_borrow = false on every board_game
// item and returns the number of rows touched. Used by the maintenance
// command.
func (s *Repository) DisableBoardGameBorrowing() (int64, error) {
	res, err := s.DB.Exec(
		"UPDATE media SET can_borrow = 0 WHERE media_type = ? AND can_borrow = 1",
		models.MediaTypeBoardGame,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetAllMedia retrieves the full staff catalog without pagination. Used by
// the import-catalog command.
func (s *Repository) GetAllMedia() ([]models.Media, error) {
	query := fmt.Sprintf("SELECT %s FROM media ORDER BY media_type, name", mediaColumns)
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
