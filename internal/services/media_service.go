// filepath: internal/services/media_service.go
package services

import (
	"errors"
	"fmt"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
)

// Compile-time check to ensure the interface is implemented.
var _ MediaService = (*mediaService)(nil)

// mediaService handles business logic for the staff catalog.
type mediaService struct {
	Repo *repository.Repository
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo *repository.Repository) *mediaService {
	return &mediaService{Repo: repo}
}

// validateDetail ensures only the detail field matching the media type is
// set. The variants are explicit, so a book carrying a producer is a
// client error rather than silently stored.
func validateDetail(m *models.Media) error {
	type variant struct {
		name  string
		value string
		owner models.MediaType
	}
	fields := []variant{
		{"author", m.Author, models.MediaTypeBook},
		{"producer", m.Producer, models.MediaTypeDVD},
		{"artist", m.Artist, models.MediaTypeCD},
		{"creators", m.Creators, models.MediaTypeBoardGame},
	}
	for _, f := range fields {
		if f.value != "" && m.Type != f.owner {
			return fmt.Errorf("%w: field %q is not valid for media type %q", ErrValidation, f.name, m.Type)
		}
	}
	if m.GameType != "" && m.Type != models.MediaTypeBoardGame {
		return fmt.Errorf("%w: field \"game_type\" is only valid for board games", ErrValidation)
	}
	return nil
}

// CreateMedia validates the payload and inserts a new catalog item.
// Board games are forced to can_borrow = false.
func (s *mediaService) CreateMedia(payload models.MediaCreatePayload) (*models.Media, error) {
	if payload.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !payload.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid media type %q", ErrValidation, payload.Type)
	}

	m := &models.Media{
		Name:        payload.Name,
		Type:        payload.Type,
		IsAvailable: true,
		CanBorrow:   true,
		Description: payload.Description,
		Author:      payload.Author,
		Producer:    payload.Producer,
		Artist:      payload.Artist,
		Creators:    payload.Creators,
		GameType:    payload.GameType,
	}
	if payload.IsAvailable != nil {
		m.IsAvailable = *payload.IsAvailable
	}
	if payload.CanBorrow != nil {
		m.CanBorrow = *payload.CanBorrow
	}
	if m.Type == models.MediaTypeBoardGame {
		m.CanBorrow = false
	}

	if err := validateDetail(m); err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateMedia(m)
	if err != nil {
		logging.Log.Errorf("MediaService: failed to create media '%s': %v", payload.Name, err)
		return nil, fmt.Errorf("failed to create media")
	}
	return created, nil
}

// GetMedia retrieves a single catalog item.
func (s *mediaService) GetMedia(id int64) (*models.Media, error) {
	m, err := s.Repo.GetMedia(id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateMedia applies the provided fields to an existing item. The media
// type itself is immutable; board games keep can_borrow = false no matter
// what the payload says.
func (s *mediaService) UpdateMedia(id int64, payload models.MediaUpdatePayload) (*models.Media, error) {
	m, err := s.GetMedia(id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		if *payload.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		m.Name = *payload.Name
	}
	if payload.IsAvailable != nil {
		m.IsAvailable = *payload.IsAvailable
	}
	if payload.CanBorrow != nil {
		m.CanBorrow = *payload.CanBorrow
	}
	if payload.Description != nil {
		m.Description = *payload.Description
	}
	if payload.Author != nil {
		m.Author = *payload.Author
	}
	if payload.Producer != nil {
		m.Producer = *payload.Producer
	}
	if payload.Artist != nil {
		m.Artist = *payload.Artist
	}
	if payload.Creators != nil {
		m.Creators = *payload.Creators
	}
	if payload.GameType != nil {
		m.GameType = *payload.GameType
	}

	if m.Type == models.MediaTypeBoardGame {
		m.CanBorrow = false
	}
	if err := validateDetail(m); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateMedia(m); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, ErrNotFound
		}
		logging.Log.Errorf("MediaService: failed to update media %d: %v", id, err)
		return nil, fmt.Errorf("failed to update media")
	}
	return m, nil
}

// DeleteMedia removes a catalog item. An item currently on loan cannot be
// deleted.
func (s *mediaService) DeleteMedia(id int64) error {
	onLoan, err := s.Repo.HasActiveBorrowForMedia(id)
	if err != nil {
		return err
	}
	if onLoan {
		return fmt.Errorf("%w: media is currently on loan", ErrConflict)
	}

	if err := s.Repo.DeleteMedia(id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListMedia retrieves one page of the staff catalog.
func (s *mediaService) ListMedia(filter models.MediaFilter) (models.Page[models.Media], error) {
	return s.Repo.GetMediaList(filter)
}

// ListBorrowable retrieves the items the user could borrow right now.
// Board games never appear here regardless of their flags.
func (s *mediaService) ListBorrowable(user *models.User) ([]models.Media, error) {
	if user.Role != models.RoleClient && user.Role != models.RoleStaff && user.Role != models.RoleAdmin {
		return []models.Media{}, nil
	}
	return s.Repo.GetBorrowableMedia()
}
