// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"mediatheque/internal/config"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "media.borrow", "member.delete")
	// actor: who did it (username)
	// resource: what was affected (e.g., "Media:12", "Borrow:01H...")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// UserService defines the interface for user and member management.
type UserService interface {
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	Signup(req models.SignupRequest) (*models.User, error)
	UpdateProfile(actor *models.User, targetID int64, payload models.ProfileUpdatePayload) (*models.User, error)
	GetMembers(page int) (models.Page[models.User], error)
	CreateMember(args repository.UserCreateArgs) (*models.User, error)
	UpdateMember(id int64, payload models.MemberUpdatePayload) (*models.User, error)
	DeleteMember(id int64) error
	InitializeAdminUser(cfg *config.Config) error
}

// MediaService defines the interface for the staff catalog.
type MediaService interface {
	CreateMedia(payload models.MediaCreatePayload) (*models.Media, error)
	GetMedia(id int64) (*models.Media, error)
	UpdateMedia(id int64, payload models.MediaUpdatePayload) (*models.Media, error)
	DeleteMedia(id int64) error
	ListMedia(filter models.MediaFilter) (models.Page[models.Media], error)
	ListBorrowable(user *models.User) ([]models.Media, error)
}

// BorrowService defines the interface for the borrowing rule engine and
// the loan views built on it.
type BorrowService interface {
	CanBorrow(user *models.User) error
	IsBorrowable(media *models.Media, user *models.User) bool
	Borrow(user *models.User, mediaID int64, dueDate string) (*models.BorrowRecord, error)
	Return(ref string, submittedMediaID int64) (*models.BorrowRecord, error)
	GetLoan(ref string) (*models.Loan, error)
	ListLoans(activeOnly bool) ([]models.Loan, error)
	ClientDashboard(user *models.User) (*models.ClientDashboard, error)
	StaffDashboard(user *models.User, page int) (*models.StaffDashboard, error)
}

// CatalogService defines the interface for the client-facing catalog and
// the administrative import/maintenance operations.
type CatalogService interface {
	ImportStaffCatalog() (created int, updated int, err error)
	DisableBoardGames() (int64, error)
	GetClientCatalog(borrowableOnly bool) ([]models.ClientMedia, error)
}
