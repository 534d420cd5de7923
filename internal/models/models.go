// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"
)

// Role is the coarse access tier of a user. Fine-grained capabilities are
// derived from it in the auth package.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// User represents a member account in the system.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Omit from JSON responses
	Role         Role   `json:"role"`
	IsActive     bool   `json:"is_active"`
}

// MediaType identifies the variant of a media item.
type MediaType string

const (
	MediaTypeBook      MediaType = "book"
	MediaTypeDVD       MediaType = "dvd"
	MediaTypeCD        MediaType = "cd"
	MediaTypeBoardGame MediaType = "board_game"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeBook, MediaTypeDVD, MediaTypeCD, MediaTypeBoardGame:
		return true
	}
	return false
}

// Media represents one catalog item. The shared fields live on the struct;
// exactly one of the detail fields (Author/Producer/Artist/Creators) is
// meaningful, selected by Type. GameType is board-game only.
type Media struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        MediaType `json:"media_type"`
	IsAvailable bool      `json:"is_available"`
	CanBorrow   bool      `json:"can_borrow"`
	Description string    `json:"description,omitempty"`

	Author   string `json:"author,omitempty"`
	Producer string `json:"producer,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Creators string `json:"creators,omitempty"`
	GameType string `json:"game_type,omitempty"`
}

// Detail returns the variant-specific descriptive field for the item's type.
func (m *Media) Detail() string {
	switch m.Type {
	case MediaTypeBook:
		return m.Author
	case MediaTypeDVD:
		return m.Producer
	case MediaTypeCD:
		return m.Artist
	case MediaTypeBoardGame:
		return m.Creators
	}
	return ""
}

// ClientMedia is the client-facing catalog row, synced from Media by the
// import-catalog command.
type ClientMedia struct {
	ID           int64     `json:"id"`
	StaffMediaID int64     `json:"staff_media_id"`
	Name         string    `json:"name"`
	Type         MediaType `json:"media_type"`
	IsAvailable  bool      `json:"is_available"`
	CanBorrow    bool      `json:"can_borrow"`
	Description  string    `json:"description,omitempty"`
	Detail       string    `json:"detail,omitempty"`
}

// BorrowRecord is the ledger entry linking a user to a media item for a
// bounded loan period.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	Ref        string     `json:"ref"` // Public ULID reference
	UserID     int64      `json:"user_id"`
	MediaID    int64      `json:"media_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	IsReturned bool       `json:"is_returned"`
}

// IsOverdue reports whether the loan is active and past its due date.
func (b *BorrowRecord) IsOverdue(now time.Time) bool {
	return !b.IsReturned && b.DueDate.Before(now)
}

// Loan is a borrow record joined with its media item, used by the
// dashboard and borrow listing endpoints.
type Loan struct {
	BorrowRecord
	MediaName string    `json:"media_name"`
	MediaType MediaType `json:"media_type"`
	Username  string    `json:"username"`
	IsLate    bool      `json:"is_late"`
}

// MediaFilter narrows the staff catalog listing.
type MediaFilter struct {
	Available      *bool  // nil means unset
	TypeContains   string // substring match on media_type
	OnlyBorrowable bool
	Page           int // 1-based
}

// Page wraps a paginated result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Info represents general information about the service.
type Info struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}

// MediaCreatePayload is used for the POST /api/media request.
type MediaCreatePayload struct {
	Name        string    `json:"name"`
	Type        MediaType `json:"media_type"`
	IsAvailable *bool     `json:"is_available,omitempty"`
	CanBorrow   *bool     `json:"can_borrow,omitempty"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Producer    string    `json:"producer,omitempty"`
	Artist      string    `json:"artist,omitempty"`
	Creators    string    `json:"creators,omitempty"`
	GameType    string    `json:"game_type,omitempty"`
}

// MediaUpdatePayload is used for the PUT /api/media/{id} request.
// Pointer fields distinguish "not provided" from zero values.
type MediaUpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	CanBorrow   *bool   `json:"can_borrow,omitempty"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	Producer    *string `json:"producer,omitempty"`
	Artist      *string `json:"artist,omitempty"`
	Creators    *string `json:"creators,omitempty"`
	GameType    *string `json:"game_type,omitempty"`
}

// SignupRequest is the public POST /api/signup body. New accounts always
// get the client role.
type SignupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// MemberCreatePayload is used for the POST /api/members request.
type MemberCreatePayload struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// MemberUpdatePayload is used for the PUT /api/members/{id} request.
// Pointer fields distinguish "not provided" from zero values.
type MemberUpdatePayload struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// ProfileUpdatePayload is used for the PATCH /api/me request.
type ProfileUpdatePayload struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// BorrowRequest is the POST /api/media/{id}/borrow body. DueDate is an
// ISO date (YYYY-MM-DD); empty means the default loan period.
type BorrowRequest struct {
	DueDate string `json:"due_date,omitempty"`
}

// ReturnRequest is the POST /api/borrows/{ref}/return body. MediaID is the
// item physically handed back, checked against the record.
type ReturnRequest struct {
	MediaID int64 `json:"media_id"`
}

// ClientDashboard is the payload of GET /api/dashboard/client.
type ClientDashboard struct {
	Loans          []Loan  `json:"loans"`
	BorrowableList []Media `json:"borrowable_media"`
	Message        string  `json:"message,omitempty"`
}

// StaffDashboard is the payload of GET /api/dashboard/staff.
type StaffDashboard struct {
	CurrentLoans []Loan      `json:"current_loans"`
	OverdueLoans []Loan      `json:"overdue_loans"`
	Catalog      Page[Media] `json:"catalog"`
}
