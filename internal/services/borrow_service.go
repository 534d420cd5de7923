// filepath: internal/services/borrow_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"

	"github.com/oklog/ulid/v2"
)

// MaxBorrowDurationDays is the default and maximum loan period.
const MaxBorrowDurationDays = 7

// MaxActiveBorrows is the per-user limit of simultaneous open loans.
const MaxActiveBorrows = 3

// Compile-time check to ensure the interface is implemented.
var _ BorrowService = (*borrowService)(nil)

// borrowService decides whether a user may borrow an item and applies the
// state transitions.
type borrowService struct {
	Repo *repository.Repository
	now  func() time.Time
}

// NewBorrowService creates a new BorrowService.
func NewBorrowService(repo *repository.Repository) *borrowService {
	return &borrowService{Repo: repo, now: time.Now}
}

// CanBorrow checks the per-user borrowing rules. It returns nil when the
// user may open another loan, ErrBorrowLimit when they hold the maximum
// number of active loans, and ErrOverdueLoans when any active loan is
// past due.
func (s *borrowService) CanBorrow(user *models.User) error {
	active, err := s.Repo.CountActiveBorrows(user.ID)
	if err != nil {
		return fmt.Errorf("failed to count active borrows: %w", err)
	}
	if active >= MaxActiveBorrows {
		return ErrBorrowLimit
	}

	overdue, err := s.Repo.HasOverdueBorrows(user.ID, s.now())
	if err != nil {
		return fmt.Errorf("failed to check overdue borrows: %w", err)
	}
	if overdue {
		return ErrOverdueLoans
	}
	return nil
}

// IsBorrowable checks the per-item borrowing rules: the item must be
// available, flagged borrowable, not a board game, not already on loan,
// and the user's role must allow borrowing.
func (s *borrowService) IsBorrowable(media *models.Media, user *models.User) bool {
	if media.Type == models.MediaTypeBoardGame {
		return false
	}
	if !media.IsAvailable || !media.CanBorrow {
		return false
	}
	if user.Role != models.RoleClient && user.Role != models.RoleStaff {
		return false
	}
	onLoan, err := s.Repo.HasActiveBorrowForMedia(media.ID)
	if err != nil {
		logging.Log.Errorf("IsBorrowable: failed to check active loans for media %d: %v", media.ID, err)
		return false
	}
	return !onLoan
}

// parseDueDate validates the requested due date. An empty value defaults
// to the maximum loan period. The date must fall within
// [today, today + MaxBorrowDurationDays].
func (s *borrowService) parseDueDate(requested string) (time.Time, error) {
	now := s.now()
	if requested == "" {
		return now.AddDate(0, 0, MaxBorrowDurationDays), nil
	}

	due, err := time.Parse("2006-01-02", requested)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid due date %q, expected YYYY-MM-DD", ErrValidation, requested)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())

	if due.Before(today) {
		return time.Time{}, fmt.Errorf("%w: due date cannot be in the past", ErrValidation)
	}
	if due.After(today.AddDate(0, 0, MaxBorrowDurationDays)) {
		return time.Time{}, fmt.Errorf("%w: due date cannot be more than %d days ahead", ErrValidation, MaxBorrowDurationDays)
	}
	return due, nil
}

// Borrow opens a loan for the user on the given media item. The ledger
// write and the availability flip happen in one database transaction.
func (s *borrowService) Borrow(user *models.User, mediaID int64, dueDate string) (*models.BorrowRecord, error) {
	due, err := s.parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	media, err := s.Repo.GetMedia(mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.IsBorrowable(media, user) {
		return nil, ErrNotBorrowable
	}
	if err := s.CanBorrow(user); err != nil {
		return nil, err
	}

	record := &models.BorrowRecord{
		Ref:        ulid.Make().String(),
		UserID:     user.ID,
		MediaID:    media.ID,
		BorrowDate: s.now(),
		DueDate:    due,
	}

	created, err := s.Repo.CreateBorrow(record)
	if err != nil {
		if errors.Is(err, repository.ErrMediaOnLoan) {
			// Lost the race against a concurrent borrow.
			return nil, ErrNotBorrowable
		}
		logging.Log.Errorf("Borrow: failed to create loan for user '%s' on media %d: %v", user.Username, mediaID, err)
		return nil, fmt.Errorf("failed to create loan")
	}

	logging.Log.Infof("User '%s' borrowed media '%s' (due %s)", user.Username, media.Name, due.Format("2006-01-02"))
	return created, nil
}

// Return closes a loan. The submitted media item must match the record,
// and a record can only be closed once.
func (s *borrowService) Return(ref string, submittedMediaID int64) (*models.BorrowRecord, error) {
	record, err := s.Repo.GetBorrowByRef(ref)
	if err != nil {
		if errors.Is(err, repository.ErrBorrowNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if record.MediaID != submittedMediaID {
		return nil, ErrMediaMismatch
	}
	if record.IsReturned {
		return nil, ErrAlreadyReturned
	}

	closed, err := s.Repo.CloseBorrow(record.ID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyReturned) {
			return nil, ErrAlreadyReturned
		}
		logging.Log.Errorf("Return: failed to close loan %s: %v", ref, err)
		return nil, fmt.Errorf("failed to close loan")
	}

	logging.Log.Infof("Loan %s returned (media %d)", ref, closed.MediaID)
	return closed, nil
}

// GetLoan retrieves a single loan with its media and user details.
func (s *borrowService) GetLoan(ref string) (*models.Loan, error) {
	loan, err := s.Repo.GetLoanByRef(ref, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrBorrowNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListLoans retrieves all loans, optionally only the active ones.
func (s *borrowService) ListLoans(activeOnly bool) ([]models.Loan, error) {
	return s.Repo.GetLoans(repository.LoanFilter{ActiveOnly: activeOnly, Now: s.now()})
}

// ClientDashboard assembles the client view: the user's active loans plus
// the borrowable catalog.
func (s *borrowService) ClientDashboard(user *models.User) (*models.ClientDashboard, error) {
	loans, err := s.Repo.GetLoans(repository.LoanFilter{
		UserID:     user.ID,
		ActiveOnly: true,
		Now:        s.now(),
	})
	if err != nil {
		return nil, err
	}

	borrowable, err := s.Repo.GetBorrowableMedia()
	if err != nil {
		return nil, err
	}

	dashboard := &models.ClientDashboard{
		Loans:          loans,
		BorrowableList: borrowable,
	}
	if len(loans) == 0 {
		dashboard.Message = "No active loan."
	}
	return dashboard, nil
}

// StaffDashboard assembles the staff view: every current loan in the
// library, the overdue subset, and one page of the full catalog.
func (s *borrowService) StaffDashboard(user *models.User, page int) (*models.StaffDashboard, error) {
	now := s.now()

	current, err := s.Repo.GetLoans(repository.LoanFilter{
		CurrentOnly: true,
		Now:         now,
	})
	if err != nil {
		return nil, err
	}

	overdue, err := s.Repo.GetLoans(repository.LoanFilter{
		OverdueOnly: true,
		Now:         now,
	})
	if err != nil {
		return nil, err
	}

	catalog, err := s.Repo.GetMediaList(models.MediaFilter{Page: page})
	if err != nil {
		return nil, err
	}

	return &models.StaffDashboard{
		CurrentLoans: current,
		OverdueLoans: overdue,
		Catalog:      catalog,
	}, nil
}
