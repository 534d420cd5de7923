// filepath: internal/repository/borrow_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"

	"github.com/Masterminds/squirrel"
)

const borrowColumns = "id, ref, user_id, media_id, borrow_date, due_date, return_date, is_returned"

func scanBorrow(row interface{ Scan(...interface{}) error }) (*models.BorrowRecord, error) {
	var b models.BorrowRecord
	err := row.Scan(
		&b.ID, &b.Ref, &b.UserID, &b.MediaID,
		&b.BorrowDate, &b.DueDate, &b.ReturnDate, &b.IsReturned,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBorrow opens a loan: it inserts the borrow record and flips the
// media item to unavailable in a single transaction. The guarded UPDATE
// (is_available = 1 required) resolves concurrent borrow attempts on the
// same item at the database level.
func (s *Repository) CreateBorrow(b *models.BorrowRecord) (*models.BorrowRecord, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE media SET is_available = 0 WHERE id = ? AND is_available = 1",
		b.MediaID,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrMediaOnLoan
	}

	query := `
		INSERT INTO borrow_records (ref, user_id, media_id, borrow_date, due_date, is_returned)
		VALUES (?, ?, ?, ?, ?, 0)
	`
	result, err := tx.Exec(query, b.Ref, b.UserID, b.MediaID, b.BorrowDate, b.DueDate)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	b.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Log.Debugf("CreateBorrow: Loan %s created (user %d, media %d)", b.Ref, b.UserID, b.MediaID)
	return b, nil
}

// CloseBorrow closes a loan: it marks the record returned and flips the
// media item back to available, atomically. The guarded UPDATE on
// is_returned makes a second return of the same record fail without
// touching availability again.
func (s *Repository) CloseBorrow(id int64, returnedAt time.Time) (*models.BorrowRecord, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE borrow_records SET is_returned = 1, return_date = ? WHERE id = ? AND is_returned = 0",
		returnedAt, id,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish missing from already closed.
		var exists int
		if err := tx.QueryRow("SELECT COUNT(*) FROM borrow_records WHERE id = ?", id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, ErrBorrowNotFound
		}
		return nil, ErrAlreadyReturned
	}

	query := fmt.Sprintf("SELECT %s FROM borrow_records WHERE id = ?", borrowColumns)
	b, err := scanBorrow(tx.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec("UPDATE media SET is_available = 1 WHERE id = ?", b.MediaID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Log.Debugf("CloseBorrow: Loan %s returned (media %d)", b.Ref, b.MediaID)
	return b, nil
}

// GetBorrowByRef retrieves a borrow record by its public reference.
func (s *Repository) GetBorrowByRef(ref string) (*models.BorrowRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM borrow_records WHERE ref = ?", borrowColumns)
	b, err := scanBorrow(s.DB.QueryRow(query, ref))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBorrowNotFound
		}
		return nil, err
	}
	return b, nil
}

// CountActiveBorrows returns the number of unreturned records held by a user.
func (s *Repository) CountActiveBorrows(userID int64) (int, error) {
	var n int
	err := s.DB.QueryRow(
		"SELECT COUNT(*) FROM borrow_records WHERE user_id = ? AND is_returned = 0",
		userID,
	).Scan(&n)
	return n, err
}

// HasOverdueBorrows reports whether a user holds an unreturned record past
// its due date.
func (s *Repository) HasOverdueBorrows(userID int64, now time.Time) (bool, error) {
	var n int
	err := s.DB.QueryRow(
		"SELECT COUNT(*) FROM borrow_records WHERE user_id = ? AND is_returned = 0 AND due_date < ?",
		userID, now,
	).Scan(&n)
	return n > 0, err
}

// HasActiveBorrowForMedia reports whether the media item is currently on loan.
func (s *Repository) HasActiveBorrowForMedia(mediaID int64) (bool, error) {
	var n int
	err := s.DB.QueryRow(
		"SELECT COUNT(*) FROM borrow_records WHERE media_id = ? AND is_returned = 0",
		mediaID,
	).Scan(&n)
	return n > 0, err
}

// GetLoanByRef retrieves a single borrow record joined with its media item
// and user.
func (s *Repository) GetLoanByRef(ref string, now time.Time) (*models.Loan, error) {
	query := `
		SELECT b.id, b.ref, b.user_id, b.media_id, b.borrow_date,
		       b.due_date, b.return_date, b.is_returned,
		       m.name, m.media_type, u.username
		FROM borrow_records b
		JOIN media m ON m.id = b.media_id
		JOIN users u ON u.id = b.user_id
		WHERE b.ref = ?
	`
	var l models.Loan
	err := s.DB.QueryRow(query, ref).Scan(
		&l.ID, &l.Ref, &l.UserID, &l.MediaID, &l.BorrowDate,
		&l.DueDate, &l.ReturnDate, &l.IsReturned,
		&l.MediaName, &l.MediaType, &l.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBorrowNotFound
		}
		return nil, err
	}
	l.IsLate = l.IsOverdue(now)
	return &l, nil
}

// LoanFilter narrows a loan listing.
type LoanFilter struct {
	UserID      int64 // 0 means any user
	ActiveOnly  bool
	OverdueOnly bool
	CurrentOnly bool // active and not yet due
	Now         time.Time
}

// GetLoans retrieves borrow records joined with their media item and user,
// newest first.
func (s *Repository) GetLoans(filter LoanFilter) ([]models.Loan, error) {
	base := s.Builder.
		Select("b.id", "b.ref", "b.user_id", "b.media_id", "b.borrow_date",
			"b.due_date", "b.return_date", "b.is_returned",
			"m.name", "m.media_type", "u.username").
		From("borrow_records b").
		Join("media m ON m.id = b.media_id").
		Join("users u ON u.id = b.user_id")

	if filter.UserID != 0 {
		base = base.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.ActiveOnly || filter.OverdueOnly || filter.CurrentOnly {
		base = base.Where(squirrel.Eq{"b.is_returned": false})
	}
	if filter.OverdueOnly {
		base = base.Where(squirrel.Lt{"b.due_date": filter.Now})
	}
	if filter.CurrentOnly {
		base = base.Where(squirrel.GtOrEq{"b.due_date": filter.Now})
	}

	query, args, err := base.OrderBy("b.borrow_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]models.Loan, 0)
	for rows.Next() {
		var l models.Loan
		err := rows.Scan(
			&l.ID, &l.Ref, &l.UserID, &l.MediaID, &l.BorrowDate,
			&l.DueDate, &l.ReturnDate, &l.IsReturned,
			&l.MediaName, &l.MediaType, &l.Username,
		)
		if err != nil {
			return nil, err
		}
		l.IsLate = l.IsOverdue(filter.Now)
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
