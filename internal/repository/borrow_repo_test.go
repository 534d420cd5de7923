// filepath: internal/repository/borrow_repo_test.go
package repository

import (
	"testing"
	"time"

	"mediatheque/internal/models"

	"github.com/stretchr/testify/assert"
)

func openLoan(t *testing.T, repo *Repository, ref string, userID, mediaID int64, due time.Time) *models.BorrowRecord {
	t.Helper()
	record, err := repo.CreateBorrow(&models.BorrowRecord{
		Ref:        ref,
		UserID:     userID,
		MediaID:    mediaID,
		BorrowDate: time.Now(),
		DueDate:    due,
	})
	if err != nil {
		t.Fatalf("Failed to open loan %s: %v", ref, err)
	}
	return record
}

func TestCreateBorrow_FlipsAvailability(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_create.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "reader", models.RoleClient)
	media := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)

	record := openLoan(t, repo, "01REF0000000000000000000A", user.ID, media.ID, time.Now().AddDate(0, 0, 7))
	assert.NotZero(t, record.ID)

	reread, err := repo.GetMedia(media.ID)
	assert.NoError(t, err)
	assert.False(t, reread.IsAvailable)
}

func TestCreateBorrow_ConcurrentBorrowLosesRace(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_race.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "reader", models.RoleClient)
	other := mustCreateUser(t, repo, "rival", models.RoleClient)
	media := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)

	openLoan(t, repo, "01REF0000000000000000000A", user.ID, media.ID, time.Now().AddDate(0, 0, 7))

	// The guarded UPDATE rejects a second borrow of the same item.
	_, err := repo.CreateBorrow(&models.BorrowRecord{
		Ref:        "01REF0000000000000000000B",
		UserID:     other.ID,
		MediaID:    media.ID,
		BorrowDate: time.Now(),
		DueDate:    time.Now().AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrMediaOnLoan)
}

func TestCloseBorrow(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_close.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "reader", models.RoleClient)
	media := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)
	record := openLoan(t, repo, "01REF0000000000000000000A", user.ID, media.ID, time.Now().AddDate(0, 0, 7))

	closed, err := repo.CloseBorrow(record.ID, time.Now())
	assert.NoError(t, err)
	assert.True(t, closed.IsReturned)
	assert.NotNil(t, closed.ReturnDate)

	// The item is available again.
	reread, err := repo.GetMedia(media.ID)
	assert.NoError(t, err)
	assert.True(t, reread.IsAvailable)

	// Closing a second time is rejected.
	_, err = repo.CloseBorrow(record.ID, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyReturned)

	// Closing a record that never existed is a distinct error.
	_, err = repo.CloseBorrow(99999, time.Now())
	assert.ErrorIs(t, err, ErrBorrowNotFound)
}

func TestBorrowCounts(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_counts.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "reader", models.RoleClient)
	m1 := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)
	m2 := mustCreateMedia(t, repo, "Alien", models.MediaTypeDVD, true)

	openLoan(t, repo, "01REF0000000000000000000A", user.ID, m1.ID, time.Now().AddDate(0, 0, 7))
	// One loan already past due.
	openLoan(t, repo, "01REF0000000000000000000B", user.ID, m2.ID, time.Now().AddDate(0, 0, -1))

	n, err := repo.CountActiveBorrows(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	overdue, err := repo.HasOverdueBorrows(user.ID, time.Now())
	assert.NoError(t, err)
	assert.True(t, overdue)

	onLoan, err := repo.HasActiveBorrowForMedia(m1.ID)
	assert.NoError(t, err)
	assert.True(t, onLoan)
}

func TestGetLoans_Filters(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_loans.db")
	defer cleanup()

	alice := mustCreateUser(t, repo, "alice", models.RoleClient)
	bob := mustCreateUser(t, repo, "bob", models.RoleClient)
	m1 := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)
	m2 := mustCreateMedia(t, repo, "Alien", models.MediaTypeDVD, true)
	m3 := mustCreateMedia(t, repo, "Abbey Road", models.MediaTypeCD, true)

	now := time.Now()
	openLoan(t, repo, "01REF0000000000000000000A", alice.ID, m1.ID, now.AddDate(0, 0, 7))
	openLoan(t, repo, "01REF0000000000000000000B", alice.ID, m2.ID, now.AddDate(0, 0, -2))
	closed := openLoan(t, repo, "01REF0000000000000000000C", bob.ID, m3.ID, now.AddDate(0, 0, 7))
	_, err := repo.CloseBorrow(closed.ID, now)
	assert.NoError(t, err)

	all, err := repo.GetLoans(LoanFilter{Now: now})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.GetLoans(LoanFilter{ActiveOnly: true, Now: now})
	assert.NoError(t, err)
	assert.Len(t, active, 2)

	overdue, err := repo.GetLoans(LoanFilter{OverdueOnly: true, Now: now})
	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	assert.Equal(t, "Alien", overdue[0].MediaName)
	assert.True(t, overdue[0].IsLate)

	current, err := repo.GetLoans(LoanFilter{CurrentOnly: true, Now: now})
	assert.NoError(t, err)
	assert.Len(t, current, 1)
	assert.Equal(t, "Dune", current[0].MediaName)

	aliceLoans, err := repo.GetLoans(LoanFilter{UserID: alice.ID, Now: now})
	assert.NoError(t, err)
	assert.Len(t, aliceLoans, 2)
	for _, l := range aliceLoans {
		assert.Equal(t, "alice", l.Username)
	}
}

func TestGetLoanByRef(t *testing.T) {
	repo, cleanup := setupTestDB(t, "test_borrow_byref.db")
	defer cleanup()

	user := mustCreateUser(t, repo, "reader", models.RoleClient)
	media := mustCreateMedia(t, repo, "Dune", models.MediaTypeBook, true)
	openLoan(t, repo, "01REF0000000000000000000A", user.ID, media.ID, time.Now().AddDate(0, 0, 7))

	loan, err := repo.GetLoanByRef("01REF0000000000000000000A", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, "Dune", loan.MediaName)
	assert.Equal(t, "reader", loan.Username)
	assert.False(t, loan.IsLate)

	_, err = repo.GetLoanByRef("missing", time.Now())
	assert.ErrorIs(t, err, ErrBorrowNotFound)
}
