// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"context"
	"time"

	"mediatheque/internal/config"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
	"mediatheque/internal/services"
	"mediatheque/internal/services/auth"

	"github.com/stretchr/testify/mock"
)

// nopAuditor discards audit events. Used by tests that do not assert on them.
type nopAuditor struct{}

var _ services.Auditor = (*nopAuditor)(nil)

func (a *nopAuditor) Log(ctx context.Context, action, actor, resource string, details map[string]interface{}) {
}

// --- MOCK INFO SERVICE ---
type MockInfoService struct {
	mock.Mock
}

var _ services.InfoService = (*MockInfoService)(nil)

func (m *MockInfoService) GetInfo() models.Info {
	args := m.Called()
	return args.Get(0).(models.Info)
}

// --- MOCK USER SERVICE ---
type MockUserService struct {
	mock.Mock
}

var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) Signup(req models.SignupRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(actor *models.User, targetID int64, payload models.ProfileUpdatePayload) (*models.User, error) {
	args := m.Called(actor, targetID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) GetMembers(page int) (models.Page[models.User], error) {
	args := m.Called(page)
	return args.Get(0).(models.Page[models.User]), args.Error(1)
}
func (m *MockUserService) CreateMember(cArgs repository.UserCreateArgs) (*models.User, error) {
	args := m.Called(cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) UpdateMember(id int64, payload models.MemberUpdatePayload) (*models.User, error) {
	args := m.Called(id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) DeleteMember(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockUserService) InitializeAdminUser(cfg *config.Config) error {
	args := m.Called(cfg)
	return args.Error(0)
}

// --- MOCK MEDIA SERVICE ---
type MockMediaService struct {
	mock.Mock
}

var _ services.MediaService = (*MockMediaService)(nil)

func (m *MockMediaService) CreateMedia(payload models.MediaCreatePayload) (*models.Media, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}
func (m *MockMediaService) GetMedia(id int64) (*models.Media, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}
func (m *MockMediaService) UpdateMedia(id int64, payload models.MediaUpdatePayload) (*models.Media, error) {
	args := m.Called(id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}
func (m *MockMediaService) DeleteMedia(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockMediaService) ListMedia(filter models.MediaFilter) (models.Page[models.Media], error) {
	args := m.Called(filter)
	return args.Get(0).(models.Page[models.Media]), args.Error(1)
}
func (m *MockMediaService) ListBorrowable(user *models.User) ([]models.Media, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Media), args.Error(1)
}

// --- MOCK BORROW SERVICE ---
type MockBorrowService struct {
	mock.Mock
}

var _ services.BorrowService = (*MockBorrowService)(nil)

func (m *MockBorrowService) CanBorrow(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *MockBorrowService) IsBorrowable(media *models.Media, user *models.User) bool {
	args := m.Called(media, user)
	return args.Bool(0)
}
func (m *MockBorrowService) Borrow(user *models.User, mediaID int64, dueDate string) (*models.BorrowRecord, error) {
	args := m.Called(user, mediaID, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRecord), args.Error(1)
}
func (m *MockBorrowService) Return(ref string, submittedMediaID int64) (*models.BorrowRecord, error) {
	args := m.Called(ref, submittedMediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BorrowRecord), args.Error(1)
}
func (m *MockBorrowService) GetLoan(ref string) (*models.Loan, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}
func (m *MockBorrowService) ListLoans(activeOnly bool) ([]models.Loan, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}
func (m *MockBorrowService) ClientDashboard(user *models.User) (*models.ClientDashboard, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientDashboard), args.Error(1)
}
func (m *MockBorrowService) StaffDashboard(user *models.User, page int) (*models.StaffDashboard, error) {
	args := m.Called(user, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffDashboard), args.Error(1)
}

// --- MOCK CATALOG SERVICE ---
type MockCatalogService struct {
	mock.Mock
}

var _ services.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ImportStaffCatalog() (int, int, error) {
	args := m.Called()
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockCatalogService) DisableBoardGames() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCatalogService) GetClientCatalog(borrowableOnly bool) ([]models.ClientMedia, error) {
	args := m.Called(borrowableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientMedia), args.Error(1)
}

// --- MOCK TOKEN SERVICE ---
type MockTokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateTokens(user *models.User) (string, string, error) {
	args := m.Called(user)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockTokenService) ValidateAccessToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockTokenService) Logout(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

// testHandlerDeps bundles the mocks behind a Handlers instance.
type testHandlerDeps struct {
	Info    *MockInfoService
	User    *MockUserService
	Media   *MockMediaService
	Borrow  *MockBorrowService
	Catalog *MockCatalogService
	Token   *MockTokenService
}

// newTestHandlers wires a Handlers instance with fresh mocks and a no-op
// auditor.
func newTestHandlers() (*Handlers, *testHandlerDeps) {
	deps := &testHandlerDeps{
		Info:    new(MockInfoService),
		User:    new(MockUserService),
		Media:   new(MockMediaService),
		Borrow:  new(MockBorrowService),
		Catalog: new(MockCatalogService),
		Token:   new(MockTokenService),
	}
	deps.Info.On("GetInfo").Return(models.Info{
		ServiceName: "mediatheque",
		Version:     "test",
		UptimeSince: time.Now(),
	})

	h := NewHandlers(
		deps.Info,
		deps.User,
		deps.Media,
		deps.Borrow,
		deps.Catalog,
		deps.Token,
		&nopAuditor{},
		&config.Config{},
	)
	return h, deps
}
