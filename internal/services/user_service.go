// filepath: internal/services/user_service.go
package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"mediatheque/internal/config"
	"mediatheque/internal/logging"
	"mediatheque/internal/models"
	"mediatheque/internal/repository"
)

// Compile-time check to ensure the interface is implemented.
var _ UserService = (*userService)(nil)

// userService handles business logic for user and member management.
type userService struct {
	Repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *userService {
	return &userService{Repo: repo}
}

// GetUserByUsername retrieves a user by their username.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	return s.Repo.GetUserByUsername(username)
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(id int64) (*models.User, error) {
	return s.Repo.GetUserByID(id)
}

// Signup creates a new client-role account from the public signup form.
func (s *userService) Signup(req models.SignupRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.Repo.CreateUser(&repository.UserCreateArgs{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleClient,
		IsActive:  true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		logging.Log.Errorf("UserService: signup failed for '%s': %v", req.Username, err)
		return nil, fmt.Errorf("failed to create account")
	}
	return user, nil
}

// UpdateProfile lets a user edit their own profile, or an admin edit any
// profile. Role changes go through UpdateMember, not here.
func (s *userService) UpdateProfile(actor *models.User, targetID int64, payload models.ProfileUpdatePayload) (*models.User, error) {
	if actor.ID != targetID && actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.Repo.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated := *user
	if payload.FirstName != nil {
		updated.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		updated.LastName = *payload.LastName
	}
	if payload.Email != nil {
		updated.Email = *payload.Email
	}

	if err := s.Repo.UpdateUser(&updated); err != nil {
		logging.Log.Errorf("UserService: failed to update profile for user %d: %v", targetID, err)
		return nil, fmt.Errorf("failed to update profile")
	}

	if payload.Password != nil {
		if *payload.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", ErrValidation)
		}
		if err := s.Repo.UpdateUserPassword(updated.Username, *payload.Password); err != nil {
			return nil, fmt.Errorf("failed to update password")
		}
	}

	return s.Repo.GetUserByID(targetID)
}

// GetMembers retrieves one page of members.
func (s *userService) GetMembers(page int) (models.Page[models.User], error) {
	return s.Repo.GetUsers(page)
}

// CreateMember handles the logic for creating a new member account.
func (s *userService) CreateMember(args repository.UserCreateArgs) (*models.User, error) {
	if args.Username == "" || args.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if !args.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, args.Role)
	}

	logging.Log.Debugf("UserService: Attempting to create member '%s' (%s)", args.Username, args.Role)
	created, err := s.Repo.CreateUser(&args)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		logging.Log.Errorf("UserService: Failed to create member '%s': %v", args.Username, err)
		return nil, fmt.Errorf("failed to create member")
	}
	return created, nil
}

// UpdateMember handles the logic for updating a member's profile, role or
// password. Removing the last admin's role is rejected.
func (s *userService) UpdateMember(id int64, payload models.MemberUpdatePayload) (*models.User, error) {
	original, err := s.Repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if payload.Role != nil && !payload.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, *payload.Role)
	}

	// Prevent removing the last admin's role.
	if payload.Role != nil && original.Role == models.RoleAdmin && *payload.Role != models.RoleAdmin {
		admins, err := s.Repo.GetUsersByRole(models.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to check for other admins")
		}
		if len(admins) == 1 && admins[0].ID == original.ID {
			return nil, fmt.Errorf("%w: cannot remove the last admin's role", ErrConflict)
		}
	}

	updated := *original
	if payload.Username != nil {
		if *payload.Username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		updated.Username = *payload.Username
	}
	if payload.FirstName != nil {
		updated.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		updated.LastName = *payload.LastName
	}
	if payload.Email != nil {
		updated.Email = *payload.Email
	}
	if payload.Role != nil {
		updated.Role = *payload.Role
	}
	if payload.IsActive != nil {
		updated.IsActive = *payload.IsActive
	}

	if err := s.Repo.UpdateUser(&updated); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		logging.Log.Errorf("UserService: failed to update member %d: %v", id, err)
		return nil, fmt.Errorf("failed to update member")
	}

	if payload.Password != nil && *payload.Password != "" {
		if err := s.Repo.UpdateUserPassword(updated.Username, *payload.Password); err != nil {
			return nil, fmt.Errorf("failed to update password")
		}
	}

	return s.Repo.GetUserByID(id)
}

// DeleteMember handles the logic for deleting a member account. Deleting
// the last admin is rejected.
func (s *userService) DeleteMember(id int64) error {
	user, err := s.Repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}

	if user.Role == models.RoleAdmin {
		admins, err := s.Repo.GetUsersByRole(models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("failed to check for other admins")
		}
		if len(admins) == 1 {
			return fmt.Errorf("%w: cannot delete the last admin user", ErrConflict)
		}
	}

	if err := s.Repo.DeleteUser(id); err != nil {
		logging.Log.Errorf("UserService: failed to delete member %d: %v", id, err)
		return fmt.Errorf("failed to delete member")
	}
	return nil
}

// InitializeAdminUser ensures the 'admin' user exists on startup and
// handles password resets.
func (s *userService) InitializeAdminUser(cfg *config.Config) error {
	adminExists, err := s.Repo.UserExists("admin")
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	if !adminExists {
		return s.createAdminUser(cfg.AdminPassword)
	}

	if cfg.ResetAdminPassword {
		return s.resetAdminPassword(cfg.AdminPassword)
	}

	return nil
}

// createAdminUser creates the initial 'admin' user.
func (s *userService) createAdminUser(password string) error {
	if password == "" {
		password = generateRandomPassword(10)
		logging.Log.Infof("No admin password provided. Generated a random password for 'admin': %s", password)
	}

	args := &repository.UserCreateArgs{
		Username: "admin",
		Password: password,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if _, err := s.Repo.CreateUser(args); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logging.Log.Info("Admin user created successfully.")
	return nil
}

// resetAdminPassword updates the admin's password based on startup flags.
func (s *userService) resetAdminPassword(password string) error {
	if password == "" {
		return fmt.Errorf("cannot reset admin password: --reset_pw is true but no --password or MEDIATHEQUE_PASSWORD was provided")
	}
	if err := s.Repo.UpdateUserPassword("admin", password); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	logging.Log.Info("Admin password has been reset.")
	return nil
}

// generateRandomPassword creates a cryptographically secure random password.
func generateRandomPassword(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		logging.Log.Fatalf("Failed to generate random password: %v", err)
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b)
}
