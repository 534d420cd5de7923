// filepath: internal/repository/user_repo.go
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mediatheque/internal/logging"
	"mediatheque/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const userColumns = "id, username, first_name, last_name, email, password_hash, role, is_active"

// UserCreateArgs is a struct used for creating users in the database layer.
// It is separate from models.User to include the plaintext password.
type UserCreateArgs struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
	IsActive  bool
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.Email, &user.PasswordHash, &user.Role, &user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their username, using a cache for performance.
func (s *Repository) GetUserByUsername(username string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_name_%s", username)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByUsername: CACHE MISS for '%s'. Querying DB.", username)
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = ?", userColumns)
	user, err := scanUser(s.DB.QueryRow(query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", user.ID), user, 5*time.Minute)
	return user, nil
}

// GetUserByID retrieves a user by their ID, using a cache for performance.
func (s *Repository) GetUserByID(id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByID: CACHE MISS for ID %d. Querying DB.", id)
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userColumns)
	user, err := scanUser(s.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_name_%s", user.Username), user, 5*time.Minute)
	return user, nil
}

// UserExists checks if a user with the given username exists.
func (s *Repository) UserExists(username string) (bool, error) {
	_, err := s.GetUserByUsername(username)
	if err != nil {
		if err == ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateUser creates a new user in the database.
func (s *Repository) CreateUser(args *UserCreateArgs) (*models.User, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", args.Username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username, first_name, last_name, email, password_hash, role, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.DB.Exec(query,
		args.Username, args.FirstName, args.LastName, args.Email,
		string(hashedPassword), args.Role, args.IsActive,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateUser: User '%s' created with ID %d", args.Username, id)

	return &models.User{
		ID:           id,
		Username:     args.Username,
		FirstName:    args.FirstName,
		LastName:     args.LastName,
		Email:        args.Email,
		PasswordHash: string(hashedPassword),
		Role:         args.Role,
		IsActive:     args.IsActive,
	}, nil
}

// UpdateUser updates a user's profile fields and role.
func (s *Repository) UpdateUser(user *models.User) error {
	query := `
		UPDATE users
		SET username = ?, first_name = ?, last_name = ?, email = ?, role = ?, is_active = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query,
		user.Username, user.FirstName, user.LastName, user.Email,
		user.Role, user.IsActive, user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return ErrUserExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	s.invalidateUserCache(user.ID, user.Username)
	return nil
}

// UpdateUserPassword updates a single user's password.
func (s *Repository) UpdateUserPassword(username, password string) error {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}

	logging.Log.Debugf("UpdateUserPassword: Hashing new password for user '%s'", username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.DB.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), user.ID); err != nil {
		return err
	}

	s.invalidateUserCache(user.ID, user.Username)
	return nil
}

// GetUsers retrieves one page of users, ordered by username.
func (s *Repository) GetUsers(page int) (models.Page[models.User], error) {
	var result models.Page[models.User]
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return result, err
	}

	query := fmt.Sprintf("SELECT %s FROM users ORDER BY username LIMIT ? OFFSET ?", userColumns)
	rows, err := s.DB.Query(query, PageSize, (page-1)*PageSize)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return result, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	result.Items = users
	result.Page = page
	result.PageSize = PageSize
	result.TotalCount = total
	result.TotalPages = (total + PageSize - 1) / PageSize
	return result, nil
}

// GetUsersByRole retrieves all users with the given role.
func (s *Repository) GetUsersByRole(role models.Role) ([]models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE role = ?", userColumns)
	rows, err := s.DB.Query(query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// DeleteUser deletes a user by their ID.
func (s *Repository) DeleteUser(id int64) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if _, err := s.DB.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return err
	}

	s.invalidateUserCache(user.ID, user.Username)
	return nil
}

func (s *Repository) invalidateUserCache(id int64, username string) {
	logging.Log.Debugf("Invalidating cache for user '%s' (ID: %d)", username, id)
	s.Cache.Delete(fmt.Sprintf("user_by_name_%s", username))
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", id))
}
