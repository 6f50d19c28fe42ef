// Package users provides database operations for storefront users.
//
// Users are created by operators through the create-user command; the HTTP
// API only ever refers to them by id.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.CreateUser("alice", "alice@example.com")
package users

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// ErrUserExists is returned when the username or email is already taken.
var ErrUserExists = errors.New("user with this username or email already exists")

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user. Username and email are both required.
func (r *Repository) CreateUser(username, email string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}

	user := &entities.User{
		Username: username,
		Email:    email,
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
