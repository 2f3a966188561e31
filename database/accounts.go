// accounts.go - Registration and credential checks

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-ebook-store/models"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken is returned when registering an e-mail that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown e-mail and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = errors.New("password too long")
)

// Accounts stores users.
type Accounts struct {
	db *gorm.DB
}

// NewAccounts wraps db.
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account with a bcrypt-hashed password.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (models.User, error) {
	email = NormalizeEmail(email)
	db := a.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash password
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, ErrPasswordTooLong
	}
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Status:       models.StatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration of the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user matching email and password.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Count returns the number of registered users.
func (a *Accounts) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
