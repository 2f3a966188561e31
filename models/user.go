// user.go - Defines the User model for the database

package models // Declares the package name

import "time"

// Default values applied to new accounts.
const (
	RoleCustomer = "Customer" // Every self-registered account is a customer
	StatusActive = "Active"   // Accounts start active; nothing deactivates them yet
)

type User struct { // User struct represents a registered customer
	ID           uint      `gorm:"primaryKey"`                    // Unique user ID (primary key)
	Name         string    `gorm:"size:100;not null"`             // Display name
	Email        string    `gorm:"size:100;uniqueIndex;not null"` // User's email (must be unique, cannot be null)
	PasswordHash string    `gorm:"size:200;not null"`             // bcrypt hash, never the raw password
	Role         string    `gorm:"size:20;default:'Customer'"`    // Account role
	Status       string    `gorm:"size:20;default:'Active'"`      // Account status
	CreatedAt    time.Time // Set by gorm on insert
}
