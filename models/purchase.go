// purchase.go - Defines ownership (Purchase) and audit (HistoryEntry) records

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatusPaid is the only status checkout ever writes.
const PurchaseStatusPaid = "Paid"

// Purchase grants a user access to a book. Nothing prevents the same
// user from buying the same book twice.
type Purchase struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	BookID    uint   `gorm:"not null;index"`
	Book      *Book  `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Status    string `gorm:"size:20;default:'Paid'"`
	CreatedAt time.Time
}

// HistoryEntry is a denormalized, append-only record of a bought book.
// Title and price are copied by value so the entry survives catalog edits.
type HistoryEntry struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"size:200;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PurchasedAt time.Time       `gorm:"not null;index"`
}

// TableName keeps the table name short and stable.
func (HistoryEntry) TableName() string {
	return "history"
}
