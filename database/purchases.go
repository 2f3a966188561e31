// purchases.go - Records checkouts and reads a user's purchases

package database

import (
	"context"
	"fmt"
	"time"

	"go-ebook-store/models"

	"gorm.io/gorm"
)

// Purchases records and lists purchases.
type Purchases struct {
	db *gorm.DB
}

// NewPurchases wraps db.
func NewPurchases(db *gorm.DB) *Purchases {
	return &Purchases{db: db}
}

// Record writes one Purchase and one HistoryEntry per book in a single
// transaction. Either every row is written or none is.
func (p *Purchases) Record(ctx context.Context, userID uint, books []models.Book, at time.Time) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, book := range books {
			purchase := models.Purchase{
				UserID: userID,
				BookID: book.ID,
				Status: models.PurchaseStatusPaid,
			}
			if err := tx.Create(&purchase).Error; err != nil {
				return fmt.Errorf("create purchase for book %d: %w", book.ID, err)
			}
			entry := models.HistoryEntry{
				UserID:      userID,
				Title:       book.Title,
				Price:       book.Price,
				PurchasedAt: at,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("create history for book %d: %w", book.ID, err)
			}
		}
		return nil
	})
}

// History returns a user's history entries, newest first.
func (p *Purchases) History(ctx context.Context, userID uint) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Library returns each book the user owns once, ordered by ID.
func (p *Purchases) Library(ctx context.Context, userID uint) ([]models.Book, error) {
	db := p.db.WithContext(ctx)
	owned := db.Model(&models.Purchase{}).Select("book_id").Where("user_id = ?", userID)
	books := []models.Book{}
	if err := db.Where("id IN (?)", owned).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return books, nil
}

// Owns reports whether the user has at least one purchase of bookID.
func (p *Purchases) Owns(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check ownership: %w", err)
	}
	return count > 0, nil
}

// CountPurchases returns the number of purchase rows for a user.
func (p *Purchases) CountPurchases(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := p.db.WithContext(ctx).Model(&models.Purchase{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count purchases: %w", err)
	}
	return count, nil
}
