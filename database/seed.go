// seed.go - One-time insertion of the initial catalog

package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"go-ebook-store/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed_books.yaml
var seedBooksYAML []byte

// InitialBooks returns the fixed catalog used to seed an empty store.
func InitialBooks() ([]models.Book, error) {
	var books []models.Book
	if err := yaml.Unmarshal(seedBooksYAML, &books); err != nil {
		return nil, fmt.Errorf("parse seed books: %w", err)
	}
	return books, nil
}

// Seeder inserts the initial catalog at most once per process.
// The check-and-insert runs under mu, and done is set after the first
// attempt whatever its outcome.
type Seeder struct {
	mu   sync.Mutex
	done bool
}

// Seed inserts InitialBooks when the catalog is empty and returns how many
// books were inserted. Later calls are no-ops.
func (s *Seeder) Seed(ctx context.Context, db *gorm.DB) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return 0, nil
	}
	s.done = true

	books, err := InitialBooks()
	if err != nil {
		return 0, err
	}
	inserted := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Book{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		if count > 0 { // Catalog already populated; leave it alone
			return nil
		}
		if err := tx.Create(&books).Error; err != nil {
			return fmt.Errorf("insert seed books: %w", err)
		}
		inserted = len(books)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		slog.Info("catalog seeded", "books", inserted)
	}
	return inserted, nil
}
