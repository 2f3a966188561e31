// catalog.go - Read access to the book catalog

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-ebook-store/models"

	"gorm.io/gorm"
)

// ErrBookNotFound is returned when a book ID does not exist.
var ErrBookNotFound = errors.New("book not found")

// Catalog queries Book rows.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog wraps db.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// All returns every book ordered by ID.
func (c *Catalog) All(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Find returns one book or ErrBookNotFound.
func (c *Catalog) Find(ctx context.Context, id uint) (models.Book, error) {
	var book models.Book
	err := c.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Book{}, ErrBookNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("find book %d: %w", id, err)
	}
	return book, nil
}

// FindMany returns the books among ids that exist, ordered by ID.
// Unknown IDs are skipped.
func (c *Catalog) FindMany(ctx context.Context, ids []uint) ([]models.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var books []models.Book
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	return books, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches term case-insensitively against title or author.
// No match yields an empty slice, not an error.
func (c *Catalog) Search(ctx context.Context, term string) ([]models.Book, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
	books := []models.Book{}
	err := c.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// Count returns the number of books in the catalog.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}
