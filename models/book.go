// book.go - Defines the Book catalog model

package models

import "github.com/shopspring/decimal"

// Book is a purchasable catalog entry. Rows are only written by catalog seeding.
type Book struct {
	ID      uint            `gorm:"primaryKey" yaml:"-"`
	Title   string          `gorm:"size:200;not null" yaml:"title"`
	Author  string          `gorm:"size:100;not null" yaml:"author"`
	Genre   string          `gorm:"size:50" yaml:"genre"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price >= 0" yaml:"price"`
	Cover   string          `gorm:"size:200" yaml:"cover"`    // Cover image file under /static/covers
	Preview string          `gorm:"type:text" yaml:"preview"` // Free preview text
	File    string          `gorm:"size:200" yaml:"file"`     // eBook file name inside the ebook directory
}

// SumPrices adds up the prices of the given books.
func SumPrices(books []Book) decimal.Decimal {
	total := decimal.Zero
	for _, b := range books {
		total = total.Add(b.Price)
	}
	return total
}
