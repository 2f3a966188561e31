// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"fmt"
	"log"
	"os"
	"time"

	"go-ebook-store/models" // Storefront models

	"gorm.io/driver/postgres" // Postgres driver for GORM
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB // Global variable to hold the database connection (pointer to gorm.DB)

// Connect opens the database, runs migrations and stores the handle in DB.
func Connect(driver, dsn string) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open opens a database handle for driver ("sqlite" or "postgres") and
// auto-migrates every storefront table.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver { // Pick the GORM dialector
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true, // Surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Auto-migrate the storefront models (create tables if needed)
	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.Purchase{}, &models.HistoryEntry{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
