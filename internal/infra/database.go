package infra

import (
	"fmt"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, tunes the pool and
// runs AutoMigrate for the five catalog relations. Foreign keys created by
// AutoMigrate back the referential deletion guards (products → categories,
// sales/inventory/inventory_history → products).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the integration
// test suite against a throwaway Postgres container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Inventory{},
		&model.InventoryHistory{},
		&model.Sale{},
	)
}
