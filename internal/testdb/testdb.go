// Package testdb opens throwaway SQLite databases for tests.
package testdb

import (
	"testing"
	"time"

	"pharmastock/internal/model"
	"pharmastock/pkg/config"
	"pharmastock/pkg/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database private to t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	db, err := database.Connect(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared",
		LogLevel:   "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Product returns a valid product expiring on exp.
func Product(name string, stock int, exp model.Date) model.Product {
	price := decimal.RequireFromString("150.00")
	return model.Product{
		CommercialName: name,
		Category:       model.CategoryMedicament,
		Form:           model.DefaultForm,
		UnitPrice:      &price,
		StockQuantity:  stock,
		LotNumber:      "LOT-" + name,
		ExpirationDate: exp,
	}
}

// DateIn returns the calendar date offset days after now.
func DateIn(now time.Time, offset int) model.Date {
	return model.DateOf(now.AddDate(0, 0, offset))
}
