package database

import (
	"testing"
	"time"

	"pharmastock/internal/model"
	"pharmastock/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect(config.DBConfig{Driver: "sqlite", SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	price := decimal.RequireFromString("99.90")
	p := model.Product{
		CommercialName: "Smecta",
		Category:       model.CategoryMedicament,
		UnitPrice:      &price,
		LotNumber:      "S1",
		ExpirationDate: model.NewDate(2027, time.April, 30),
	}
	require.NoError(t, db.Create(&p).Error)

	var got model.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "2027-04-30", got.ExpirationDate.String())
	assert.True(t, price.Equal(*got.UnitPrice))
	assert.Nil(t, got.DaysRemaining)
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel("whatever"))
}
