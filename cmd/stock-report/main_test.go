package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pharmastock/internal/dashboard"
	"pharmastock/internal/expiry"
	"pharmastock/internal/model"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(n int) *int { return &n }

func sampleProducts() []model.Product {
	price := decimal.RequireFromString("195")
	return []model.Product{
		{CommercialName: "Doliprane", Category: model.CategoryMedicament, UnitPrice: &price, StockQuantity: 5, LotNumber: "L1", ExpirationDate: model.NewDate(2026, time.February, 1), DaysRemaining: days(10)},
		{CommercialName: "Avène", Category: model.CategoryParapharmacie, StockQuantity: 3, LotNumber: "L2", ExpirationDate: model.NewDate(2027, time.February, 1), DaysRemaining: days(400)},
		{CommercialName: "Spasfon", Category: model.CategoryMedicament, StockQuantity: 2, LotNumber: "L3", ExpirationDate: model.NewDate(2026, time.January, 1), DaysRemaining: days(-1)},
	}
}

func TestRiskLabel(t *testing.T) {
	products := sampleProducts()
	assert.Equal(t, "10 j !", riskLabel(products[0]))
	assert.Equal(t, "400 j", riskLabel(products[1]))
	assert.Equal(t, "Périmé", riskLabel(products[2]))
	assert.Equal(t, "-", riskLabel(model.Product{}))
}

func TestPrintReport(t *testing.T) {
	products := sampleProducts()
	state := dashboard.State{
		Products: products,
		Expiring: products[:1],
		Stats:    expiry.Summarize(products),
	}

	var buf bytes.Buffer
	printReport(&buf, state)

	out := buf.String()
	assert.Contains(t, out, "Stock total : 10 boîtes")
	assert.Contains(t, out, "Proches d'expiration : 1")
	assert.Contains(t, out, "Produits à moins de 6 mois")
	assert.Contains(t, out, "Spasfon")

	buf.Reset()
	printReport(&buf, dashboard.State{})
	assert.Contains(t, buf.String(), "Aucun produit.")
	assert.NotContains(t, buf.String(), "Produits à moins de 6 mois")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.csv")

	require.NoError(t, writeCSV(path, sampleProducts()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var rows []*csvRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))

	require.Len(t, rows, 3)
	assert.Equal(t, "Doliprane", rows[0].CommercialName)
	assert.Equal(t, "195.00", rows[0].UnitPrice)
	assert.Equal(t, "", rows[0].SecondPrice)
	assert.Equal(t, "2026-02-01", rows[0].ExpirationDate)
	assert.Equal(t, "AT_RISK", rows[0].Risk)
	assert.Equal(t, "EXPIRED", rows[2].Risk)
	assert.Equal(t, "-1", rows[2].DaysRemaining)
}
