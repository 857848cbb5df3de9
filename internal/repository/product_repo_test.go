package repository

import (
	"testing"
	"time"

	"pharmastock/internal/model"
	"pharmastock/internal/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo ProductRepository) []model.Product {
	t.Helper()
	inn := "Paracétamol"
	products := []model.Product{
		testdb.Product("Doliprane", 10, model.NewDate(2026, time.December, 1)),
		testdb.Product("Avène Cold Cream", 4, model.NewDate(2027, time.March, 1)),
		testdb.Product("Efferalgan", 7, model.NewDate(2026, time.June, 1)),
	}
	products[0].INN = &inn
	products[1].Category = model.CategoryParapharmacie
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
		require.NotEqual(t, uuid.Nil, products[i].ID)
	}
	return products
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.CommercialName
	}
	return out
}

func TestProductRepo_FindAll(t *testing.T) {
	repo := NewProductRepo(testdb.Open(t))
	seed(t, repo)
	gel := testdb.Product("Gel 50%_x", 1, model.NewDate(2027, time.January, 1))
	gel.Category = model.CategoryParapharmacie
	require.NoError(t, repo.Create(&gel))

	testCases := []struct {
		name     string
		filter   ProductFilter
		expected []string
	}{
		{"no filter", ProductFilter{}, []string{"Avène Cold Cream", "Doliprane", "Efferalgan", "Gel 50%_x"}},
		{"name search is case insensitive", ProductFilter{Query: "DOLI"}, []string{"Doliprane"}},
		{"search on INN", ProductFilter{Query: "paracé"}, []string{"Doliprane"}},
		{"search on lot number", ProductFilter{Query: "lot-effer"}, []string{"Efferalgan"}},
		{"category", ProductFilter{Category: model.CategoryParapharmacie}, []string{"Avène Cold Cream", "Gel 50%_x"}},
		{"query and category", ProductFilter{Query: "doli", Category: model.CategoryParapharmacie}, []string{}},
		{"blank query", ProductFilter{Query: "   "}, []string{"Avène Cold Cream", "Doliprane", "Efferalgan", "Gel 50%_x"}},
		{"underscore is literal", ProductFilter{Query: "_"}, []string{"Gel 50%_x"}},
		{"percent is literal", ProductFilter{Query: "%"}, []string{"Gel 50%_x"}},
		{"backslash is literal", ProductFilter{Query: `\`}, []string{}},
		{"wildcards next to text", ProductFilter{Query: "l_5"}, []string{}},
		{"accented query folds in Go", ProductFilter{Query: "AVÈNE"}, []string{"Avène Cold Cream"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			products, err := repo.FindAll(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(products))
		})
	}
}

func TestProductRepo_FindByID(t *testing.T) {
	repo := NewProductRepo(testdb.Open(t))
	products := seed(t, repo)

	found, err := repo.FindByID(products[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Efferalgan", found.CommercialName)
	assert.Equal(t, "2026-06-01", found.ExpirationDate.String())

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepo_UpdateAndDelete(t *testing.T) {
	repo := NewProductRepo(testdb.Open(t))
	products := seed(t, repo)

	p := products[0]
	p.StockQuantity = 42
	p.INN = nil
	require.NoError(t, repo.Update(&p))

	found, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, found.StockQuantity)
	assert.Nil(t, found.INN)

	require.NoError(t, repo.Delete(p.ID))
	_, err = repo.FindByID(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, repo.Delete(p.ID), ErrProductNotFound, "second delete reports not found")
}
