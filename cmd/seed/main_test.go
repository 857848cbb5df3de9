package main

import (
	"testing"
	"time"

	"pharmastock/internal/expiry"
	"pharmastock/pkg/validator"

	"github.com/stretchr/testify/assert"
)

func TestDemoProductsAreValid(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	products := demoProducts(now)

	for _, p := range products {
		p.Normalize()
		assert.Empty(t, validator.ValidateStruct(&p), p.CommercialName)
	}

	expiry.Annotate(products, now)
	summary := expiry.Summarize(products)
	assert.Equal(t, 3, summary.AtRiskCount)
	assert.Equal(t, 1, summary.ExpiredCount)
}
