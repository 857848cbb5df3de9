// Package expiry classifies products by how close they are to their
// expiration date and computes the dashboard aggregates over a product list.
// Everything here is pure: no I/O, no hidden state.
package expiry

import (
	"time"

	"pharmastock/internal/model"
)

// AlertWindowDays is the upper bound, inclusive, of the AT_RISK window.
const AlertWindowDays = 183

type Risk string

const (
	RiskOK      Risk = "OK"
	RiskAtRisk  Risk = "AT_RISK"
	RiskExpired Risk = "EXPIRED"
)

// Summary holds the dashboard aggregates of a product list.
type Summary struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	AtRiskCount   int `json:"at_risk_count"`
	ExpiredCount  int `json:"expired_count"`
}

// Classify maps a days-remaining value to its risk. A nil value means the
// expiration is unknown and is treated as far in the future.
func Classify(daysRemaining *int) Risk {
	if daysRemaining == nil {
		return RiskOK
	}
	r := *daysRemaining
	switch {
	case r < 0:
		return RiskExpired
	case r <= AlertWindowDays:
		return RiskAtRisk
	default:
		return RiskOK
	}
}

// ClassifyProduct classifies p by its DaysRemaining field.
func ClassifyProduct(p model.Product) Risk {
	return Classify(p.DaysRemaining)
}

// DaysRemaining counts whole calendar days from now's date to exp. It is 0 on
// the expiration day and negative afterwards.
func DaysRemaining(exp model.Date, now time.Time) int {
	today := model.DateOf(now)
	return int(exp.Sub(today.Time).Hours() / 24)
}

// AnnotateProduct sets p.DaysRemaining, or clears it when the expiration date
// is unknown.
func AnnotateProduct(p *model.Product, now time.Time) {
	if p.ExpirationDate.IsZero() {
		p.DaysRemaining = nil
		return
	}
	r := DaysRemaining(p.ExpirationDate, now)
	p.DaysRemaining = &r
}

// Annotate runs AnnotateProduct on every element.
func Annotate(products []model.Product, now time.Time) {
	for i := range products {
		AnnotateProduct(&products[i], now)
	}
}

// TotalStock sums stock quantities. Negative quantities count as zero.
func TotalStock(products []model.Product) int {
	total := 0
	for _, p := range products {
		if p.StockQuantity > 0 {
			total += p.StockQuantity
		}
	}
	return total
}

// AtRiskCount counts the AT_RISK products. Expired ones are not at risk.
func AtRiskCount(products []model.Product) int {
	return countRisk(products, RiskAtRisk)
}

func ExpiredCount(products []model.Product) int {
	return countRisk(products, RiskExpired)
}

// FilterAtRisk returns the AT_RISK products in input order.
func FilterAtRisk(products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if ClassifyProduct(p) == RiskAtRisk {
			out = append(out, p)
		}
	}
	return out
}

// Summarize recomputes every aggregate from scratch.
func Summarize(products []model.Product) Summary {
	return Summary{
		TotalProducts: len(products),
		TotalStock:    TotalStock(products),
		AtRiskCount:   AtRiskCount(products),
		ExpiredCount:  ExpiredCount(products),
	}
}

func countRisk(products []model.Product, risk Risk) int {
	n := 0
	for _, p := range products {
		if ClassifyProduct(p) == risk {
			n++
		}
	}
	return n
}
