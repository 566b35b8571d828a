// Package pricing keeps all money arithmetic on decimals so totals and sale
// prices round to exactly two places instead of drifting in float math.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/example/storefront/pkg/models"
)

// SalePrice computes price reduced by percentage, rounded to 2 decimals.
func SalePrice(price, percentage float64) float64 {
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(100)))
	v, _ := p.Mul(factor).Round(2).Float64()
	return v
}

// LineTotal is unit price times quantity, rounded to 2 decimals.
func LineTotal(price float64, quantity int) float64 {
	v, _ := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2).Float64()
	return v
}

// OrderTotal sums captured unit price times quantity across line items,
// rounded to 2 decimals.
func OrderTotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	v, _ := total.Round(2).Float64()
	return v
}
