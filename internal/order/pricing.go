package order

import (
	"github.com/shopspring/decimal"

	"github.com/shoplite/backend/internal/discount"
)

// Line is one aggregated cart line ready for pricing: the product's
// unit price and attached discount percent, joined to the quantity.
type Line struct {
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
	ProductPercent decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Total prices the aggregated lines for a given personal discount sum:
// sum of quantity x price x (1 - percent/100), floored once on the
// final total and clamped at 0. Flooring happens once rather than per
// line so rounding error does not compound.
func Total(lines []Line, personalSum decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		pct := discount.Effective(l.ProductPercent, personalSum)
		factor := one.Sub(pct.Div(hundred))
		total = total.Add(l.UnitPrice.Mul(factor).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	total = total.Floor()
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
