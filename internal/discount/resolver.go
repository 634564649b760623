package discount

import "github.com/shopspring/decimal"

// Effective combines a product's attached discount percent with the
// requesting user's personal discount sum. The result is floored at 0
// but deliberately has no upper bound: combined percents above 100 are
// allowed here and clamped to a zero price by the order total
// calculator instead.
func Effective(productPercent, personalSum decimal.Decimal) decimal.Decimal {
	total := productPercent.Add(personalSum)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
