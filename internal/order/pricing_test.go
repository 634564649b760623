package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func line(t *testing.T, qty int, price, pct string) Line {
	t.Helper()
	return Line{Quantity: qty, UnitPrice: dec(t, price), ProductPercent: dec(t, pct)}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		lines    []Line
		personal string
		want     string
	}{
		{
			name:     "empty cart",
			lines:    nil,
			personal: "0",
			want:     "0",
		},
		{
			name:     "single line no discounts",
			lines:    []Line{line(t, 2, "50", "0")},
			personal: "0",
			want:     "100",
		},
		{
			// price 100, product 10%, personal 5%+5% summed to 10%:
			// effective 20% -> 100 x 0.8 x 3 = 240
			name:     "product and personal discounts combine",
			lines:    []Line{line(t, 3, "100", "10")},
			personal: "10",
			want:     "240",
		},
		{
			name:     "discount above hundred clamps line to zero total",
			lines:    []Line{line(t, 1, "100", "80")},
			personal: "50",
			want:     "0",
		},
		{
			name: "floor applies once to the sum not per line",
			// 3 x 9.99 x 0.95 = 28.4715 -> floor once = 28
			// (per-line flooring would give 9+9+9 = 27)
			lines:    []Line{line(t, 1, "9.99", "5"), line(t, 1, "9.99", "5"), line(t, 1, "9.99", "5")},
			personal: "0",
			want:     "28",
		},
		{
			name:     "mixed lines",
			lines:    []Line{line(t, 2, "50", "0"), line(t, 3, "100", "10")},
			personal: "10",
			want:     "330", // 90 (personal on first line) + 240
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Total(tc.lines, dec(t, tc.personal))
			if !got.Equal(dec(t, tc.want)) {
				t.Fatalf("Total = %s, want %s", got, tc.want)
			}
		})
	}
}
