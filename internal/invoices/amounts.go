package invoice

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineAmounts derives the net and total amounts for a single invoice line.
// The net amount is rounded to two decimals before multiplying by the
// quantity; rounding only the final product would shift cent-level results
// for some rate/discount combinations.
func LineAmounts(rate decimal.Decimal, quantity int, discountPercent decimal.Decimal) (net, total decimal.Decimal) {
	net = rate.Sub(rate.Mul(discountPercent).Div(hundred)).Round(2)
	total = net.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return net, total
}
