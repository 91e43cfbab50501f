package accounting

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SplitGross splits a tax-inclusive amount into its net and tax parts for a
// percentage tax rate (6 means 6%).
// net = gross / (1 + rate/100), tax = gross - net, so net + tax == gross.
func SplitGross(gross, ratePercent decimal.Decimal) (net, tax decimal.Decimal) {
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	net = gross.Div(divisor)
	tax = gross.Sub(net)
	return net, tax
}

// Sum adds up the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
