package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatYuan renders an amount the way the to-do cards show it: a yuan sign,
// thousands separators and at most two decimals with trailing zeros dropped.
// Example: 1234567.5 returns "¥1,234,567.5"
func FormatYuan(amount decimal.Decimal) string {
	return "¥" + FormatWithPrecision(amount, 2)
}

// FormatWithPrecision rounds to precision and groups the integer part by thousands.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	s := amount.Round(int32(precision)).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}
