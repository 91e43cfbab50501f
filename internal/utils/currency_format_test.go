package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatYuan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "¥0"},
		{"999", "¥999"},
		{"1000", "¥1,000"},
		{"500000", "¥500,000"},
		{"1234567.5", "¥1,234,567.5"},
		{"12.345", "¥12.35"},
		{"-2500", "¥-2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatYuan(decimal.RequireFromString(tt.in)))
		})
	}
}
