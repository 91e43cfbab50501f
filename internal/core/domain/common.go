package domain

import "github.com/shopspring/decimal"

func init() {
	// Money is exchanged as bare JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// HighPriorityAmount is the invoice amount above which approval and upload
// tasks are raised with high priority. The boundary itself is not high.
var HighPriorityAmount = decimal.NewFromInt(500000)
