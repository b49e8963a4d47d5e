package handler

import "github.com/shopspring/decimal"

// toDecimal lifts a JSON float into a decimal amount.
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func toDecimalPtr(f float64) *decimal.Decimal {
	d := toDecimal(f)
	return &d
}
