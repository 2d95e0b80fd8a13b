package services

import "github.com/shopspring/decimal"

// ConvertEURToLEI converts an EUR amount to LEI at the given exchange rate,
// rounded to 2dp. The rate is the process-wide configured EUR/LEI rate, not
// a live quote.
func ConvertEURToLEI(amount, rate decimal.Decimal) decimal.Decimal {
	return round2(amount.Mul(rate))
}

// ConvertLEIToEUR converts a LEI amount back to EUR at the given rate,
// rounded to 2dp. A zero rate is a configuration error and is rejected at
// config load, not here.
func ConvertLEIToEUR(amount, rate decimal.Decimal) decimal.Decimal {
	return round2(amount.Div(rate))
}
