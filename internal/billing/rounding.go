package billing

import "github.com/shopspring/decimal"

// Granularity is the smallest currency step stored on charges
const Granularity = 1000

var half = decimal.New(5, -1)

// RoundToThousand rounds to the nearest multiple of 1000, halves going up
func RoundToThousand(amount int64) int64 {
	return decimal.NewFromInt(amount).
		Shift(-3).
		Add(half).
		Floor().
		Shift(3).
		IntPart()
}

// IsRounded reports whether amount is already on the 1000 grid
func IsRounded(amount int64) bool {
	return amount%Granularity == 0
}
