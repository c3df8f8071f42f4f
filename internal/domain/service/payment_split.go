package service

import (
	"math"
)

// DefaultFeeRate is the platform's share of every sponsorship payment. The
// 5% rate applied at funding time is authoritative.
const DefaultFeeRate = 0.05

// SplitCalculator computes the platform fee and club payout for a sponsorship
// amount. It is pure and safe for concurrent use.
type SplitCalculator struct {
	FeeRate float64
}

func NewSplitCalculator(feeRate float64) *SplitCalculator {
	if feeRate <= 0 || feeRate >= 1 {
		feeRate = DefaultFeeRate
	}
	return &SplitCalculator{FeeRate: feeRate}
}

// PlatformFee returns the fee rounded half-up to two decimal places.
func (s *SplitCalculator) PlatformFee(amount float64) float64 {
	return math.Round(amount*s.FeeRate*100) / 100
}

// ClubAmount returns what the club receives after the platform fee.
func (s *SplitCalculator) ClubAmount(amount float64) float64 {
	return amount - s.PlatformFee(amount)
}

// Split returns both halves computed in integer pence, so that
// fee + club == amount to the penny for every amount > 0.
func (s *SplitCalculator) Split(amount float64) (fee float64, club float64) {
	amountMinor := ToMinorUnits(amount)
	feeMinor := ToMinorUnits(s.PlatformFee(amount))
	return FromMinorUnits(feeMinor), FromMinorUnits(amountMinor - feeMinor)
}

// ToMinorUnits converts a GBP amount to pence at the payment boundary.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts pence back to a GBP amount for display.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
