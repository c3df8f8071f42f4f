package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFivePercent(t *testing.T) {
	calc := NewSplitCalculator(0.05)

	fee, club := calc.Split(1000)
	assert.Equal(t, 50.0, fee)
	assert.Equal(t, 950.0, club)

	fee, club = calc.Split(250)
	assert.Equal(t, 12.50, fee)
	assert.Equal(t, 237.50, club)
}

func TestSplitSumsToAmountInPence(t *testing.T) {
	calc := NewSplitCalculator(0.05)

	amounts := []float64{0.01, 0.99, 1, 10.10, 33.33, 99.99, 123.45, 1000, 4999.99, 1000000}
	for _, amount := range amounts {
		fee, club := calc.Split(amount)
		assert.Equal(t, ToMinorUnits(amount), ToMinorUnits(fee)+ToMinorUnits(club),
			"fee and club payout must sum to the amount for %.2f", amount)
	}
}

func TestSplitRoundsHalfUp(t *testing.T) {
	calc := NewSplitCalculator(0.05)

	// 5% of 10.10 is 0.505, which rounds up to 0.51.
	fee, club := calc.Split(10.10)
	assert.Equal(t, 0.51, fee)
	assert.Equal(t, 9.59, club)
}

func TestNewSplitCalculatorClampsBadRates(t *testing.T) {
	assert.Equal(t, DefaultFeeRate, NewSplitCalculator(0).FeeRate)
	assert.Equal(t, DefaultFeeRate, NewSplitCalculator(-0.1).FeeRate)
	assert.Equal(t, DefaultFeeRate, NewSplitCalculator(1).FeeRate)
	assert.Equal(t, 0.07, NewSplitCalculator(0.07).FeeRate)
}

func TestMinorUnitConversion(t *testing.T) {
	assert.Equal(t, int64(12345), ToMinorUnits(123.45))
	assert.Equal(t, int64(100), ToMinorUnits(1))
	assert.Equal(t, 123.45, FromMinorUnits(12345))
}
