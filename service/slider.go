package service

import (
	"math"

	"car-finance/domain"
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ToDomain maps a slider position onto [lo, hi]. lo <= hi is the caller's
// responsibility.
func ToDomain(slider int, lo, hi float64) float64 {
	pos := float64(clampInt(slider, SliderMin, SliderMax))
	return math.Round(lo + (pos/SliderMax)*(hi-lo))
}

// ToSlider is the inverse of ToDomain. A degenerate range maps to the midpoint.
func ToSlider(value, lo, hi float64) int {
	if hi == lo {
		return SliderMidpoint
	}
	pos := math.Round((value - lo) / (hi - lo) * SliderMax)
	return int(clampFloat(pos, SliderMin, SliderMax))
}

// DownPaymentRange returns the price-relative bounds of the down-payment slider.
// The range is never inverted, even for a zero or negative price.
func DownPaymentRange(price float64) (lo, hi float64) {
	if price < 0 || math.IsNaN(price) {
		price = 0
	}
	lo = math.Min(DownPaymentFloor, price*MinDownPaymentFraction)
	hi = math.Max(price*MaxDownPaymentFraction, DownPaymentFloor)
	return lo, hi
}

// TermFromSlider converts a term slider position to months in [10, 60].
func TermFromSlider(slider int) int {
	return int(ToDomain(slider, MinTermMonths, MaxTermMonths))
}

// DownPaymentFromSlider converts a down-payment slider position to currency.
// The result never exceeds the price, so the principal stays non-negative.
func DownPaymentFromSlider(slider int, price float64) float64 {
	lo, hi := DownPaymentRange(price)
	dp := ToDomain(slider, lo, hi)
	return clampFloat(dp, 0, math.Max(price, 0))
}

// LoanParametersFor derives the loan parameters for a quote and slider state.
func LoanParametersFor(quote domain.VehicleQuote, slider domain.SliderState) domain.LoanParameters {
	return domain.LoanParameters{
		TermMonths:  TermFromSlider(slider.TermPosition),
		DownPayment: DownPaymentFromSlider(slider.DownPaymentPosition, quote.Price),
	}
}

// InitialSliderState places the sliders for a freshly displayed vehicle: term
// in the middle, down payment at the suggested amount.
func InitialSliderState(quote domain.VehicleQuote) domain.SliderState {
	lo, hi := DownPaymentRange(quote.Price)
	suggested := quote.SuggestedDownPayment
	if suggested <= 0 {
		suggested = math.Max(lo, quote.Price*MinDownPaymentFraction)
	}
	suggested = clampFloat(suggested, lo, hi)

	return domain.SliderState{
		TermPosition:        SliderMidpoint,
		DownPaymentPosition: ToSlider(suggested, lo, hi),
	}
}
