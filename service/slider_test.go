package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"car-finance/domain"
)

func TestToDomain_Endpoints(t *testing.T) {
	assert.Equal(t, 10.0, ToDomain(0, 10, 60))
	assert.Equal(t, 60.0, ToDomain(100, 10, 60))
	assert.Equal(t, 35.0, ToDomain(50, 10, 60))
}

func TestToDomain_ClampsOutOfRangePositions(t *testing.T) {
	assert.Equal(t, 10.0, ToDomain(-20, 10, 60))
	assert.Equal(t, 60.0, ToDomain(250, 10, 60))
}

func TestToSlider_DegenerateRange(t *testing.T) {
	assert.Equal(t, SliderMidpoint, ToSlider(1000, 1000, 1000))
}

func TestToSlider_ClampsOutsideRange(t *testing.T) {
	assert.Equal(t, 0, ToSlider(-500, 0, 100))
	assert.Equal(t, 100, ToSlider(5000, 0, 100))
}

func TestSliderRoundTrip_WideRange(t *testing.T) {
	lo, hi := DownPaymentRange(100000)
	for pos := SliderMin; pos <= SliderMax; pos++ {
		assert.Equal(t, pos, ToSlider(ToDomain(pos, lo, hi), lo, hi), "position %d", pos)
	}
}

func TestSliderRoundTrip_TermWithinOneStep(t *testing.T) {
	for pos := SliderMin; pos <= SliderMax; pos++ {
		back := ToSlider(float64(TermFromSlider(pos)), MinTermMonths, MaxTermMonths)
		assert.InDelta(t, pos, back, 1, "position %d", pos)
	}
}

func TestSliderRoundTrip_DomainValueIsStable(t *testing.T) {
	ranges := []struct {
		name   string
		lo, hi float64
	}{
		{"term", MinTermMonths, MaxTermMonths},
		{"narrow", 10, 13},
		{"offset narrow", 100, 105},
		{"tiny price down payment", 0.1, 1000},
		{"typical down payment", 1000, 9898.2},
	}

	for _, tt := range ranges {
		t.Run(tt.name, func(t *testing.T) {
			for pos := SliderMin; pos <= SliderMax; pos++ {
				value := ToDomain(pos, tt.lo, tt.hi)
				again := ToDomain(ToSlider(value, tt.lo, tt.hi), tt.lo, tt.hi)
				assert.Equal(t, value, again, "position %d", pos)
			}
		})
	}
}

func TestTermFromSlider_Bounds(t *testing.T) {
	for pos := -10; pos <= 110; pos++ {
		term := TermFromSlider(pos)
		assert.GreaterOrEqual(t, term, MinTermMonths)
		assert.LessOrEqual(t, term, MaxTermMonths)
	}
	assert.Equal(t, 36, TermFromSlider(52))
}

func TestDownPaymentRange(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		lo, hi float64
	}{
		{"typical", 10998, 1000, 9898.2},
		{"tiny price", 1, 0.1, 1000},
		{"zero price", 0, 0, 1000},
		{"negative price", -500, 0, 1000},
		{"expensive", 200000, 1000, 180000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := DownPaymentRange(tt.price)
			assert.InDelta(t, tt.lo, lo, 1e-9)
			assert.InDelta(t, tt.hi, hi, 1e-9)
			assert.LessOrEqual(t, lo, hi)
		})
	}
}

func TestDownPaymentFromSlider_NeverExceedsPrice(t *testing.T) {
	for _, price := range []float64{0, 1, 500, 999, 1000, 1500, 10998, 250000} {
		for pos := SliderMin; pos <= SliderMax; pos += 5 {
			dp := DownPaymentFromSlider(pos, price)
			assert.GreaterOrEqual(t, dp, 0.0)
			assert.LessOrEqual(t, dp, price, "price %.0f position %d", price, pos)

			params := domain.LoanParameters{TermMonths: 36, DownPayment: dp}
			assert.GreaterOrEqual(t, params.Principal(price), 0.0)
		}
	}
}

func TestInitialSliderState(t *testing.T) {
	quote := domain.VehicleQuote{Price: 10998, Year: 2020, SuggestedDownPayment: 4998}
	state := InitialSliderState(quote)

	assert.Equal(t, SliderMidpoint, state.TermPosition)
	assert.Equal(t, 45, state.DownPaymentPosition)
}

func TestInitialSliderState_WithoutSuggestion(t *testing.T) {
	state := InitialSliderState(domain.VehicleQuote{Price: 30000})

	// 10% of 30000 sits above the 1000 floor.
	params := LoanParametersFor(domain.VehicleQuote{Price: 30000}, state)
	assert.InDelta(t, 3000, params.DownPayment, 300)
	assert.Equal(t, 35, params.TermMonths)
}
