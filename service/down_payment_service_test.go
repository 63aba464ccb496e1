package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"car-finance/domain"
)

func TestVehicleTypeForModel(t *testing.T) {
	tests := map[string]string{
		"Camry":             "Sedan",
		"RAV4 Hybrid":       "SUV",
		"Corolla Cross XSE": "SUV",
		"Corolla LE":        "Sedan",
		"GR-86":             "Sports",
		"Tundra 4x4":        "Truck",
		"  land   CRUISER ": "SUV",
		"Crown":             "Luxury",
		"Unknown Roadster":  "Sedan",
		"":                  "Sedan",
	}

	for model, want := range tests {
		assert.Equal(t, want, VehicleTypeForModel(model), "model %q", model)
	}
}

func TestSuggest_BaseCase(t *testing.T) {
	svc := NewDownPaymentService(2024)

	got := svc.Suggest(domain.DownPaymentInput{
		CarPrice:     30000,
		CreditScore:  760,
		LoanTerm:     36,
		VehicleYear:  2024,
		VehicleModel: "Camry",
	})

	// -2% for credit, +2% for a new vehicle.
	assert.InDelta(t, 3000, got.DownPayment, 0.01)
	assert.InDelta(t, 10.0, got.RatePercent, 0.001)
	assert.Equal(t, "Sedan", got.VehicleType)
}

func TestSuggest_ClampsToMaximum(t *testing.T) {
	svc := NewDownPaymentService(2024)

	got := svc.Suggest(domain.DownPaymentInput{
		CarPrice:     20000,
		CreditScore:  600,
		LoanTerm:     60,
		VehicleYear:  2024,
		VehicleModel: "Supra",
	})

	assert.InDelta(t, 6000, got.DownPayment, 0.01)
	assert.InDelta(t, 30.0, got.RatePercent, 0.001)
	assert.Equal(t, "Sports", got.VehicleType)
}

func TestSuggest_ClampsToMinimum(t *testing.T) {
	svc := NewDownPaymentService(2024)

	got := svc.Suggest(domain.DownPaymentInput{
		CarPrice:    10000,
		CreditScore: 800,
		LoanTerm:    12,
		VehicleYear: 2014,
		VehicleType: "sedan",
	})

	assert.InDelta(t, 500, got.DownPayment, 0.01)
	assert.InDelta(t, 5.0, got.RatePercent, 0.001)
	assert.Equal(t, "Sedan", got.VehicleType)
}

func TestSuggest_NormalizesExplicitType(t *testing.T) {
	svc := NewDownPaymentService(2024)

	suv := svc.Suggest(domain.DownPaymentInput{CarPrice: 40000, CreditScore: 720, LoanTerm: 36, VehicleYear: 2022, VehicleType: "suv"})
	truck := svc.Suggest(domain.DownPaymentInput{CarPrice: 40000, CreditScore: 720, LoanTerm: 36, VehicleYear: 2022, VehicleType: "TRUCK"})

	assert.Equal(t, "SUV", suv.VehicleType)
	assert.Equal(t, "Truck", truck.VehicleType)
	assert.InDelta(t, 4800, suv.DownPayment, 0.01)
	assert.InDelta(t, 5200, truck.DownPayment, 0.01)
}
