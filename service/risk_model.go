package service

import (
	"math"

	"car-finance/domain"
)

// RiskModel produces the APR and default-risk figures shown when no backend
// prediction applies.
type RiskModel interface {
	PredictAPR(price float64, params domain.LoanParameters) float64
	DefaultRisk(price float64, params domain.LoanParameters) int
}

// HeuristicRiskModel is a placeholder scoring rule, not a calibrated model.
type HeuristicRiskModel struct{}

func NewHeuristicRiskModel() *HeuristicRiskModel {
	return &HeuristicRiskModel{}
}

// DownPaymentPercentage is the down payment as a share of the price, 0 for a
// non-positive price.
func DownPaymentPercentage(price, downPayment float64) float64 {
	if price <= 0 || math.IsNaN(price) || math.IsNaN(downPayment) {
		return 0
	}
	return downPayment / price * 100
}

// DownPaymentShare is DownPaymentPercentage rounded to a whole percent.
func DownPaymentShare(price, downPayment float64) int {
	return int(math.Round(DownPaymentPercentage(price, downPayment)))
}

// PredictAPR starts at the base rate and discounts down payments above 20% of
// the price and terms shorter than 60 months, bounded to [3, 15].
func (m *HeuristicRiskModel) PredictAPR(price float64, params domain.LoanParameters) float64 {
	pct := DownPaymentPercentage(price, params.DownPayment)
	downPaymentDiscount := math.Max(0, (pct-DownPaymentDiscountPct)*DownPaymentDiscountPer)
	termDiscount := math.Max(0, float64(MaxTermMonths-params.TermMonths)*TermDiscountPerMonth)
	return clampFloat(BaseAPR-downPaymentDiscount-termDiscount, MinAPR, MaxAPR)
}

// DefaultRisk is the modeled likelihood of default in percent; a larger down
// payment lowers it. Without a usable price there is nothing to model and the
// result is 0.
func (m *HeuristicRiskModel) DefaultRisk(price float64, params domain.LoanParameters) int {
	if price <= 0 || math.IsNaN(price) {
		return 0
	}
	return clampInt(100-DownPaymentShare(price, params.DownPayment), 0, 100)
}

// LocalEstimate computes the full estimate without any network call.
func LocalEstimate(model RiskModel, price float64, params domain.LoanParameters) domain.FinancingEstimate {
	return domain.FinancingEstimate{
		MonthlyPayment:     MonthlyPayment(params.Principal(price), NominalMonthlyRate, params.TermMonths),
		PredictedAPR:       model.PredictAPR(price, params),
		DefaultRiskPercent: model.DefaultRisk(price, params),
	}
}
