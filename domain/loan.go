package domain

// VehicleQuote is one displayed vehicle the user can finance.
type VehicleQuote struct {
	Model                string  `json:"model,omitempty"`
	Price                float64 `json:"price"`
	Year                 int     `json:"year"`
	SuggestedDownPayment float64 `json:"suggested_down_payment,omitempty"`
}

// SliderState holds the normalized UI control positions, each in [0, 100].
type SliderState struct {
	TermPosition        int `json:"term_position"`
	DownPaymentPosition int `json:"down_payment_position"`
}

// LoanParameters are the domain values derived from a SliderState.
type LoanParameters struct {
	TermMonths  int     `json:"term_months"`
	DownPayment float64 `json:"down_payment"`
}

// Principal is the financed amount, never negative.
func (p LoanParameters) Principal(price float64) float64 {
	principal := price - p.DownPayment
	if principal < 0 {
		return 0
	}
	return principal
}

type FinancingEstimate struct {
	MonthlyPayment     float64 `json:"monthly_payment"`
	PredictedAPR       float64 `json:"predicted_apr"`
	DefaultRiskPercent int     `json:"default_risk_percent"`
}

// CreditProfile is the part of the user profile the estimator reads.
type CreditProfile struct {
	CreditScore *int     `json:"credit_score,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
}

// HasCreditScore reports whether a personalized prediction is possible.
func (p *CreditProfile) HasCreditScore() bool {
	return p != nil && p.CreditScore != nil
}
