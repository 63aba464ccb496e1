package domain

type TermRecommendationInput struct {
	Quote         VehicleQuote `json:"quote"`
	DownPayment   float64      `json:"down_payment"`
	MonthlyBudget float64      `json:"monthly_budget"`
	Preference    string       `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	PredictedAPR   float64 `json:"predicted_apr"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}

type DownPaymentInput struct {
	CarPrice     float64 `json:"car_price"`
	CreditScore  int     `json:"credit_score"`
	LoanTerm     int     `json:"loan_term"`
	VehicleYear  int     `json:"vehicle_year"`
	VehicleType  string  `json:"vehicle_type,omitempty"`
	VehicleModel string  `json:"vehicle_model,omitempty"`
}

type DownPaymentSuggestion struct {
	DownPayment float64 `json:"down_payment"`
	RatePercent float64 `json:"total_rate"`
	VehicleType string  `json:"vehicle_type"`
}
