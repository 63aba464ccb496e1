package domain

type EstimateSource string

const (
	SourceLocal   EstimateSource = "local"
	SourceBackend EstimateSource = "backend"
)

type EstimateStatus string

const (
	// StatusPersonalized means the backend prediction was applied.
	StatusPersonalized EstimateStatus = "personalized"
	// StatusNoProfile means no credit score was available; not an error.
	StatusNoProfile EstimateStatus = "no_profile"
	// StatusUnavailable means the backend failed and the local estimate is shown.
	StatusUnavailable EstimateStatus = "unavailable"
	// StatusPending means a backend prediction is scheduled or in flight.
	StatusPending EstimateStatus = "pending"
)

// EstimateRequest is everything the facade needs for one computation.
type EstimateRequest struct {
	Quote   VehicleQuote   `json:"quote"`
	Slider  SliderState    `json:"slider"`
	Profile *CreditProfile `json:"profile,omitempty"`
}

// EstimateResult always carries a usable estimate, whatever the status.
type EstimateResult struct {
	Parameters     LoanParameters    `json:"parameters"`
	Estimate       FinancingEstimate `json:"estimate"`
	Source         EstimateSource    `json:"source"`
	Status         EstimateStatus    `json:"status"`
	Message        string            `json:"message,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
}

// PredictionRequest is the body of POST /predict.
type PredictionRequest struct {
	CreditScore     int     `json:"credit_score"`
	LoanTerm        int     `json:"loan_term"`
	CarPrice        float64 `json:"car_price"`
	VehicleAge      int     `json:"vehicle_age"`
	DownPaymentRate float64 `json:"down_payment_rate"`
}

// PredictionResponse is the body returned by POST /predict. Pointer fields
// distinguish a missing value from zero.
type PredictionResponse struct {
	PredictedAPR           *float64 `json:"predicted_apr"`
	DefaultRiskProbability *float64 `json:"default_risk_probability"`
	MonthlyPayment         *float64 `json:"monthly_payment"`
	Recommendation         string   `json:"recommendation"`
}
