package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
)

// Estimator is the single entry point for financing estimates. It always
// produces a local estimate and, when a credit score and a backend are
// available, replaces it with the backend prediction.
type Estimator struct {
	predictor     Predictor
	risk          RiskModel
	timeout       time.Duration
	referenceYear int
	log           *logrus.Logger
}

// NewEstimator builds an estimator. predictor may be nil, in which case only
// local estimates are produced. A zero referenceYear means the current year.
func NewEstimator(
	predictor Predictor,
	risk RiskModel,
	timeout time.Duration,
	referenceYear int,
	log *logrus.Logger,
) *Estimator {
	if risk == nil {
		risk = NewHeuristicRiskModel()
	}
	return &Estimator{
		predictor:     predictor,
		risk:          risk,
		timeout:       timeout,
		referenceYear: referenceYear,
		log:           log,
	}
}

// needsBackend reports whether Estimate would call the prediction backend.
func (e *Estimator) needsBackend(req domain.EstimateRequest) bool {
	return e.predictor != nil && req.Profile.HasCreditScore() && req.Quote.Price > 0
}

// Local returns the estimate computed without the backend, with the status the
// caller should show for it.
func (e *Estimator) Local(req domain.EstimateRequest) domain.EstimateResult {
	params := LoanParametersFor(req.Quote, req.Slider)
	est := LocalEstimate(e.risk, req.Quote.Price, params)

	result := domain.EstimateResult{
		Parameters:     params,
		Estimate:       est,
		Source:         domain.SourceLocal,
		Recommendation: localRecommendation(req.Quote.Price, params, est),
	}

	switch {
	case req.Profile == nil:
		result.Status = domain.StatusNoProfile
		result.Message = MessageSignIn
	case !req.Profile.HasCreditScore():
		result.Status = domain.StatusNoProfile
		result.Message = MessageAddCreditScore
	case req.Quote.Price <= 0:
		result.Status = domain.StatusUnavailable
		result.Message = fmt.Sprintf("%s: %v", MessagePredictionError, domain.ErrInvalidQuote)
	case e.predictor == nil:
		result.Status = domain.StatusUnavailable
		result.Message = fmt.Sprintf("%s: prediction backend is not configured", MessagePredictionError)
	default:
		result.Status = domain.StatusPending
	}
	return result
}

// Estimate never fails: backend errors degrade to the local estimate with
// StatusUnavailable and a readable reason.
func (e *Estimator) Estimate(ctx context.Context, req domain.EstimateRequest) domain.EstimateResult {
	result := e.Local(req)
	if !e.needsBackend(req) {
		return result
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	pred, err := e.predictor.Predict(ctx, e.predictionRequest(req, result.Parameters))
	if err == nil {
		err = validatePrediction(pred)
	}
	if err != nil {
		return e.unavailable(result, err)
	}

	result.Estimate = domain.FinancingEstimate{
		MonthlyPayment:     roundTo2Decimals(*pred.MonthlyPayment),
		PredictedAPR:       *pred.PredictedAPR,
		DefaultRiskPercent: clampInt(int(math.Round(*pred.DefaultRiskProbability*100)), 0, 100),
	}
	result.Source = domain.SourceBackend
	result.Status = domain.StatusPersonalized
	result.Message = ""
	if pred.Recommendation != "" {
		result.Recommendation = pred.Recommendation
	} else {
		result.Recommendation = localRecommendation(req.Quote.Price, result.Parameters, result.Estimate)
	}
	return result
}

func (e *Estimator) unavailable(result domain.EstimateResult, err error) domain.EstimateResult {
	reason := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "prediction backend timed out"
	case errors.Is(err, context.Canceled):
		reason = "prediction request was cancelled"
	}

	e.log.WithError(err).Warn("financing prediction unavailable, using local estimate")

	result.Status = domain.StatusUnavailable
	result.Message = fmt.Sprintf("%s: %s", MessagePredictionError, reason)
	return result
}

func (e *Estimator) predictionRequest(req domain.EstimateRequest, params domain.LoanParameters) domain.PredictionRequest {
	return domain.PredictionRequest{
		CreditScore:     *req.Profile.CreditScore,
		LoanTerm:        params.TermMonths,
		CarPrice:        req.Quote.Price,
		VehicleAge:      e.vehicleAge(req.Quote.Year),
		DownPaymentRate: clampFloat(DownPaymentPercentage(req.Quote.Price, params.DownPayment)/100, 0, 1),
	}
}

func (e *Estimator) vehicleAge(year int) int {
	if year <= 0 {
		return 0
	}
	ref := e.referenceYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	return max(0, ref-year)
}
