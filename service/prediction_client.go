package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
)

// Predictor is the Recommendation/Prediction Backend as seen by the estimator.
type Predictor interface {
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error)
}

// ProfileSource loads a user's credit profile.
type ProfileSource interface {
	FetchProfile(ctx context.Context, userID string) (domain.CreditProfile, error)
}

// BackendClient talks to the prediction backend over HTTP.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewBackendClient(baseURL string, timeout time.Duration, log *logrus.Logger) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Predict posts the loan scenario to /predict. Any transport failure, non-2xx
// status or unusable body is reported as domain.ErrPredictionUnavailable.
func (c *BackendClient) Predict(ctx context.Context, in domain.PredictionRequest) (domain.PredictionResponse, error) {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: encode request: %v", domain.ErrPredictionUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: %v", domain.ErrPredictionUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: %v", domain.ErrPredictionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.PredictionResponse{}, fmt.Errorf("%w: backend status %d: %s",
			domain.ErrPredictionUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out domain.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: %w: %v", domain.ErrPredictionUnavailable, domain.ErrMalformedPrediction, err)
	}
	if err := validatePrediction(out); err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: %w", domain.ErrPredictionUnavailable, err)
	}

	c.log.WithFields(logrus.Fields{
		"credit_score": in.CreditScore,
		"loan_term":    in.LoanTerm,
		"car_price":    in.CarPrice,
	}).Debug("prediction received")

	return out, nil
}

func validatePrediction(p domain.PredictionResponse) error {
	if p.PredictedAPR == nil || p.DefaultRiskProbability == nil || p.MonthlyPayment == nil {
		return fmt.Errorf("%w: missing fields", domain.ErrMalformedPrediction)
	}
	for _, v := range []float64{*p.PredictedAPR, *p.DefaultRiskProbability, *p.MonthlyPayment} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", domain.ErrMalformedPrediction)
		}
	}
	if *p.DefaultRiskProbability < 0 || *p.DefaultRiskProbability > 1 {
		return fmt.Errorf("%w: default_risk_probability %.4f outside [0,1]", domain.ErrMalformedPrediction, *p.DefaultRiskProbability)
	}
	if *p.MonthlyPayment < 0 {
		return fmt.Errorf("%w: negative monthly_payment", domain.ErrMalformedPrediction)
	}
	return nil
}

type userEnvelope struct {
	User struct {
		CreditScore any `json:"credit_score"`
		Budget      any `json:"budget"`
	} `json:"user"`
}

// FetchProfile reads GET /users/{uid}. Fields that are absent or not numeric
// are left nil.
func (c *BackendClient) FetchProfile(ctx context.Context, userID string) (domain.CreditProfile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.CreditProfile{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CreditProfile{}, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.CreditProfile{}, domain.ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.CreditProfile{}, fmt.Errorf("fetch profile: unexpected status code: %d", resp.StatusCode)
	}

	var env userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.CreditProfile{}, fmt.Errorf("fetch profile: decode: %w", err)
	}

	var profile domain.CreditProfile
	if score, ok := toNumber(env.User.CreditScore); ok {
		s := int(math.Round(score))
		profile.CreditScore = &s
	}
	if budget, ok := toNumber(env.User.Budget); ok {
		profile.Budget = &budget
	}
	return profile, nil
}

// toNumber accepts JSON numbers and numeric strings.
func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
