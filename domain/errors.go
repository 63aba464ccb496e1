package domain

import "errors"

var (
	ErrInvalidQuote          = errors.New("vehicle price must be positive")
	ErrInvalidSlider         = errors.New("slider position must be between 0 and 100")
	ErrInvalidPreference     = errors.New("invalid term preference")
	ErrInvalidBudget         = errors.New("monthly budget must be positive")
	ErrNoTermWithinBudget    = errors.New("no loan term fits the monthly budget")
	ErrPredictionUnavailable = errors.New("prediction unavailable")
	ErrMalformedPrediction   = errors.New("malformed prediction response")
	ErrProfileNotFound       = errors.New("user profile not found")
	ErrSessionNotFound       = errors.New("session not found")
)
