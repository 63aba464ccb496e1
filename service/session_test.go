package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"car-finance/domain"
)

func TestSession_DebounceCoalescesUpdates(t *testing.T) {
	defer goleak.VerifyNone(t)

	predictor := &fakePredictor{}
	est := NewEstimator(predictor, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-1", est, 40*time.Millisecond, newTestLogger())
	defer s.Close()

	req := scoredRequest(720)
	for pos := 10; pos < 20; pos++ {
		req.Slider.DownPaymentPosition = pos
		local := s.Update(req)
		assert.Equal(t, domain.StatusPending, local.Status)
	}

	require.Eventually(t, func() bool {
		return s.Current().Status == domain.StatusPersonalized
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, predictor.Calls())
	assert.Equal(t, 19, s.Request().Slider.DownPaymentPosition)
}

func TestSession_StaleResponseIsDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)

	predictor := &fakePredictor{}
	predictor.respond = func(req domain.PredictionRequest) (domain.PredictionResponse, error) {
		// The first request ignores cancellation and answers late.
		if req.CreditScore == 600 {
			time.Sleep(120 * time.Millisecond)
			return domain.PredictionResponse{PredictedAPR: ptr(11.0), DefaultRiskProbability: ptr(0.4), MonthlyPayment: ptr(300.0)}, nil
		}
		return domain.PredictionResponse{PredictedAPR: ptr(4.0), DefaultRiskProbability: ptr(0.1), MonthlyPayment: ptr(250.0)}, nil
	}
	est := NewEstimator(predictor, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-2", est, 5*time.Millisecond, newTestLogger())

	s.Update(scoredRequest(600))
	require.Eventually(t, func() bool { return predictor.Calls() == 1 }, time.Second, time.Millisecond)

	s.Update(scoredRequest(780))
	require.Eventually(t, func() bool {
		return s.Current().Status == domain.StatusPersonalized
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 4.0, s.Current().Estimate.PredictedAPR)

	// Wait for the slow call to return; it must not overwrite the newer result.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 4.0, s.Current().Estimate.PredictedAPR)

	s.Close()
}

func TestSession_ListenersSeeLocalThenBackend(t *testing.T) {
	defer goleak.VerifyNone(t)

	est := NewEstimator(&fakePredictor{}, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-3", est, 5*time.Millisecond, newTestLogger())
	defer s.Close()

	var mu sync.Mutex
	var seen []domain.EstimateStatus
	s.Subscribe(func(r domain.EstimateResult) {
		mu.Lock()
		seen = append(seen, r.Status)
		mu.Unlock()
	})

	s.Update(scoredRequest(700))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.EstimateStatus{domain.StatusPending, domain.StatusPersonalized}, seen)
}

func TestSession_NoBackendForAnonymousUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	predictor := &fakePredictor{}
	est := NewEstimator(predictor, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-4", est, time.Millisecond, newTestLogger())
	defer s.Close()

	req := scoredRequest(700)
	req.Profile = nil
	result := s.Update(req)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, domain.StatusNoProfile, result.Status)
	assert.Equal(t, 0, predictor.Calls())
}

func TestSession_CloseCancelsPendingPrediction(t *testing.T) {
	defer goleak.VerifyNone(t)

	predictor := &fakePredictor{}
	est := NewEstimator(predictor, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-5", est, 50*time.Millisecond, newTestLogger())

	s.Update(scoredRequest(700))
	s.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, predictor.Calls())
	assert.Equal(t, domain.StatusPending, s.Current().Status)

	after := s.Update(scoredRequest(710))
	assert.Equal(t, domain.StatusUnavailable, after.Status)
	assert.Equal(t, MessageSessionClosed, after.Message)
	assert.Equal(t, 700, *s.Request().Profile.CreditScore)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, predictor.Calls())
}

func TestSession_CloseWaitsForInFlightPrediction(t *testing.T) {
	defer goleak.VerifyNone(t)

	predictor := &fakePredictor{delay: time.Second}
	est := NewEstimator(predictor, nil, 2*time.Second, 2024, newTestLogger())
	s := NewSession("s-6", est, time.Millisecond, newTestLogger())

	s.Update(scoredRequest(700))
	require.Eventually(t, func() bool { return predictor.Calls() == 1 }, time.Second, time.Millisecond)

	start := time.Now()
	s.Close()
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSession_ClosedKeepsNonPendingStatus(t *testing.T) {
	defer goleak.VerifyNone(t)

	est := NewEstimator(&fakePredictor{}, nil, time.Second, 2024, newTestLogger())
	s := NewSession("s-7", est, time.Millisecond, newTestLogger())
	s.Close()

	req := scoredRequest(700)
	req.Profile = nil
	result := s.Update(req)

	assert.Equal(t, domain.StatusNoProfile, result.Status)
	assert.Equal(t, MessageSignIn, result.Message)
}

func TestSessionManager_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	est := NewEstimator(nil, nil, time.Second, 2024, newTestLogger())
	m := NewSessionManager(est, time.Millisecond, time.Minute, newTestLogger())
	defer m.Stop()

	s, first := m.Create(scoredRequest(700))
	assert.Equal(t, domain.StatusUnavailable, first.Status)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Remove(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Remove(s.ID), domain.ErrSessionNotFound)
}

func TestSessionManager_ExpiresIdleSessions(t *testing.T) {
	defer goleak.VerifyNone(t)

	est := NewEstimator(nil, nil, time.Second, 2024, newTestLogger())
	m := NewSessionManager(est, time.Millisecond, time.Minute, newTestLogger())
	defer m.Stop()

	idle, _ := m.Create(scoredRequest(700))
	m.cleanup(time.Now().Add(2 * time.Minute))

	_, err := m.Get(idle.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
