package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
)

// Session drives the estimator for one displayed vehicle. Every Update shows
// the local estimate immediately and schedules a backend prediction after the
// debounce delay. Only the result for the most recent Update is ever applied.
type Session struct {
	ID string

	estimator *Estimator
	delay     time.Duration
	log       *logrus.Logger

	// notifyMu orders "apply result + notify listeners" across goroutines.
	notifyMu sync.Mutex

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	current    domain.EstimateResult
	request    domain.EstimateRequest
	lastActive time.Time
	closed     bool
	listeners  []func(domain.EstimateResult)
	running    sync.WaitGroup
}

func NewSession(id string, estimator *Estimator, delay time.Duration, log *logrus.Logger) *Session {
	return &Session{
		ID:         id,
		estimator:  estimator,
		delay:      delay,
		log:        log,
		lastActive: time.Now(),
	}
}

// Subscribe registers fn to receive every applied result. Listeners run on
// the session's goroutines and must not call back into the session.
func (s *Session) Subscribe(fn func(domain.EstimateResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Update supersedes any pending or in-flight prediction with req. A closed
// session only computes the local estimate.
func (s *Session) Update(req domain.EstimateRequest) domain.EstimateResult {
	local := s.estimator.Local(req)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if local.Status == domain.StatusPending {
			local.Status = domain.StatusUnavailable
			local.Message = MessageSessionClosed
		}
		return local
	}
	s.generation++
	gen := s.generation
	s.stopLocked()
	s.request = req
	s.current = local
	s.lastActive = time.Now()

	if local.Status == domain.StatusPending {
		s.running.Add(1)
		s.timer = time.AfterFunc(s.delay, func() {
			defer s.running.Done()
			s.run(gen, req)
		})
	}
	listeners := append([]func(domain.EstimateResult){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(local)
	}
	return local
}

// Current returns the most recently applied result.
func (s *Session) Current() domain.EstimateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Request returns the input behind Current.
func (s *Session) Request() domain.EstimateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close cancels pending work and waits for in-flight predictions to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopLocked()
	s.mu.Unlock()

	s.running.Wait()
}

// stopLocked drops the scheduled call and cancels the in-flight one.
func (s *Session) stopLocked() {
	if s.timer != nil {
		if s.timer.Stop() {
			s.running.Done()
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) run(gen uint64, req domain.EstimateRequest) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.cancel = cancel
	s.mu.Unlock()

	result := s.estimator.Estimate(ctx, req)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{
			"session":    s.ID,
			"generation": gen,
		}).Debug("discarding superseded estimate")
		return
	}
	s.cancel = nil
	s.current = result
	listeners := append([]func(domain.EstimateResult){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(result)
	}
}
