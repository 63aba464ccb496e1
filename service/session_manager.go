package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"car-finance/domain"
)

const sessionCleanupInterval = time.Minute

// SessionManager owns the live estimation sessions and expires idle ones.
type SessionManager struct {
	estimator *Estimator
	delay     time.Duration
	idleTTL   time.Duration
	log       *logrus.Logger

	mu          sync.Mutex
	sessions    map[string]*Session
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewSessionManager(estimator *Estimator, delay, idleTTL time.Duration, log *logrus.Logger) *SessionManager {
	m := &SessionManager{
		estimator:   estimator,
		delay:       delay,
		idleTTL:     idleTTL,
		log:         log,
		sessions:    make(map[string]*Session),
		stopCleanup: make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Create opens a session and applies req as its first input.
func (m *SessionManager) Create(req domain.EstimateRequest) (*Session, domain.EstimateResult) {
	s := NewSession(uuid.NewString(), m.estimator, m.delay, m.log)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	result := s.Update(req)
	m.log.WithField("session", s.ID).Debug("estimation session opened")
	return s, result
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Close()
	return nil
}

func (m *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *SessionManager) cleanup(now time.Time) {
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.idleTTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.log.WithField("count", len(expired)).Debug("expired idle estimation sessions")
	}
}

// Stop closes every session and ends the cleanup loop.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCleanup) })

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
