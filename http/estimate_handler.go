package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"car-finance/domain"
	"car-finance/service"
)

// ProfileLoader resolves and invalidates cached credit profiles.
type ProfileLoader interface {
	Get(ctx context.Context, userID string) (domain.CreditProfile, error)
	Invalidate(ctx context.Context, userID string) error
}

type EstimateHandler struct {
	estimator *service.Estimator
	sessions  *service.SessionManager
	profiles  ProfileLoader
	log       *logrus.Logger
}

// NewEstimateHandler accepts a nil profiles loader; signed-in users then only
// get personalized predictions when they send a credit score themselves.
func NewEstimateHandler(
	estimator *service.Estimator,
	sessions *service.SessionManager,
	profiles ProfileLoader,
	log *logrus.Logger,
) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
		sessions:  sessions,
		profiles:  profiles,
		log:       log,
	}
}

type estimateRequest struct {
	Quote   *domain.VehicleQuote  `json:"quote"`
	Slider  *domain.SliderState   `json:"slider"`
	Profile *domain.CreditProfile `json:"profile"`
}

type sessionResponse struct {
	SessionID string                `json:"session_id"`
	Result    domain.EstimateResult `json:"result"`
}

func validSlider(s domain.SliderState) bool {
	in := func(v int) bool { return v >= service.SliderMin && v <= service.SliderMax }
	return in(s.TermPosition) && in(s.DownPaymentPosition)
}

// resolveProfile prefers a credit score sent with the request, then the
// signed-in user's cached profile. nil means anonymous.
func (h *EstimateHandler) resolveProfile(r *http.Request, sent *domain.CreditProfile) *domain.CreditProfile {
	if sent.HasCreditScore() {
		return sent
	}
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return sent
	}
	if h.profiles == nil {
		return &domain.CreditProfile{}
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Warn("failed to load user profile")
		return &domain.CreditProfile{}
	}
	return &profile
}

// buildRequest merges body fields over base, so session updates can send
// only what changed.
func (h *EstimateHandler) buildRequest(r *http.Request, body estimateRequest, base *domain.EstimateRequest) (domain.EstimateRequest, error) {
	var req domain.EstimateRequest
	if base != nil {
		req = *base
	}

	if body.Quote != nil {
		req.Quote = *body.Quote
	}
	if base == nil && body.Quote == nil {
		return req, domain.ErrInvalidQuote
	}
	if req.Quote.Price <= 0 {
		return req, domain.ErrInvalidQuote
	}

	switch {
	case body.Slider != nil:
		if !validSlider(*body.Slider) {
			return req, domain.ErrInvalidSlider
		}
		req.Slider = *body.Slider
	case base == nil || body.Quote != nil:
		req.Slider = service.InitialSliderState(req.Quote)
	}

	// An update without a profile keeps the one the session already uses,
	// unless a signed-in user's cached profile can be loaded instead.
	_, signedIn := UserIDFromContext(r.Context())
	if base != nil && body.Profile == nil && !signedIn {
		return req, nil
	}
	req.Profile = h.resolveProfile(r, body.Profile)
	return req, nil
}

// Estimate computes one estimate, waiting for the backend if it applies.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var body estimateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.buildRequest(r, body, nil)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, h.estimator.Estimate(r.Context(), req))
}

func (h *EstimateHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body estimateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.buildRequest(r, body, nil)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	session, result := h.sessions.Create(req)
	writeJSON(w, h.log, http.StatusCreated, sessionResponse{SessionID: session.ID, Result: result})
}

func (h *EstimateHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	var body estimateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	base := session.Request()
	req, err := h.buildRequest(r, body, &base)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, sessionResponse{SessionID: session.ID, Result: session.Update(req)})
}

func (h *EstimateHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.log, http.StatusOK, sessionResponse{SessionID: session.ID, Result: session.Current()})
}

func (h *EstimateHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Remove(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EstimateHandler) lookupSession(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, h.log, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, h.log, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return session, true
}

// InvalidateProfile drops the cached profile after the user edits it.
func (h *EstimateHandler) InvalidateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["uid"]
	if current, ok := UserIDFromContext(r.Context()); !ok || current != userID {
		writeError(w, h.log, http.StatusForbidden, "cannot invalidate another user's profile")
		return
	}
	if h.profiles == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.profiles.Invalidate(r.Context(), userID); err != nil {
		h.log.WithError(err).Error("profile invalidation failed")
		writeError(w, h.log, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
