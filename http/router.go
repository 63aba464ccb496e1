package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Estimate    *EstimateHandler
	Term        *TermRecommendationHandler
	DownPayment *DownPaymentHandler
}

// NewRouter wires every endpoint behind identity resolution and rate limiting.
func NewRouter(h Handlers, limiter *RateLimiter, jwtSecret string, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	api.Use(IdentityMiddleware(jwtSecret, log))
	api.Use(RateLimitMiddleware(limiter, log))

	api.HandleFunc("/financing/estimate", h.Estimate.Estimate).Methods(http.MethodPost)
	api.HandleFunc("/financing/sessions", h.Estimate.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/financing/sessions/{id}", h.Estimate.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/financing/sessions/{id}", h.Estimate.UpdateSession).Methods(http.MethodPut)
	api.HandleFunc("/financing/sessions/{id}", h.Estimate.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/financing/down-payment", h.DownPayment.SuggestDownPayment).Methods(http.MethodPost)
	api.HandleFunc("/financing/recommend-term", h.Term.RecommendTerm).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{uid}/invalidate", h.Estimate.InvalidateProfile).Methods(http.MethodPost)

	return r
}
