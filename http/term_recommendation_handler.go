package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
	"car-finance/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     *logrus.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log *logrus.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, log: log}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if err := decodeJSON(r, &input); err != nil {
		h.log.WithError(err).Debug("error decoding request body")
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecommendTerm(input)
	if err != nil {
		h.log.WithError(err).Debug("error recommending term")
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
