package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
	"car-finance/service"
)

type DownPaymentHandler struct {
	service *service.DownPaymentService
	log     *logrus.Logger
}

func NewDownPaymentHandler(service *service.DownPaymentService, log *logrus.Logger) *DownPaymentHandler {
	return &DownPaymentHandler{service: service, log: log}
}

func (h *DownPaymentHandler) SuggestDownPayment(w http.ResponseWriter, r *http.Request) {
	var input domain.DownPaymentInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.CarPrice <= 0 {
		writeError(w, h.log, http.StatusBadRequest, domain.ErrInvalidQuote.Error())
		return
	}

	writeJSON(w, h.log, http.StatusOK, h.service.Suggest(input))
}
