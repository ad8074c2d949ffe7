package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pkg/errors"

	"loan-capital/domain"
	"loan-capital/service"
)

const maxBodyBytes = 1 << 20

type CapitalHandler struct {
	service *service.CapitalService
}

func NewCapitalHandler(service *service.CapitalService) *CapitalHandler {
	return &CapitalHandler{service: service}
}

// Quote answers POST /loan/capital with the duration and capital of the described loan.
// NewRouter only routes POST here; the method check covers callers mounting
// the handler on a plain ServeMux.
func (h *CapitalHandler) Quote(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.CapitalInput
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Quote(r.Context(), input)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Error quoting capital: %v", err)
			http.Error(w, "internal error", status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRejectedByPolicy),
		errors.Is(err, domain.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrInvalidCommitment),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Warning: failed to write response: %v", err)
	}
}
