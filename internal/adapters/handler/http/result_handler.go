package http

import (
	"net/http"

	"github.com/openvote/ballot/internal/core/ports"
)

type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

func (h *ResultHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch results.")
		return
	}
	respondJSON(w, http.StatusOK, results)
}
