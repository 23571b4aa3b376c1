package handler

import (
	"net/http"

	"smartgym/internal/history"
	apperrors "smartgym/pkg/errors"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

type HistoryHandler struct {
	reader history.Reader
	log    *logger.Logger
}

func NewHistoryHandler(reader history.Reader, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		reader: reader,
		log:    log,
	}
}

func (h *HistoryHandler) CustomerHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := sanitizer.NormalizeID(ps.ByName("id"))
	if id == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Customer ID cannot be empty")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CustomerHistory", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	entries, err := h.reader.CustomerHistory(r.Context(), id)
	if err != nil {
		h.log.Error("Failed to read customer history", "customer_id", id, "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to retrieve history", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CustomerHistory", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "CustomerHistory", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HistoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/customers/:id/history", h.CustomerHistory)
}
