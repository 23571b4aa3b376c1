package handler

import (
	"net/http"

	"smartgym/internal/progress/service"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ProgressHandler struct {
	service service.ProgressService
	log     *logger.Logger
}

func NewProgressHandler(service service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		log:     log,
	}
}

func (h *ProgressHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ProgressRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Add", err)
		return
	}

	record, err := h.service.Add(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Add", err)
		return
	}

	if err := httputil.WriteCreated(w, record, "Progress record added"); err != nil {
		h.log.Error("failed to write created response", "handler", "Add", "operation", "WriteCreated", "error", err)
	}
}

func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	summary, err := h.service.Summary(r.Context(), ps.ByName("dni"))
	if err != nil {
		h.writeError(w, "Summary", err)
		return
	}
	h.writeSuccess(w, "Summary", summary)
}

func (h *ProgressHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ProgressHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProgressHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/progress", h.Add)
	router.GET("/api/v1/progress/:dni", h.Summary)
}
