package handler

import (
	"net/http"

	"smartgym/internal/attendance/service"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AttendanceHandler struct {
	service service.AttendanceService
	log     *logger.Logger
}

func NewAttendanceHandler(service service.AttendanceService, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log,
	}
}

func (h *AttendanceHandler) RecordAccess(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.DNIRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "RecordAccess", err)
		return
	}

	result, err := h.service.RecordAccess(r.Context(), req.DNI)
	if err != nil {
		h.writeError(w, "RecordAccess", err)
		return
	}
	h.writeSuccess(w, "RecordAccess", result)
}

func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	records, err := h.service.ListByDNI(r.Context(), ps.ByName("dni"))
	if err != nil {
		h.writeError(w, "ListAttendance", err)
		return
	}
	h.writeSuccess(w, "ListAttendance", records)
}

func (h *AttendanceHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AttendanceHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *AttendanceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/access", h.RecordAccess)
	router.GET("/api/v1/attendance/:dni", h.ListAttendance)
}
