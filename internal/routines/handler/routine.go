package handler

import (
	"net/http"

	"smartgym/internal/routines/service"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoutineHandler struct {
	service service.RoutineService
	log     *logger.Logger
}

func NewRoutineHandler(service service.RoutineService, log *logger.Logger) *RoutineHandler {
	return &RoutineHandler{
		service: service,
		log:     log,
	}
}

func (h *RoutineHandler) Assign(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.DNIRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Assign", err)
		return
	}

	routine, err := h.service.Assign(r.Context(), req.DNI)
	if err != nil {
		h.writeError(w, "Assign", err)
		return
	}

	if err := httputil.WriteCreated(w, routine, "Routine assigned"); err != nil {
		h.log.Error("failed to write created response", "handler", "Assign", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoutineHandler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	routines, err := h.service.History(r.Context(), ps.ByName("dni"))
	if err != nil {
		h.writeError(w, "History", err)
		return
	}
	h.writeSuccess(w, "History", routines)
}

// ActiveBlock reads the weekday from the "day" query parameter.
func (h *RoutineHandler) ActiveBlock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	block, err := h.service.ActiveBlock(r.Context(), ps.ByName("dni"), r.URL.Query().Get("day"))
	if err != nil {
		h.writeError(w, "ActiveBlock", err)
		return
	}
	h.writeSuccess(w, "ActiveBlock", block)
}

func (h *RoutineHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoutineHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoutineHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/routines/assign", h.Assign)
	router.GET("/api/v1/routines/history/:dni", h.History)
	router.GET("/api/v1/routines/active/:dni", h.ActiveBlock)
}
