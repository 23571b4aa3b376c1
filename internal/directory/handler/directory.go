package handler

import (
	"net/http"

	"smartgym/internal/directory/service"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type DirectoryHandler struct {
	service service.DirectoryService
	log     *logger.Logger
}

func NewDirectoryHandler(service service.DirectoryService, log *logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		log:     log,
	}
}

func (h *DirectoryHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var customer model.Customer
	if err := httputil.DecodeJSON(r, &customer); err != nil {
		h.writeError(w, "RegisterCustomer", err)
		return
	}

	if err := h.service.RegisterCustomer(r.Context(), &customer); err != nil {
		h.writeError(w, "RegisterCustomer", err)
		return
	}

	if err := httputil.WriteCreated(w, customer, "Customer registered"); err != nil {
		h.log.Error("failed to write created response", "handler", "RegisterCustomer", "operation", "WriteCreated", "error", err)
	}
}

func (h *DirectoryHandler) RegisterTrainer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var trainer model.Trainer
	if err := httputil.DecodeJSON(r, &trainer); err != nil {
		h.writeError(w, "RegisterTrainer", err)
		return
	}

	if err := h.service.RegisterTrainer(r.Context(), &trainer); err != nil {
		h.writeError(w, "RegisterTrainer", err)
		return
	}

	if err := httputil.WriteCreated(w, trainer, "Trainer registered"); err != nil {
		h.log.Error("failed to write created response", "handler", "RegisterTrainer", "operation", "WriteCreated", "error", err)
	}
}

func (h *DirectoryHandler) GetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customer, err := h.service.GetCustomer(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetCustomer", err)
		return
	}
	h.writeSuccess(w, "GetCustomer", customer)
}

func (h *DirectoryHandler) GetTrainer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trainer, err := h.service.GetTrainer(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetTrainer", err)
		return
	}
	h.writeSuccess(w, "GetTrainer", trainer)
}

func (h *DirectoryHandler) ListCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, "ListCustomers", err)
		return
	}
	h.writeSuccess(w, "ListCustomers", customers)
}

func (h *DirectoryHandler) ListTrainers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	trainers, err := h.service.ListTrainers(r.Context())
	if err != nil {
		h.writeError(w, "ListTrainers", err)
		return
	}
	h.writeSuccess(w, "ListTrainers", trainers)
}

func (h *DirectoryHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *DirectoryHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *DirectoryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/customers", h.RegisterCustomer)
	router.GET("/api/v1/customers", h.ListCustomers)
	router.GET("/api/v1/customers/:id", h.GetCustomer)

	router.POST("/api/v1/trainers", h.RegisterTrainer)
	router.GET("/api/v1/trainers", h.ListTrainers)
	router.GET("/api/v1/trainers/:id", h.GetTrainer)
}
