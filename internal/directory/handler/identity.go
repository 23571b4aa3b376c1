package handler

import (
	"context"
	"net/http"

	"smartgym/internal/directory/service"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
	"smartgym/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type linkFunc func(ctx context.Context, req *model.IdentityLinkRequest) (*model.IdentityLink, error)

type IdentityHandler struct {
	service service.IdentityService
	log     *logger.Logger
}

func NewIdentityHandler(service service.IdentityService, log *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		log:     log,
	}
}

func (h *IdentityHandler) LinkCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.link(w, r, "LinkCustomer", h.service.LinkCustomer)
}

func (h *IdentityHandler) LinkTrainer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.link(w, r, "LinkTrainer", h.service.LinkTrainer)
}

func (h *IdentityHandler) link(w http.ResponseWriter, r *http.Request, handler string, link linkFunc) {
	var req model.IdentityLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, handler, err)
		return
	}

	created, err := link(r.Context(), &req)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	if err := httputil.WriteCreated(w, created, "Identity linked"); err != nil {
		h.log.Error("failed to write created response", "handler", handler, "operation", "WriteCreated", "error", err)
	}
}

func (h *IdentityHandler) Resolve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	link, err := h.service.Resolve(r.Context(), ps.ByName("dni"))
	if err != nil {
		h.writeError(w, "Resolve", err)
		return
	}
	h.writeSuccess(w, "Resolve", link)
}

func (h *IdentityHandler) CustomerByDNI(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customer, err := h.service.CustomerByDNI(r.Context(), ps.ByName("dni"))
	if err != nil {
		h.writeError(w, "CustomerByDNI", err)
		return
	}
	h.writeSuccess(w, "CustomerByDNI", customer)
}

func (h *IdentityHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *IdentityHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

// RegisterRoutes keeps the customer lookup under /identity because
// /api/v1/customers/:id already owns that wildcard segment.
func (h *IdentityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/identity/customer", h.LinkCustomer)
	router.POST("/api/v1/identity/trainer", h.LinkTrainer)
	router.GET("/api/v1/identity/:dni", h.Resolve)
	router.GET("/api/v1/identity/:dni/customer", h.CustomerByDNI)
}
