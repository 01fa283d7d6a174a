package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"photobox/internal/whatsapp/service"
	httputil "photobox/pkg/http"
	"photobox/pkg/logger"
)

type WhatsAppHandler struct {
	service service.WhatsAppService
	log     *logger.Logger
}

func NewWhatsAppHandler(service service.WhatsAppService, log *logger.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		service: service,
		log:     log,
	}
}

func (h *WhatsAppHandler) ConfirmationLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	link, err := h.service.ConfirmationLink(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ConfirmationLink", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, link); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmationLink", "error", err)
	}
}

func (h *WhatsAppHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings/id/:id/whatsapp", h.ConfirmationLink)
}
