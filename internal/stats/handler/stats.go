package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"photobox/internal/stats/service"
	httputil "photobox/pkg/http"
	"photobox/pkg/logger"
)

type StatsHandler struct {
	service service.StatsService
	log     *logger.Logger
}

func NewStatsHandler(service service.StatsService, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log,
	}
}

func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summary := h.service.Summary(r.Context(), time.Now())
	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Summary", "error", err)
	}
}

func (h *StatsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/stats", h.Summary)
}
