package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"photobox/internal/export/service"
	apperrors "photobox/pkg/errors"
	httputil "photobox/pkg/http"
	"photobox/pkg/logger"
	"photobox/pkg/model"
)

type ExportHandler struct {
	service service.ExportService
	log     *logger.Logger
}

func NewExportHandler(service service.ExportService, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		log:     log,
	}
}

func (h *ExportHandler) BookingsCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse(model.DateFormat, date); err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("'date' must be in YYYY-MM-DD format")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "BookingsCSV", "error", writeErr)
			}
			return
		}
	}

	filename := "bookings.csv"
	if date != "" {
		filename = fmt.Sprintf("bookings-%s.csv", date)
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.WriteCSV(r.Context(), w, date); err != nil {
		// headers are already out; all we can do is log
		h.log.Error("failed to stream CSV export", "handler", "BookingsCSV", "error", err)
	}
}

func (h *ExportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/export/bookings.csv", h.BookingsCSV)
}
