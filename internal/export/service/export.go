package service

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/model"
)

type Store interface {
	ListAll() []model.Booking
}

type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer, date string) error
}

type exportService struct {
	store Store
	cfg   *config.Config
}

func NewExportService(store Store, cfg *config.Config) ExportService {
	return &exportService{
		store: store,
		cfg:   cfg,
	}
}

var csvHeader = []string{
	"ID", "Name", "Phone", "Email", "Date", "Time",
	"Package", "People", "TimeExtra", "Props", "Total", "Status", "Notes",
}

// WriteCSV streams the collection as CSV, oldest booking first. An empty
// date exports everything; otherwise only bookings on that date.
func (s *exportService) WriteCSV(_ context.Context, w io.Writer, date string) error {
	bookings := s.store.ListAll()

	rows := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if date != "" && b.Date != date {
			continue
		}
		rows = append(rows, b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Time != rows[j].Time {
			return rows[i].Time < rows[j].Time
		}
		return rows[i].ID < rows[j].ID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return apperrors.Internal("Failed to write CSV header", err)
	}
	for _, b := range rows {
		record := []string{
			b.ID,
			b.Name,
			b.Phone,
			b.Email,
			b.Date,
			b.Time,
			b.Package,
			strconv.Itoa(b.People),
			strconv.Itoa(b.TimeExtra),
			strconv.FormatBool(b.Props),
			strconv.Itoa(b.Total),
			b.Status,
			b.Notes,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Internal("Failed to write CSV record", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Internal("Failed to flush CSV", err)
	}

	s.cfg.Log.Info("Bookings exported", "rows", len(rows), "date", date)
	return nil
}
