package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"

	"photobox/pkg/config"
	"photobox/pkg/logger"
	"photobox/pkg/model"
)

type mockStore struct {
	bookings []model.Booking
}

func (m *mockStore) ListAll() []model.Booking {
	return m.bookings
}

func newTestService(bookings []model.Booking) ExportService {
	log := logger.New(logger.Config{
		Level:  "error",
		Format: logger.FormatJSON,
		Output: io.Discard,
		App:    "test",
	})
	return NewExportService(&mockStore{bookings: bookings}, &config.Config{Log: log})
}

func TestWriteCSVOrdersAndEscapes(t *testing.T) {
	bookings := []model.Booking{
		{ID: "BK002", Name: "Made Wira", Phone: "+6281111111111", Date: "2026-09-11", Time: "10:00", Package: "premium", People: 3, Total: 250000, Status: "confirmed"},
		{ID: "BK001", Name: "Putu, Ayu", Phone: "+6282222222222", Date: "2026-09-10", Time: "14:00", Package: "basic", People: 2, Total: 150000, Status: "pending", Notes: "line with \"quotes\""},
	}

	var buf bytes.Buffer
	if err := newTestService(bookings).WriteCSV(context.Background(), &buf, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "ID" {
		t.Errorf("expected header row, got %v", records[0])
	}
	// earliest date first regardless of insertion order
	if records[1][0] != "BK001" || records[2][0] != "BK002" {
		t.Errorf("rows out of order: %v, %v", records[1][0], records[2][0])
	}
	if records[1][1] != "Putu, Ayu" {
		t.Errorf("comma in name not preserved: %q", records[1][1])
	}
	if records[1][12] != "line with \"quotes\"" {
		t.Errorf("quotes in notes not preserved: %q", records[1][12])
	}
}

func TestWriteCSVFiltersByDate(t *testing.T) {
	bookings := []model.Booking{
		{ID: "BK001", Date: "2026-09-10", Time: "10:00"},
		{ID: "BK002", Date: "2026-09-11", Time: "10:00"},
	}

	var buf bytes.Buffer
	if err := newTestService(bookings).WriteCSV(context.Background(), &buf, "2026-09-11"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[1][0] != "BK002" {
		t.Errorf("expected BK002, got %q", records[1][0])
	}
}

func TestWriteCSVEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := newTestService(nil).WriteCSV(context.Background(), &buf, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}
