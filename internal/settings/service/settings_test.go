package service

import (
	"context"
	"io"
	"testing"

	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/logger"
	"photobox/pkg/model"
	"photobox/pkg/store"
)

func newTestService(t *testing.T) SettingsService {
	t.Helper()

	log := logger.New(logger.Config{
		Level:  "error",
		Format: logger.FormatJSON,
		Output: io.Discard,
		App:    "test",
	})
	st, err := store.New(t.TempDir(), log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewSettingsService(st, &config.Config{Log: log})
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := newTestService(t)

	settings := svc.Get(context.Background())
	if settings.OpenTime != model.DefaultOpenTime {
		t.Errorf("expected default open time, got %q", settings.OpenTime)
	}
	if settings.PriceBasic != model.DefaultPriceBasic {
		t.Errorf("expected default basic price, got %d", settings.PriceBasic)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.OpenTime = "09:00"
	settings.CloseTime = "18:00"
	settings.AutoConfirm = true
	settings.Holidays = []string{"2026-12-25"}

	saved, err := svc.Save(ctx, settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.OpenTime != "09:00" {
		t.Errorf("expected open time 09:00, got %q", saved.OpenTime)
	}

	loaded := svc.Get(ctx)
	if loaded.CloseTime != "18:00" || !loaded.AutoConfirm {
		t.Errorf("settings did not round-trip: %+v", loaded)
	}
	if !loaded.IsHoliday("2026-12-25") {
		t.Error("expected 2026-12-25 to be a holiday")
	}
}

func TestSaveFillsZeroFieldsFromDefaults(t *testing.T) {
	svc := newTestService(t)

	saved, err := svc.Save(context.Background(), model.Settings{OpenTime: "09:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.CloseTime != model.DefaultCloseTime {
		t.Errorf("expected default close time, got %q", saved.CloseTime)
	}
	if saved.PriceExclusive != model.DefaultPriceExclusive {
		t.Errorf("expected default exclusive price, got %d", saved.PriceExclusive)
	}
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Settings)
	}{
		{"bad open time", func(s *model.Settings) { s.OpenTime = "nine" }},
		{"open after close", func(s *model.Settings) { s.OpenTime = "22:00"; s.CloseTime = "08:00" }},
		{"open equals close", func(s *model.Settings) { s.OpenTime = "10:00"; s.CloseTime = "10:00" }},
		{"off-grid slot duration", func(s *model.Settings) { s.SlotDuration = 45 }},
		{"negative fee", func(s *model.Settings) { s.ExtraProps = -100 }},
		{"bad holiday", func(s *model.Settings) { s.Holidays = []string{"25-12-2026"} }},
		{"negative reminder", func(s *model.Settings) { s.ReminderHours = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := model.DefaultSettings()
			tc.mutate(&settings)
			_, err := svc.Save(ctx, settings)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Errorf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
