package service

import (
	"context"
	"time"

	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/model"
	"photobox/pkg/sanitizer"
	"photobox/pkg/timeslot"
)

type Store interface {
	LoadSettings() model.Settings
	SaveSettings(settings model.Settings) error
}

type SettingsService interface {
	Get(ctx context.Context) model.Settings
	Save(ctx context.Context, settings model.Settings) (model.Settings, error)
}

type settingsService struct {
	store Store
	cfg   *config.Config
}

func NewSettingsService(store Store, cfg *config.Config) SettingsService {
	return &settingsService{
		store: store,
		cfg:   cfg,
	}
}

func (s *settingsService) Get(_ context.Context) model.Settings {
	return s.store.LoadSettings()
}

func (s *settingsService) Save(_ context.Context, settings model.Settings) (model.Settings, error) {
	settings.StudioName = sanitizer.TrimAndNormalize(settings.StudioName)
	settings.StudioAddress = sanitizer.TrimAndNormalize(settings.StudioAddress)
	settings.StudioPhone = sanitizer.NormalizePhone(settings.StudioPhone)
	settings.StudioEmail = sanitizer.TrimAndNormalize(settings.StudioEmail)
	settings.ApplyDefaults()

	if err := validate(settings); err != nil {
		return model.Settings{}, err
	}

	if err := s.store.SaveSettings(settings); err != nil {
		s.cfg.Log.Error("Failed to save settings", "error", err)
		return model.Settings{}, err
	}

	s.cfg.Log.Info("Settings saved",
		"open_time", settings.OpenTime,
		"close_time", settings.CloseTime,
		"auto_confirm", settings.AutoConfirm,
		"holidays", len(settings.Holidays),
	)
	return settings, nil
}

func validate(settings model.Settings) error {
	open, err := timeslot.Parse(settings.OpenTime)
	if err != nil {
		return apperrors.Validation("openTime must be in HH:MM format", nil)
	}
	closing, err := timeslot.Parse(settings.CloseTime)
	if err != nil {
		return apperrors.Validation("closeTime must be in HH:MM format", nil)
	}
	if !open.Before(closing) {
		return apperrors.Validation("openTime must be before closeTime", map[string]any{
			"openTime":  settings.OpenTime,
			"closeTime": settings.CloseTime,
		})
	}
	if settings.SlotDuration <= 0 || settings.SlotDuration%timeslot.QuantumMinutes != 0 {
		return apperrors.Validation("slotDuration must be a positive multiple of 30 minutes", map[string]any{
			"slotDuration": settings.SlotDuration,
		})
	}

	fees := map[string]int{
		"priceBasic":     settings.PriceBasic,
		"pricePremium":   settings.PricePremium,
		"priceExclusive": settings.PriceExclusive,
		"extraPerson":    settings.ExtraPerson,
		"extra30min":     settings.Extra30Min,
		"extra60min":     settings.Extra60Min,
		"extraProps":     settings.ExtraProps,
	}
	for field, value := range fees {
		if value < 0 {
			return apperrors.Validation("fees cannot be negative", map[string]any{
				"field": field,
				"value": value,
			})
		}
	}

	for _, d := range settings.Holidays {
		if _, err := time.Parse(model.DateFormat, d); err != nil {
			return apperrors.Validation("holidays must be dates in YYYY-MM-DD format", map[string]any{
				"date": d,
			})
		}
	}

	if settings.ReminderHours < 0 {
		return apperrors.Validation("reminderHours cannot be negative", nil)
	}
	return nil
}
