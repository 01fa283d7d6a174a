package store

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "photobox/pkg/errors"
	"photobox/pkg/model"
)

// LoadSettings reads the settings key. A missing or corrupt record degrades
// to the defaults; individual zero fields are filled from the defaults too,
// so a partially saved record stays usable.
func (s *Store) LoadSettings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings model.Settings

	data, err := os.ReadFile(s.path(SettingsKey))
	switch {
	case os.IsNotExist(err):
		// first run, defaults apply
	case err != nil:
		s.log.Error("Settings unreadable, using defaults", "error", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			s.log.Error("Settings corrupt, using defaults", "error", err)
			settings = model.Settings{}
		}
	}

	settings.ApplyDefaults()
	return settings
}

// SaveSettings replaces the settings record atomically.
func (s *Store) SaveSettings(settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return apperrors.StorageFault("failed to encode settings", err)
	}

	tmp, err := os.CreateTemp(s.dir, SettingsKey+".*.tmp")
	if err != nil {
		return apperrors.StorageFault("failed to save settings", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.StorageFault("failed to save settings", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.StorageFault("failed to save settings", err)
	}
	if err := os.Rename(tmp.Name(), s.path(SettingsKey)); err != nil {
		os.Remove(tmp.Name())
		return apperrors.StorageFault(fmt.Sprintf("failed to replace %s", SettingsKey), err)
	}

	s.log.Info("Settings saved")
	return nil
}
