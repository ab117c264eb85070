package database

import (
	"encoding/json"
	"fmt"

	"github.com/gifdock/gifdock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore persists the single Settings record as one row per field in
// a generic key/value table, each value JSON-encoded.
type SettingsStore struct {
	db *gorm.DB
}

type settingRow struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (settingRow) TableName() string {
	return "settings"
}

// Get returns defaults when nothing is stored, otherwise merges stored pairs
// over the defaults. Unrecognized keys are ignored and values that fail to
// decode fall back to their default.
func (s *SettingsStore) Get() (models.Settings, error) {
	var rows []settingRow
	if err := s.db.Find(&rows).Error; err != nil {
		return models.Settings{}, fmt.Errorf("failed to fetch settings: %w", err)
	}

	settings := models.DefaultSettings()
	for _, row := range rows {
		applySetting(&settings, row.Key, row.Value)
	}
	return settings, nil
}

// Save fully replaces the stored record: clear, then reinsert every key.
func (s *SettingsStore) Save(settings *models.Settings) error {
	rows, err := settingRows(settings)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&settingRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear settings: %w", err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// UpdateKey upserts a single JSON-encoded value.
func (s *SettingsStore) UpdateKey(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingRow{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to update setting %q: %w", key, err)
	}
	return nil
}

func settingRows(settings *models.Settings) ([]settingRow, error) {
	fields := []struct {
		key   string
		value interface{}
	}{
		{"api_key", settings.APIKey},
		{"hotkey", settings.Hotkey},
		{"window_width", settings.WindowWidth},
		{"window_height", settings.WindowHeight},
		{"max_item_width", settings.MaxItemWidth},
		{"close_after_selection", settings.CloseAfterSelection},
		{"launch_at_startup", settings.LaunchAtStartup},
		{"theme", settings.Theme},
		{"clipboard_mode", settings.ClipboardMode},
	}

	rows := make([]settingRow, 0, len(fields))
	for _, field := range fields {
		encoded, err := json.Marshal(field.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode setting %q: %w", field.key, err)
		}
		rows = append(rows, settingRow{Key: field.key, Value: string(encoded)})
	}
	return rows, nil
}

func applySetting(settings *models.Settings, key, value string) {
	switch key {
	case "api_key":
		var v *string
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.APIKey = v
		}
	case "hotkey":
		var v string
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.Hotkey = v
		}
	case "window_width":
		var v int
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.WindowWidth = v
		}
	case "window_height":
		var v int
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.WindowHeight = v
		}
	case "max_item_width":
		var v int
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.MaxItemWidth = v
		}
	case "close_after_selection":
		var v bool
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.CloseAfterSelection = v
		}
	case "launch_at_startup":
		var v bool
		if json.Unmarshal([]byte(value), &v) == nil {
			settings.LaunchAtStartup = v
		}
	case "theme":
		var v string
		if json.Unmarshal([]byte(value), &v) == nil {
			if theme, err := models.ParseTheme(v); err == nil {
				settings.Theme = theme
			}
		}
	case "clipboard_mode":
		var v string
		if json.Unmarshal([]byte(value), &v) == nil {
			if mode, err := models.ParseClipboardMode(v); err == nil {
				settings.ClipboardMode = mode
			}
		}
	}
}
