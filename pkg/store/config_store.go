package store

import (
	"fyne.io/fyne/v2"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(prefs fyne.Preferences) *ConfigStore {
	return &ConfigStore{prefs: prefs}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:       cs.prefs.BoolWithFallback("auto_start", def.AutoStart),
		TwelveHour:      cs.prefs.BoolWithFallback("twelve_hour", def.TwelveHour),
		Expanded:        cs.prefs.BoolWithFallback("expanded", def.Expanded),
		HoldTimeSeconds: cs.prefs.IntWithFallback("hold_time_seconds", def.HoldTimeSeconds),
		AlarmSound:      cs.prefs.StringWithFallback("alarm_sound", def.AlarmSound),
		Storage:         cs.prefs.StringWithFallback("storage", def.Storage),
	}
	config.Validate()

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	config.Validate()

	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetBool("twelve_hour", config.TwelveHour)
	cs.prefs.SetBool("expanded", config.Expanded)
	cs.prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	cs.prefs.SetString("alarm_sound", config.AlarmSound)
	cs.prefs.SetString("storage", config.Storage)
}
