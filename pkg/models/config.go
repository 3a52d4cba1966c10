package models

// Storage backends for the alarm and palette records
const (
	StorageDisk        = "disk"
	StoragePreferences = "preferences"
)

// Config holds user preferences edited from the desktop app
type Config struct {
	AutoStart       bool   `json:"auto_start"`
	TwelveHour      bool   `json:"twelve_hour"`       // 8:00 AM instead of 08:00
	Expanded        bool   `json:"expanded"`          // last used zoom level
	HoldTimeSeconds int    `json:"hold_time_seconds"` // dismiss button hold time
	AlarmSound      string `json:"alarm_sound"`       // optional WAV file overriding synthesized tones
	Storage         string `json:"storage"`           // disk or preferences
}

// DefaultConfig returns the preferences used on first launch
func DefaultConfig() *Config {
	return &Config{
		HoldTimeSeconds: 2,
		Storage:         StorageDisk,
	}
}

// Validate repairs out-of-range values in place
func (c *Config) Validate() {
	if c.HoldTimeSeconds < 0 {
		c.HoldTimeSeconds = 0
	}
	if c.HoldTimeSeconds > 30 {
		c.HoldTimeSeconds = 30
	}
	if c.Storage != StoragePreferences {
		c.Storage = StorageDisk
	}
}
