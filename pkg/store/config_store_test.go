package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

func TestConfigStoreDefaults(t *testing.T) {
	cs := NewConfigStore(test.NewTempApp(t).Preferences())
	assert.Equal(t, models.DefaultConfig(), cs.Load())
}

func TestConfigStoreRoundTrip(t *testing.T) {
	cs := NewConfigStore(test.NewTempApp(t).Preferences())

	cs.Save(&models.Config{
		AutoStart:       true,
		TwelveHour:      true,
		Expanded:        true,
		HoldTimeSeconds: 99,
		AlarmSound:      "/tmp/ring.wav",
		Storage:         "cloud",
	})

	got := cs.Load()
	assert.True(t, got.AutoStart)
	assert.True(t, got.TwelveHour)
	assert.True(t, got.Expanded)
	assert.Equal(t, 30, got.HoldTimeSeconds)
	assert.Equal(t, "/tmp/ring.wav", got.AlarmSound)
	assert.Equal(t, models.StorageDisk, got.Storage)
}
