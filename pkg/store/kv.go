package store

import (
	"errors"

	"fyne.io/fyne/v2"
	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by KV.Read for keys that were never written
var ErrNotFound = errors.New("store: key not found")

// KV is the key/value backend holding the persisted records. Writes are
// full overwrites of a record.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// DiskKV keeps each record in its own file under a base directory
type DiskKV struct {
	d *diskv.Diskv
}

// NewDiskKV creates a diskv backed store rooted at basePath
func NewDiskKV(basePath string) *DiskKV {
	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (k *DiskKV) Read(key string) ([]byte, error) {
	if !k.d.Has(key) {
		return nil, ErrNotFound
	}
	return k.d.Read(key)
}

func (k *DiskKV) Write(key string, data []byte) error {
	return k.d.Write(key, data)
}

// PrefsKV stores records as strings in Fyne preferences
type PrefsKV struct {
	prefs fyne.Preferences
}

// NewPrefsKV wraps the preferences of a Fyne app
func NewPrefsKV(prefs fyne.Preferences) *PrefsKV {
	return &PrefsKV{prefs: prefs}
}

func (k *PrefsKV) Read(key string) ([]byte, error) {
	val := k.prefs.String(key)
	if val == "" {
		return nil, ErrNotFound
	}
	return []byte(val), nil
}

func (k *PrefsKV) Write(key string, data []byte) error {
	k.prefs.SetString(key, string(data))
	return nil
}
