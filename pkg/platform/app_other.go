//go:build !darwin

package platform

// IsAppActive is always true off macOS; the window manager keeps the
// full screen alert on top
func IsAppActive() bool {
	return true
}

func ActivateApp() {}

// SetDockVisible only matters where there is a dock
func SetDockVisible(bool) {}
