//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

static int appIsActive(void) {
    return [NSApp isActive] ? 1 : 0;
}

static void raiseApp(void) {
    [NSApp activateIgnoringOtherApps:YES];
}

static void setActivationPolicy(int regular) {
    if (regular) {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyRegular];
    } else {
        [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    }
}
*/
import "C"

// IsAppActive reports whether sticky-alarm owns keyboard focus. The alert
// window polls it to keep itself in front while ringing.
func IsAppActive() bool {
	return C.appIsActive() == 1
}

// ActivateApp pulls sticky-alarm in front of other applications
func ActivateApp() {
	C.raiseApp()
}

// SetDockVisible shows the dock icon while the board window is open and
// hides it when only the tray icon is left
func SetDockVisible(visible bool) {
	regular := C.int(0)
	if visible {
		regular = 1
	}
	C.setActivationPolicy(regular)
}
