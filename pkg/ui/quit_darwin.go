//go:build darwin

package ui

import "golang.design/x/hotkey"

var quitModifiers = []hotkey.Modifier{hotkey.ModCmd}
