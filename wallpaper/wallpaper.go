// Package wallpaper sets the desktop background through the OS.
package wallpaper

import "errors"

// ErrUnsupported is returned on platforms without a wallpaper backend.
var ErrUnsupported = errors.New("setting the wallpaper is not supported on this platform")

// Setter applies an image file as the desktop background.
type Setter interface {
	Set(path string) error
}

// New returns the wallpaper setter for the current platform.
func New() (Setter, error) {
	return newSetter()
}
