//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// finderSetter tells Finder through AppleScript to change the desktop
// picture. Finder applies the picture to the current desktop only, which
// matches how the slideshow is expected to behave on a single display.
type finderSetter struct{}

func newSetter() (Setter, error) {
	return finderSetter{}, nil
}

func (finderSetter) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to resolve wallpaper path %s: %w", path, err)
	}
	script := fmt.Sprintf(`tell application "Finder" to set desktop picture to POSIX file %q`, abs)
	if out, err := exec.Command("/usr/bin/osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript failed to set wallpaper: %w (%s)", err, string(out))
	}
	return nil
}
