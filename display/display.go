// Package display resolves the target wallpaper resolution, either from a
// user supplied WxH string or from the primary display.
package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"
)

// Resolution is a display size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// IsZero reports whether the resolution is unset.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Parse parses a "WIDTHxHEIGHT" string such as "1920x1080".
func Parse(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q, expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution height %q: %w", h, err)
	}
	if width <= 0 || height <= 0 {
		return Resolution{}, fmt.Errorf("invalid resolution %q, dimensions must be positive", s)
	}
	return Resolution{Width: width, Height: height}, nil
}

// Detect returns the resolution of the primary display.
func Detect() (Resolution, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return Resolution{}, errors.New("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	res := Resolution{Width: bounds.Dx(), Height: bounds.Dy()}
	if res.Width <= 0 || res.Height <= 0 {
		return Resolution{}, fmt.Errorf("primary display reported invalid bounds %s", res)
	}
	return res, nil
}
