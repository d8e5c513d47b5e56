// Package util is a set of utility variables or methods
package util

import (
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// SupportedExt holds the lowercase image extensions recognized by the slideshow.
var SupportedExt = mapset.NewSet(
	".jpeg", ".jpg",
	".png",
	".gif",
	".bmp",
	".tiff",
)

// SupportedImage reports whether name carries a recognized image extension.
// Comparison is case-insensitive.
func SupportedImage(name string) bool {
	return SupportedExt.Contains(strings.ToLower(filepath.Ext(name)))
}
