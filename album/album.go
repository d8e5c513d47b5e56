// Package album enumerates the image files that make up a slideshow.
package album

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jsigner/wallslide/util"
)

// ErrNoImages is returned when a directory holds no files with a supported
// image extension.
var ErrNoImages = errors.New("no supported images in directory")

// Scan returns the absolute paths of all supported images directly under dir,
// sorted lexicographically by file name so the slideshow order is stable
// across runs. Subdirectories are not descended into.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !util.SupportedImage(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// Validate checks that dir exists and contains at least one supported image.
func Validate(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory not found: %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	paths, err := Scan(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: %s", ErrNoImages, dir)
	}
	return nil
}
