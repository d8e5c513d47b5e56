// Package imaging renders album images at the target wallpaper resolution.
// Scaled copies are written to a work directory so the originals are never
// modified, mirroring what the album owner would expect from a viewer.
package imaging

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"github.com/jsigner/wallslide/display"
)

// Fit selects how an image is mapped onto the target resolution.
type Fit string

const (
	// FitFill scales the image to cover the full resolution, cropping any
	// overflow. This is the default.
	FitFill Fit = "fill"
	// FitContain scales the image to fit inside the resolution and centers
	// it on a black canvas.
	FitContain Fit = "fit"
)

// ParseFit parses a fit mode string.
func ParseFit(s string) (Fit, error) {
	switch Fit(s) {
	case FitFill, FitContain:
		return Fit(s), nil
	case "":
		return FitFill, nil
	default:
		return "", fmt.Errorf("invalid fit mode %q, expected %q or %q", s, FitFill, FitContain)
	}
}

// Renderer scales images into a private work directory and caches the
// results for the lifetime of the process.
type Renderer struct {
	fit     Fit
	workDir string
}

// NewRenderer creates a renderer with a fresh temporary work directory.
// Call Close to remove the directory and every rendered copy.
func NewRenderer(fit Fit) (*Renderer, error) {
	workDir, err := os.MkdirTemp("", "wallslide-")
	if err != nil {
		return nil, fmt.Errorf("unable to create render work directory: %w", err)
	}
	return &Renderer{fit: fit, workDir: workDir}, nil
}

// Render returns the path of a copy of src scaled to res. If src already has
// exactly those dimensions the original path is returned. Rendered copies are
// reused across cycles.
func (r *Renderer) Render(src string, res display.Resolution) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("unable to open image %s: %w", src, err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("unable to decode image %s: %w", src, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == res.Width && bounds.Dy() == res.Height {
		return src, nil
	}

	out := r.cachePath(src, res)
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, placement(bounds, res, r.fit), img, bounds, xdraw.Src, nil)

	outFile, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("unable to create rendered image %s: %w", out, err)
	}
	if err := jpeg.Encode(outFile, dst, &jpeg.Options{Quality: 90}); err != nil {
		outFile.Close()
		os.Remove(out)
		return "", fmt.Errorf("unable to encode rendered image %s: %w", out, err)
	}
	if err := outFile.Close(); err != nil {
		return "", fmt.Errorf("unable to close rendered image %s: %w", out, err)
	}
	return out, nil
}

// WorkDir returns the directory holding rendered copies.
func (r *Renderer) WorkDir() string {
	return r.workDir
}

// Close removes the work directory and all rendered copies.
func (r *Renderer) Close() error {
	return os.RemoveAll(r.workDir)
}

// placement computes the destination rectangle of the scaled image on the
// target canvas. fill covers the canvas and lets the overflow be cropped;
// fit letterboxes inside it. Either way the image stays centered.
func placement(src image.Rectangle, res display.Resolution, fit Fit) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	scaleX := float64(res.Width) / float64(sw)
	scaleY := float64(res.Height) / float64(sh)

	scale := scaleX
	switch fit {
	case FitContain:
		if scaleY < scale {
			scale = scaleY
		}
	default:
		if scaleY > scale {
			scale = scaleY
		}
	}

	w := int(float64(sw)*scale + 0.5)
	h := int(float64(sh)*scale + 0.5)
	x := (res.Width - w) / 2
	y := (res.Height - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func (r *Renderer) cachePath(src string, res display.Resolution) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	// Include a checksum of the full source path so equal base names from
	// different directories cannot collide in the cache.
	sum := crc32.ChecksumIEEE([]byte(src))
	return filepath.Join(r.workDir, fmt.Sprintf("%s_%08x_%s.jpg", base, sum, res))
}
