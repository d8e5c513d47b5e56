// Package slideshow drives the wallpaper rotation loop.
package slideshow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/jsigner/wallslide/album"
	"github.com/jsigner/wallslide/display"
)

// Renderer produces a copy of an image scaled to the target resolution.
type Renderer interface {
	Render(src string, res display.Resolution) (string, error)
}

// Setter applies an image file as the desktop background.
type Setter interface {
	Set(path string) error
}

// Options configures a slideshow. Directory and Interval are required.
type Options struct {
	Directory  string
	Interval   time.Duration
	Resolution display.Resolution
	Shuffle    bool
}

// Status is a snapshot of the running slideshow.
type Status struct {
	// Current is the image on display and Index its position in the album.
	Current         string             `json:"current"`
	Index           int                `json:"index"`
	Count           int                `json:"count"`
	IntervalSeconds int                `json:"interval_seconds"`
	Shuffle         bool               `json:"shuffle"`
	Paused          bool               `json:"paused"`
	Resolution      display.Resolution `json:"resolution"`
}

// Slideshow rotates the desktop wallpaper through the images of a directory.
// The directory is rescanned every cycle so additions and removals are picked
// up without a restart.
type Slideshow struct {
	renderer Renderer
	setter   Setter

	mu      sync.Mutex
	opts    Options
	paths   []string
	order   []int
	cursor  int
	current string
	shown   int
	paused  bool

	kick chan struct{}
}

// New validates the options and creates a slideshow. The album itself is
// validated by Run so that a bad directory is still reported before the
// first sleep.
func New(opts Options, renderer Renderer, setter Setter) (*Slideshow, error) {
	if opts.Directory == "" {
		return nil, errors.New("no image directory configured")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("transition interval must be positive, got %s", opts.Interval)
	}
	if opts.Resolution.IsZero() {
		return nil, errors.New("no target resolution configured")
	}
	if renderer == nil || setter == nil {
		return nil, errors.New("slideshow requires a renderer and a setter")
	}
	return &Slideshow{
		renderer: renderer,
		setter:   setter,
		opts:     opts,
		kick:     make(chan struct{}, 1),
	}, nil
}

// Run rotates the wallpaper until ctx is cancelled and then returns nil.
// It fails immediately with a configuration error when the directory is
// missing or holds no supported images.
func (s *Slideshow) Run(ctx context.Context) error {
	if err := album.Validate(s.opts.Directory); err != nil {
		return err
	}

	for {
		s.tick()
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.interval()):
		case <-s.kick:
		}
	}
}

// tick shows the image at the cursor and advances it. Failures on a single
// image are logged and the slideshow moves on at the next tick.
func (s *Slideshow) tick() {
	s.mu.Lock()
	opts := s.opts
	paused := s.paused
	s.mu.Unlock()

	if paused {
		return
	}

	paths, err := album.Scan(opts.Directory)
	if err != nil {
		slog.Warn("unable to rescan album, keeping previous contents", "directory", opts.Directory, "error", err)
		s.mu.Lock()
		paths = s.paths
		s.mu.Unlock()
	}
	if len(paths) == 0 {
		slog.Warn("album is empty, waiting for next cycle", "directory", opts.Directory)
		return
	}

	s.mu.Lock()
	if len(paths) != len(s.paths) {
		// Album changed size, restart the pass to keep ordering sane.
		s.cursor = 0
		s.order = nil
	}
	s.paths = paths
	if s.cursor >= len(paths) {
		s.cursor = 0
	}
	idx := s.cursor
	if opts.Shuffle {
		// Reshuffle when the album changed or a full pass completed.
		if len(s.order) != len(paths) || s.cursor == 0 && s.current != "" {
			s.order = rand.Perm(len(paths))
		}
		idx = s.order[s.cursor]
	}
	path := paths[idx]
	s.cursor = (s.cursor + 1) % len(paths)
	s.mu.Unlock()

	rendered, err := s.renderer.Render(path, opts.Resolution)
	if err != nil {
		slog.Warn("unable to render image", "path", path, "error", err)
		return
	}
	if err := s.setter.Set(rendered); err != nil {
		slog.Warn("unable to set wallpaper", "path", rendered, "error", err)
		return
	}

	s.mu.Lock()
	s.current = path
	s.shown = idx
	s.mu.Unlock()
	slog.Debug("wallpaper set", "path", path)
}

// Next wakes the loop so the following image is shown immediately.
func (s *Slideshow) Next() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Pause stops wallpaper changes; the loop keeps running but skips ticks.
func (s *Slideshow) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume re-enables wallpaper changes and advances right away.
func (s *Slideshow) Resume() {
	s.mu.Lock()
	wasPaused := s.paused
	s.paused = false
	s.mu.Unlock()
	if wasPaused {
		s.Next()
	}
}

// SetInterval updates the transition interval, taking effect on the next tick.
func (s *Slideshow) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("transition interval must be positive, got %s", d)
	}
	s.mu.Lock()
	s.opts.Interval = d
	s.mu.Unlock()
	return nil
}

// SetShuffle toggles shuffle mode and restarts the current pass.
func (s *Slideshow) SetShuffle(enabled bool) {
	s.mu.Lock()
	s.opts.Shuffle = enabled
	s.order = nil
	s.cursor = 0
	s.mu.Unlock()
}

// Status returns a snapshot of the slideshow state.
func (s *Slideshow) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Current:         s.current,
		Index:           s.shown,
		Count:           len(s.paths),
		IntervalSeconds: int(s.opts.Interval / time.Second),
		Shuffle:         s.opts.Shuffle,
		Paused:          s.paused,
		Resolution:      s.opts.Resolution,
	}
}

func (s *Slideshow) interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Interval
}
