package slideshow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsigner/wallslide/album"
	"github.com/jsigner/wallslide/display"
)

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(src string, res display.Resolution) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return src, nil
}

type fakeSetter struct {
	mu    sync.Mutex
	err   error
	paths []string
}

func (f *fakeSetter) Set(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

func (f *fakeSetter) setPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func albumDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func newTestShow(t *testing.T, opts Options, renderer Renderer, setter Setter) *Slideshow {
	t.Helper()
	if opts.Interval == 0 {
		opts.Interval = time.Hour
	}
	if opts.Resolution.IsZero() {
		opts.Resolution = display.Resolution{Width: 1920, Height: 1080}
	}
	show, err := New(opts, renderer, setter)
	require.NoError(t, err)
	return show
}

func TestNewValidatesOptions(t *testing.T) {
	renderer := &fakeRenderer{}
	setter := &fakeSetter{}
	res := display.Resolution{Width: 1, Height: 1}

	_, err := New(Options{Interval: time.Second, Resolution: res}, renderer, setter)
	assert.Error(t, err)

	_, err = New(Options{Directory: "d", Resolution: res}, renderer, setter)
	assert.Error(t, err)

	_, err = New(Options{Directory: "d", Interval: -time.Second, Resolution: res}, renderer, setter)
	assert.Error(t, err)

	_, err = New(Options{Directory: "d", Interval: time.Second}, renderer, setter)
	assert.Error(t, err)

	_, err = New(Options{Directory: "d", Interval: time.Second, Resolution: res}, nil, setter)
	assert.Error(t, err)
}

func TestTickRoundRobin(t *testing.T) {
	dir := albumDir(t, "a.jpg", "b.jpg", "c.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	for i := 0; i < 4; i++ {
		show.tick()
	}

	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "c.jpg"),
		filepath.Join(dir, "a.jpg"),
	}
	assert.Equal(t, want, setter.setPaths())
}

func TestRunEmptyDirectoryFailsFast(t *testing.T) {
	dir := albumDir(t, "notes.txt")
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, &fakeSetter{})

	start := time.Now()
	err := show.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, album.ErrNoImages))
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunMissingDirectoryFails(t *testing.T) {
	show := newTestShow(t, Options{Directory: filepath.Join(t.TempDir(), "missing")}, &fakeRenderer{}, &fakeSetter{})
	assert.Error(t, show.Run(context.Background()))
}

func TestRunExitsCleanlyOnCancel(t *testing.T) {
	dir := albumDir(t, "a.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- show.Run(ctx) }()

	// Let the first tick land, then cancel during the sleep.
	require.Eventually(t, func() bool { return len(setter.setPaths()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("slideshow did not stop after cancellation")
	}
	// No further wallpaper was set after the cancel.
	assert.Len(t, setter.setPaths(), 1)
}

func TestNextAdvancesImmediately(t *testing.T) {
	dir := albumDir(t, "a.jpg", "b.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- show.Run(ctx) }()

	require.Eventually(t, func() bool { return len(setter.setPaths()) == 1 }, 2*time.Second, 10*time.Millisecond)
	show.Next()
	require.Eventually(t, func() bool { return len(setter.setPaths()) == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	paths := setter.setPaths()
	assert.Equal(t, filepath.Join(dir, "a.jpg"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.jpg"), paths[1])
}

func TestPauseSkipsTicks(t *testing.T) {
	dir := albumDir(t, "a.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	show.Pause()
	show.tick()
	show.tick()
	assert.Empty(t, setter.setPaths())

	show.Resume()
	show.tick()
	assert.Len(t, setter.setPaths(), 1)
	assert.False(t, show.Status().Paused)
}

func TestRenderFailureSkipsTick(t *testing.T) {
	dir := albumDir(t, "a.jpg", "b.jpg")
	renderer := &fakeRenderer{err: errors.New("decode failed")}
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, renderer, setter)

	show.tick()
	assert.Empty(t, setter.setPaths())

	// The loop recovers once rendering works again.
	renderer.err = nil
	show.tick()
	assert.Equal(t, []string{filepath.Join(dir, "b.jpg")}, setter.setPaths())
}

func TestSetFailureSkipsTick(t *testing.T) {
	dir := albumDir(t, "a.jpg")
	setter := &fakeSetter{err: errors.New("osascript failed")}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	show.tick()
	assert.Empty(t, setter.setPaths())
	assert.Empty(t, show.Status().Current)
}

func TestAlbumChangeBetweenTicks(t *testing.T) {
	dir := albumDir(t, "a.jpg", "b.jpg", "c.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	show.tick()
	show.tick()

	require.NoError(t, os.Remove(filepath.Join(dir, "b.jpg")))
	require.NoError(t, os.Remove(filepath.Join(dir, "c.jpg")))

	show.tick()
	paths := setter.setPaths()
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.jpg"), paths[2])
}

func TestEmptyAlbumMidRunWaits(t *testing.T) {
	dir := albumDir(t, "a.jpg")
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir}, &fakeRenderer{}, setter)

	show.tick()
	require.NoError(t, os.Remove(filepath.Join(dir, "a.jpg")))
	show.tick()
	assert.Len(t, setter.setPaths(), 1)
}

func TestShuffleCoversAlbumEachPass(t *testing.T) {
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	dir := albumDir(t, names...)
	setter := &fakeSetter{}
	show := newTestShow(t, Options{Directory: dir, Shuffle: true}, &fakeRenderer{}, setter)

	for i := 0; i < len(names); i++ {
		show.tick()
	}

	got := setter.setPaths()
	sort.Strings(got)
	want := make([]string, len(names))
	for i, name := range names {
		want[i] = filepath.Join(dir, name)
	}
	assert.Equal(t, want, got)
}

func TestSetIntervalValidation(t *testing.T) {
	dir := albumDir(t, "a.jpg")
	show := newTestShow(t, Options{Directory: dir, Interval: 10 * time.Second}, &fakeRenderer{}, &fakeSetter{})

	assert.Error(t, show.SetInterval(0))
	assert.Error(t, show.SetInterval(-time.Second))
	require.NoError(t, show.SetInterval(15*time.Second))
	assert.Equal(t, 15, show.Status().IntervalSeconds)
}

func TestStatusSnapshot(t *testing.T) {
	dir := albumDir(t, "a.jpg", "b.jpg")
	show := newTestShow(t, Options{Directory: dir, Interval: 10 * time.Second}, &fakeRenderer{}, &fakeSetter{})

	show.tick()
	status := show.Status()
	assert.Equal(t, filepath.Join(dir, "a.jpg"), status.Current)
	assert.Equal(t, 0, status.Index)
	assert.Equal(t, 2, status.Count)
	assert.Equal(t, 10, status.IntervalSeconds)
	assert.False(t, status.Paused)

	// Index tracks the image on display, not the upcoming one.
	show.tick()
	status = show.Status()
	assert.Equal(t, filepath.Join(dir, "b.jpg"), status.Current)
	assert.Equal(t, 1, status.Index)
}
