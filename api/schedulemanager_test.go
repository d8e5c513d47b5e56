package api

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsigner/wallslide/display"
	"github.com/jsigner/wallslide/slideshow"
	"github.com/jsigner/wallslide/store"
)

func newScheduleFixture(t *testing.T, schedule *store.Schedule) (*ScheduleManager, *slideshow.Slideshow) {
	t.Helper()
	db, err := store.NewDatabase(filepath.Join(t.TempDir(), "wallslide.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.UpsertSchedule(schedule))

	show, err := slideshow.New(slideshow.Options{
		Directory:  t.TempDir(),
		Interval:   10 * time.Second,
		Resolution: display.Resolution{Width: 1920, Height: 1080},
	}, nopRenderer{}, nopSetter{})
	require.NoError(t, err)

	mgr, err := NewScheduleManager(db, show)
	require.NoError(t, err)
	return mgr, show
}

func clockAt(t time.Time) string {
	return t.Format("15:04")
}

func TestCheckScheduleCrossings(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		start, end time.Duration // schedule clock times as offsets from now
		lastCheck  time.Duration
		paused     bool // slideshow state before the check
		wantPaused bool
	}{
		{
			name:       "end crossing pauses",
			start:      -2 * time.Hour,
			end:        -time.Minute,
			lastCheck:  -2 * time.Minute,
			wantPaused: true,
		},
		{
			name:      "start crossing resumes",
			start:     -time.Minute,
			end:       time.Hour,
			lastCheck: -2 * time.Minute,
			paused:    true,
		},
		{
			name:      "inside window no crossing",
			start:     -time.Hour,
			end:       time.Hour,
			lastCheck: -time.Minute,
		},
		{
			name:       "manual pause kept inside window",
			start:      -time.Hour,
			end:        time.Hour,
			lastCheck:  -time.Minute,
			paused:     true,
			wantPaused: true,
		},
		{
			name:       "wrapped end crossing pauses",
			start:      time.Minute,
			end:        -time.Minute,
			lastCheck:  -2 * time.Minute,
			wantPaused: true,
		},
		{
			name:      "wrapped start crossing resumes",
			start:     -time.Minute,
			end:       -3 * time.Minute,
			lastCheck: -2 * time.Minute,
			paused:    true,
		},
		{
			name:      "wrapped inside window no crossing",
			start:     -time.Hour,
			end:       -2 * time.Hour,
			lastCheck: -time.Minute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, show := newScheduleFixture(t, &store.Schedule{
				Enabled: true,
				Start:   clockAt(now.Add(tt.start)),
				End:     clockAt(now.Add(tt.end)),
			})
			if tt.paused {
				show.Pause()
			}
			mgr.lastCheck = now.Add(tt.lastCheck)

			mgr.checkSchedule()

			assert.Equal(t, tt.wantPaused, show.Status().Paused)
		})
	}
}

func TestCheckScheduleStartupAlignment(t *testing.T) {
	now := time.Now()

	t.Run("inside window resumes", func(t *testing.T) {
		mgr, show := newScheduleFixture(t, &store.Schedule{
			Enabled: true,
			Start:   clockAt(now.Add(-2 * time.Minute)),
			End:     clockAt(now.Add(2 * time.Minute)),
		})
		show.Pause()

		mgr.checkSchedule()

		assert.False(t, show.Status().Paused)
		assert.False(t, mgr.lastCheck.IsZero())
	})

	t.Run("outside window pauses", func(t *testing.T) {
		mgr, show := newScheduleFixture(t, &store.Schedule{
			Enabled: true,
			Start:   clockAt(now.Add(2 * time.Minute)),
			End:     clockAt(now.Add(4 * time.Minute)),
		})

		mgr.checkSchedule()

		assert.True(t, show.Status().Paused)
	})

	t.Run("inside wrapped window resumes", func(t *testing.T) {
		mgr, show := newScheduleFixture(t, &store.Schedule{
			Enabled: true,
			Start:   clockAt(now.Add(-2 * time.Minute)),
			End:     clockAt(now.Add(-4 * time.Minute)),
		})
		show.Pause()

		mgr.checkSchedule()

		assert.False(t, show.Status().Paused)
	})
}

func TestCheckScheduleDisabled(t *testing.T) {
	now := time.Now()
	mgr, show := newScheduleFixture(t, &store.Schedule{
		Enabled: false,
		Start:   clockAt(now.Add(2 * time.Minute)),
		End:     clockAt(now.Add(4 * time.Minute)),
	})

	mgr.checkSchedule()

	assert.False(t, show.Status().Paused)
}

func TestCheckScheduleInvalidTimes(t *testing.T) {
	mgr, show := newScheduleFixture(t, &store.Schedule{
		Enabled: true,
		Start:   "not-a-time",
		End:     "23:00",
	})
	mgr.lastCheck = time.Now().Add(-time.Minute)

	mgr.checkSchedule()

	assert.False(t, show.Status().Paused)
}
