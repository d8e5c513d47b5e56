package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jsigner/wallslide/slideshow"
	"github.com/jsigner/wallslide/store"
)

const scheduleInterval = time.Minute

// ScheduleManager will periodically check the time to decide if we need to
// pause or resume the slideshow
type ScheduleManager struct {
	db   *store.Database
	show *slideshow.Slideshow

	lastCheck time.Time
}

func NewScheduleManager(db *store.Database, show *slideshow.Slideshow) (*ScheduleManager, error) {
	if db == nil {
		return nil, errors.New("no database provided for scheduler")
	}
	if show == nil {
		return nil, errors.New("no slideshow provided for scheduler")
	}

	return &ScheduleManager{
		db:   db,
		show: show,
	}, nil
}

func (s *ScheduleManager) checkSchedule() {
	schedule, err := s.db.GetSchedule()
	if err != nil {
		slog.Error("unable to get schedule", "error", err)
		return
	}

	if !schedule.Enabled {
		return
	}

	now := time.Now()
	defer func() { s.lastCheck = now }()

	startTime, err := time.Parse("15:04", schedule.Start)
	if err != nil {
		slog.Warn("start time with invalid format", "start", schedule.Start, "error", err)
		return
	}

	endTime, err := time.Parse("15:04", schedule.End)
	if err != nil {
		slog.Warn("end time with invalid format", "end", schedule.End, "error", err)
		return
	}

	// First check after startup: align with the window instead of waiting
	// for a boundary crossing.
	if s.lastCheck.IsZero() {
		if withinWindow(now, startTime, endTime) {
			s.show.Resume()
			slog.Info("inside schedule window at startup, slideshow running", "time", now)
		} else {
			s.show.Pause()
			slog.Info("outside schedule window at startup, pausing slideshow", "time", now)
		}
		return
	}

	startDate := time.Date(now.Year(), now.Month(), now.Day(), startTime.Hour(), startTime.Minute(), 0, 0, now.Location())
	endDate := time.Date(now.Year(), now.Month(), now.Day(), endTime.Hour(), endTime.Minute(), 0, 0, now.Location())
	// When the window wraps past midnight, today's end boundary closes
	// yesterday's window and must stay on today so the crossing after
	// midnight still fires. Shift it a day only once today's window has
	// opened.
	if startTime.After(endTime) && now.After(endDate) && now.After(startDate) {
		endDate = endDate.Add(24 * time.Hour)
	}

	// crossed into end of schedule - pause the slideshow
	if s.lastCheck.Before(endDate) && now.After(endDate) {
		s.show.Pause()
		slog.Info("pausing slideshow for schedule", "time", now)
		return
	}

	// crossed into start of schedule - resume the slideshow
	if now.After(startDate) && s.lastCheck.Before(startDate) {
		s.show.Resume()
		slog.Info("resuming slideshow for schedule", "time", now)
		return
	}
}

// withinWindow reports whether the clock time of now falls inside the daily
// window, handling windows that wrap past midnight.
func withinWindow(now, start, end time.Time) bool {
	nowMin := now.Hour()*60 + now.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if startMin > endMin {
		return nowMin >= startMin || nowMin < endMin
	}
	return nowMin >= startMin && nowMin < endMin
}

func (s *ScheduleManager) Run() {
	ticker := time.NewTicker(scheduleInterval)

	s.checkSchedule()

	for range ticker.C {
		s.checkSchedule()
	}
}
