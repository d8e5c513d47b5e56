package store

// Settings are the persisted slideshow settings.
type Settings struct {
	IntervalSeconds int    `json:"interval_seconds"`
	ShuffleEnabled  bool   `json:"shuffle_enabled"`
	FitMode         string `json:"fit_mode"`
}

// Schedule is the daily window during which the slideshow runs. Start and
// End are "15:04" clock strings; a window that ends before it starts wraps
// past midnight.
type Schedule struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}
