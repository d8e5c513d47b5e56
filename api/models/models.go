// Package models tracks all api models for request and responses
package models

type UpdateSettingsRequest struct {
	IntervalSeconds int    `json:"interval_seconds"`
	ShuffleEnabled  bool   `json:"shuffle_enabled"`
	FitMode         string `json:"fit_mode"`
}

type UpdateScheduleRequest struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
