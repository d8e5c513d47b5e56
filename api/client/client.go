// Package client is a thin http client for the control api, used by the
// ctl subcommand.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jsigner/wallslide/api/models"
	"github.com/jsigner/wallslide/slideshow"
	"github.com/jsigner/wallslide/store"
)

type ControlClient struct {
	baseURL string
	client  *http.Client
}

func NewControlClient(baseURL string) *ControlClient {
	return &ControlClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Status returns the current slideshow state.
func (cc *ControlClient) Status() (*slideshow.Status, error) {
	var status slideshow.Status
	if err := cc.do(http.MethodGet, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Next advances the slideshow to the following image.
func (cc *ControlClient) Next() error {
	return cc.do(http.MethodPost, "/slideshow/next", nil, nil)
}

// Pause stops wallpaper changes until Resume is called.
func (cc *ControlClient) Pause() error {
	return cc.do(http.MethodPost, "/slideshow/pause", nil, nil)
}

// Resume re-enables wallpaper changes.
func (cc *ControlClient) Resume() error {
	return cc.do(http.MethodPost, "/slideshow/resume", nil, nil)
}

// GetSettings fetches the slideshow settings.
func (cc *ControlClient) GetSettings() (*store.Settings, error) {
	var settings store.Settings
	if err := cc.do(http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the slideshow settings.
func (cc *ControlClient) UpdateSettings(s *store.Settings) error {
	req := models.UpdateSettingsRequest{
		IntervalSeconds: s.IntervalSeconds,
		ShuffleEnabled:  s.ShuffleEnabled,
		FitMode:         s.FitMode,
	}
	return cc.do(http.MethodPut, "/settings", req, nil)
}

// GetSchedule fetches the display schedule.
func (cc *ControlClient) GetSchedule() (*store.Schedule, error) {
	var schedule store.Schedule
	if err := cc.do(http.MethodGet, "/schedule", nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpdateSchedule replaces the display schedule.
func (cc *ControlClient) UpdateSchedule(s *store.Schedule) error {
	req := models.UpdateScheduleRequest{
		Enabled: s.Enabled,
		Start:   s.Start,
		End:     s.End,
	}
	return cc.do(http.MethodPut, "/schedule", req, nil)
}

func (cc *ControlClient) do(method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, cc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("server returned %d for %s %s", resp.StatusCode, method, path)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
