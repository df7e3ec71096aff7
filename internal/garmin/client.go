// Package garmin is a thin client for the Garmin Connect API. It keeps
// the authenticated session as explicit client state, every operation
// requires a prior Login on the same client.
package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkettu/runsync/internal/conf"
)

const (
	loginPath      = "/auth/login"
	activityList   = "/activitylist-service/activities/search/activities"
	activityDetail = "/activity-service/activity"
	gpxExport      = "/download-service/export/gpx/activity"
	dailySteps     = "/usersummary-service/stats/steps/daily"

	defaultTimeout = 30 * time.Second
)

// ErrNotAuthenticated is returned when an operation is attempted
// before a successful Login.
var ErrNotAuthenticated = errors.New("garmin: client is not authenticated")

// AuthError indicates that the Garmin Connect login was rejected.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("garmin: authentication failed with status %d", e.StatusCode)
}

// APIError indicates a failed API call after authentication.
type APIError struct {
	Endpoint   string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("garmin: request to %s failed with status %d", e.Endpoint, e.StatusCode)
}

// Client talks to the Garmin Connect API on behalf of one account.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client
	token      string
}

// NewClient returns an unauthenticated client for the configured account.
func NewClient(settings *conf.GarminSettings) *Client {
	return &Client{
		baseURL:    settings.APIHost,
		email:      settings.Email,
		password:   settings.Password,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Authenticated reports whether a login has succeeded on this client.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Login authenticates against Garmin Connect and stores the session
// token on the client.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"username": c.email,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("garmin: encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("garmin: building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("garmin: login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &AuthError{StatusCode: resp.StatusCode}
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("garmin: decoding login response: %w", err)
	}
	if session.Token == "" {
		return &AuthError{StatusCode: resp.StatusCode}
	}

	c.token = session.Token
	return nil
}

// ListActivities fetches a page of recent activities, most recent
// first, as ordered by the service.
func (c *Client) ListActivities(ctx context.Context, start, limit int) ([]ActivitySummary, error) {
	query := url.Values{}
	query.Set("start", fmt.Sprintf("%d", start))
	query.Set("limit", fmt.Sprintf("%d", limit))

	data, err := c.get(ctx, activityList, query)
	if err != nil {
		return nil, err
	}

	var activities []ActivitySummary
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("garmin: decoding activity list: %w", err)
	}
	return activities, nil
}

// ActivityDetails fetches the detailed record for one activity.
func (c *Client) ActivityDetails(ctx context.Context, activityID int64) (*ActivityDetail, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/%d", activityDetail, activityID), nil)
	if err != nil {
		return nil, err
	}

	var detail ActivityDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("garmin: decoding activity detail: %w", err)
	}
	return &detail, nil
}

// DownloadGPX fetches the raw GPX track document for one activity.
func (c *Client) DownloadGPX(ctx context.Context, activityID int64) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%d", gpxExport, activityID), nil)
}

// DailySteps fetches the per-day step counts for the inclusive date
// range. Used by the reporting path only.
func (c *Client) DailySteps(ctx context.Context, startDate, endDate time.Time) ([]DailySteps, error) {
	path := fmt.Sprintf("%s/%s/%s", dailySteps,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var days []DailySteps
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("garmin: decoding daily steps: %w", err)
	}
	return days, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("garmin: building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("garmin: request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("garmin: reading response from %s: %w", path, err)
	}
	return data, nil
}
