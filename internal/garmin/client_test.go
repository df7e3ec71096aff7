package garmin

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/mkettu/runsync/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHost = "https://garmin.test"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(&conf.GarminSettings{
		Email:    "runner@example.com",
		Password: "secret",
		APIHost:  testHost,
	})
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func login(t *testing.T, c *Client) {
	t.Helper()
	httpmock.RegisterResponder(http.MethodPost, testHost+loginPath,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{"token": "session-token"}))
	require.NoError(t, c.Login(context.Background()))
}

func TestLoginStoresToken(t *testing.T) {
	c := newTestClient(t)
	assert.False(t, c.Authenticated())

	login(t, c)
	assert.True(t, c.Authenticated())
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, testHost+loginPath,
		httpmock.NewStringResponder(401, `{"error":"invalid credentials"}`))

	err := c.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, 401, authErr.StatusCode)
	assert.False(t, c.Authenticated())
}

func TestLoginEmptyTokenRejected(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, testHost+loginPath,
		httpmock.NewJsonResponderOrPanic(200, map[string]string{}))

	err := c.Login(context.Background())
	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestOperationsRequireLogin(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ListActivities(context.Background(), 0, 100)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.DownloadGPX(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestListActivities(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	payload := `[
	  {"activityId": 42, "activityName": "Morning Run",
	   "activityType": {"typeKey": "running"},
	   "startTimeLocal": "2024-01-01T06:00:00",
	   "distance": 10000.0, "duration": 3000.0},
	  {"activityId": 43, "activityType": {"typeKey": "cycling"},
	   "startTimeLocal": "2024-01-02T06:00:00"}
	]`
	httpmock.RegisterResponder(http.MethodGet, testHost+activityList,
		httpmock.NewStringResponder(200, payload))

	activities, err := c.ListActivities(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	first := activities[0]
	require.NotNil(t, first.ActivityID)
	assert.Equal(t, int64(42), *first.ActivityID)
	assert.Equal(t, "running", first.ActivityType.TypeKey)
	require.NotNil(t, first.Distance)
	assert.InDelta(t, 10000.0, *first.Distance, 1e-9)

	// Fields the service omitted stay nil, not zero.
	second := activities[1]
	assert.Nil(t, second.Distance)
	assert.Nil(t, second.AverageHR)
}

func TestActivityDetails(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	httpmock.RegisterResponder(http.MethodGet, testHost+activityDetail+"/42",
		httpmock.NewStringResponder(200,
			`{"activityId": 42, "summaryDTO": {"averageHR": 150.0, "maxHR": 175.0}}`))

	detail, err := c.ActivityDetails(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, detail.ActivityID)
	assert.Equal(t, int64(42), *detail.ActivityID)
	require.NotNil(t, detail.Summary.AverageHR)
	assert.InDelta(t, 150.0, *detail.Summary.AverageHR, 1e-9)
}

func TestDownloadGPX(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	httpmock.RegisterResponder(http.MethodGet, testHost+gpxExport+"/42",
		httpmock.NewStringResponder(200, `<gpx></gpx>`))

	data, err := c.DownloadGPX(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []byte(`<gpx></gpx>`), data)
}

func TestAPIErrorCarriesEndpointAndStatus(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	httpmock.RegisterResponder(http.MethodGet, testHost+gpxExport+"/42",
		httpmock.NewStringResponder(502, "bad gateway"))

	_, err := c.DownloadGPX(context.Background(), 42)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 502, apiErr.StatusCode)
}

func TestDailySteps(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	httpmock.RegisterResponder(http.MethodGet,
		testHost+dailySteps+"/2024-05-01/2024-05-03",
		httpmock.NewStringResponder(200, `[
		  {"calendarDate": "2024-05-01", "totalSteps": 8123},
		  {"calendarDate": "2024-05-02", "totalSteps": 10567}
		]`))

	days, err := c.DailySteps(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-05-01", days[0].CalendarDate)
	assert.Equal(t, 8123, days[0].TotalSteps)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	c := newTestClient(t)
	login(t, c)

	httpmock.RegisterResponder(http.MethodGet, testHost+activityList,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer session-token", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(200, `[]`), nil
		})

	_, err := c.ListActivities(context.Background(), 0, 10)
	require.NoError(t, err)
}
