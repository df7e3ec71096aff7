package activity

import (
	"testing"
	"time"

	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/gpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestPace(t *testing.T) {
	testCases := []struct {
		name     string
		distance float64
		duration int
		expected *float64
	}{
		{"5k in 25 minutes", 5000, 1500, f64(300.00)},
		{"10k in 50 minutes", 10000, 3000, f64(300.00)},
		{"rounding to two decimals", 9876, 3000, f64(303.77)},
		{"zero distance", 0, 1500, nil},
		{"zero duration", 5000, 0, nil},
		{"both zero", 0, 0, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pace(tc.distance, tc.duration)
			if tc.expected == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tc.expected, *got, 1e-9)
			}
		})
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	summary := &garmin.ActivitySummary{
		ActivityID:     i64(42),
		ActivityType:   garmin.ActivityType{TypeKey: "running"},
		StartTimeLocal: "2024-01-01T06:00:00",
		Distance:       f64(10000),
		Duration:       f64(3000),
		Calories:       f64(512.3),
		AverageHR:      f64(152),
		MaxHR:          f64(181),
	}

	act, samples, err := Normalize(summary, &garmin.ActivityDetail{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "42", act.ExternalID)
	assert.Equal(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.Local), act.StartTime)
	require.NotNil(t, act.EndTime)
	assert.Equal(t, act.StartTime.Add(3000*time.Second), *act.EndTime)
	assert.InDelta(t, 10000, act.DistanceMeters, 1e-9)
	assert.Equal(t, 3000, act.DurationSeconds)
	require.NotNil(t, act.AvgPaceSecondsPerKm)
	assert.InDelta(t, 300.0, *act.AvgPaceSecondsPerKm, 1e-9)
	require.NotNil(t, act.Calories)
	assert.Equal(t, 512, *act.Calories)
	require.NotNil(t, act.AvgHeartRate)
	assert.Equal(t, 152, *act.AvgHeartRate)
	require.NotNil(t, act.MaxHeartRate)
	assert.Equal(t, 181, *act.MaxHeartRate)
	assert.Empty(t, samples)
}

func TestNormalizeAbsentFieldsStayAbsent(t *testing.T) {
	summary := &garmin.ActivitySummary{
		ActivityID:     i64(7),
		StartTimeLocal: "2024-03-10T08:30:00",
	}

	act, _, err := Normalize(summary, nil, nil)
	require.NoError(t, err)

	// A missing heart rate must stay NULL, zero would be a plausible
	// but wrong reading.
	assert.Nil(t, act.AvgHeartRate)
	assert.Nil(t, act.MaxHeartRate)
	assert.Nil(t, act.Calories)
	assert.Nil(t, act.AvgPaceSecondsPerKm)
	assert.Nil(t, act.EndTime)
	assert.Zero(t, act.DistanceMeters)
	assert.Zero(t, act.DurationSeconds)
}

func TestNormalizeSummaryWinsOverDetail(t *testing.T) {
	summary := &garmin.ActivitySummary{
		ActivityID:     i64(9),
		StartTimeLocal: "2024-02-02T07:00:00",
		Distance:       f64(5000),
	}
	detail := &garmin.ActivityDetail{
		Summary: garmin.SummaryDTO{
			Distance: f64(9999),
			Duration: f64(1500),
		},
	}

	act, _, err := Normalize(summary, detail, nil)
	require.NoError(t, err)

	// Distance comes from the summary, duration from the detail.
	assert.InDelta(t, 5000, act.DistanceMeters, 1e-9)
	assert.Equal(t, 1500, act.DurationSeconds)
	require.NotNil(t, act.AvgPaceSecondsPerKm)
	assert.InDelta(t, 300.0, *act.AvgPaceSecondsPerKm, 1e-9)
}

func TestNormalizeMissingIdentifier(t *testing.T) {
	_, _, err := Normalize(&garmin.ActivitySummary{}, nil, nil)
	assert.ErrorIs(t, err, ErrMissingActivityID)

	_, _, err = Normalize(nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingActivityID)
}

func TestNormalizeUnparseableStartFallsBackToNow(t *testing.T) {
	summary := &garmin.ActivitySummary{
		ActivityID:     i64(11),
		StartTimeLocal: "not a timestamp",
	}

	act, _, err := Normalize(summary, nil, nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), act.StartTime, time.Minute)
}

func TestNormalizeConvertsTrackPoints(t *testing.T) {
	ts := time.Date(2024, 1, 1, 6, 0, 5, 0, time.UTC)
	points := []gpx.Point{
		{Timestamp: ts, Latitude: 60.17, Longitude: 24.94, Elevation: f64(12.4)},
		{Timestamp: ts.Add(5 * time.Second), Latitude: 60.18, Longitude: 24.95},
	}
	summary := &garmin.ActivitySummary{ActivityID: i64(5), StartTimeLocal: "2024-01-01T06:00:00"}

	_, samples, err := Normalize(summary, nil, points)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, ts, samples[0].Timestamp)
	assert.InDelta(t, 60.17, samples[0].Latitude, 1e-9)
	require.NotNil(t, samples[0].ElevationMeters)
	assert.InDelta(t, 12.4, *samples[0].ElevationMeters, 1e-9)
	assert.Nil(t, samples[1].ElevationMeters)
	assert.Nil(t, samples[0].SpeedMps)
}

func TestParseLocalTimeStripsUTCMarker(t *testing.T) {
	withMarker, err := ParseLocalTime("2024-01-01T06:00:00Z")
	require.NoError(t, err)
	withoutMarker, err := ParseLocalTime("2024-01-01T06:00:00")
	require.NoError(t, err)

	// The marker is discarded, not converted.
	assert.Equal(t, withoutMarker, withMarker)

	_, err = ParseLocalTime("")
	assert.Error(t, err)
}
