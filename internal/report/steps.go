// Package report implements the daily-steps reporting path. It reads
// the step count metric from Garmin Connect and exports it as CSV,
// chart rendering is out of scope for this tool.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mkettu/runsync/internal/garmin"
)

// StepsClient is the subset of the Garmin client the report needs.
type StepsClient interface {
	Login(ctx context.Context) error
	DailySteps(ctx context.Context, startDate, endDate time.Time) ([]garmin.DailySteps, error)
}

// Summary holds aggregate statistics over the reported period.
type Summary struct {
	Days    int
	Average float64
	Max     int
	Min     int
}

// FetchDailySteps logs in and returns the per-day step counts for the
// last daysBack days.
func FetchDailySteps(ctx context.Context, client StepsClient, daysBack int) ([]garmin.DailySteps, error) {
	if daysBack <= 0 {
		return nil, fmt.Errorf("report: lookback days must be positive, got %d", daysBack)
	}

	if err := client.Login(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -daysBack)
	return client.DailySteps(ctx, start, end)
}

// WriteCSV writes the step data to w with a header row, one line per
// day in the order the service returned them.
func WriteCSV(w io.Writer, days []garmin.DailySteps) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "total_steps"}); err != nil {
		return fmt.Errorf("report: writing CSV header: %w", err)
	}

	for _, day := range days {
		if day.CalendarDate == "" {
			continue
		}
		if err := cw.Write([]string{day.CalendarDate, strconv.Itoa(day.TotalSteps)}); err != nil {
			return fmt.Errorf("report: writing CSV row for %s: %w", day.CalendarDate, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flushing CSV: %w", err)
	}
	return nil
}

// Summarize computes average, max and min daily steps over the period.
func Summarize(days []garmin.DailySteps) Summary {
	s := Summary{}
	total := 0
	for _, day := range days {
		if day.CalendarDate == "" {
			continue
		}
		if s.Days == 0 || day.TotalSteps > s.Max {
			s.Max = day.TotalSteps
		}
		if s.Days == 0 || day.TotalSteps < s.Min {
			s.Min = day.TotalSteps
		}
		total += day.TotalSteps
		s.Days++
	}
	if s.Days > 0 {
		s.Average = float64(total) / float64(s.Days)
	}
	return s
}
