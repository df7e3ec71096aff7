// Package ingest coordinates one sync run: authenticate, list recent
// activities, fetch detail and track for the newest run, normalize,
// check the dedup gate and persist. Steps are strictly sequential,
// each depends on the previous step's output.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mkettu/runsync/internal/activity"
	"github.com/mkettu/runsync/internal/conf"
	"github.com/mkettu/runsync/internal/datastore"
	"github.com/mkettu/runsync/internal/garmin"
	"github.com/mkettu/runsync/internal/gpx"
)

// runningTypeKey is the Garmin activity type this pipeline ingests.
const runningTypeKey = "running"

// Client is the subset of the Garmin Connect client the orchestrator
// depends on.
type Client interface {
	Login(ctx context.Context) error
	ListActivities(ctx context.Context, start, limit int) ([]garmin.ActivitySummary, error)
	ActivityDetails(ctx context.Context, activityID int64) (*garmin.ActivityDetail, error)
	DownloadGPX(ctx context.Context, activityID int64) ([]byte, error)
}

// Outcome is the terminal state of one sync run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes a sync run for logging and exit status.
type Result struct {
	Outcome     Outcome
	ExternalID  string
	SampleCount int
	Reason      string
}

// Coordinator runs the ingestion pipeline against a client and store.
type Coordinator struct {
	Settings *conf.Settings
	Client   Client
	Store    datastore.Interface

	// Clock is overridable for tests, nil means time.Now.
	Clock func() time.Time
}

// New returns a coordinator wired to the given collaborators.
func New(settings *conf.Settings, client Client, store datastore.Interface) *Coordinator {
	return &Coordinator{Settings: settings, Client: client, Store: store}
}

func (c *Coordinator) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// SyncLatestRun ingests the most recent running activity. It returns
// the run result together with the error that caused a failed outcome.
func (c *Coordinator) SyncLatestRun(ctx context.Context) (Result, error) {
	log := slog.With("run_id", uuid.NewString())
	log.Info("starting sync run")

	if err := c.Client.Login(ctx); err != nil {
		log.Error("login failed", "error", err)
		return Result{Outcome: OutcomeFailed, Reason: "authentication failed"}, err
	}

	summaries, err := c.Client.ListActivities(ctx, 0, c.Settings.Sync.ListLimit)
	if err != nil {
		log.Error("listing activities failed", "error", err)
		return Result{Outcome: OutcomeFailed, Reason: "activity listing failed"}, err
	}
	log.Info("fetched activity listing", "total", len(summaries))

	running := filterRunning(summaries)
	log.Info("filtered running activities", "count", len(running))
	if len(running) == 0 {
		log.Info("no new running activities found")
		return Result{Outcome: OutcomeSkipped, Reason: "no running activities"}, nil
	}

	// The listing is ordered most recent first by the source.
	latest := running[0]
	if latest.ActivityID == nil {
		err := activity.ErrMissingActivityID
		log.Error("latest running activity is unusable", "error", err)
		return Result{Outcome: OutcomeFailed, Reason: "normalization failed"}, err
	}
	activityID := *latest.ActivityID
	log = log.With("activity_id", activityID)

	detail, err := c.Client.ActivityDetails(ctx, activityID)
	if err != nil {
		log.Error("fetching activity details failed", "error", err)
		return Result{Outcome: OutcomeFailed, Reason: "detail fetch failed"}, err
	}

	points := c.fetchTrack(ctx, log, activityID)

	act, samples, err := activity.Normalize(&latest, detail, points)
	if err != nil {
		log.Error("normalization failed", "error", err)
		return Result{Outcome: OutcomeFailed, Reason: "normalization failed"}, err
	}

	exists, err := c.Store.ActivityExists(act.ExternalID)
	if err != nil {
		log.Error("dedup check failed", "error", err)
		return Result{Outcome: OutcomeFailed, ExternalID: act.ExternalID, Reason: "dedup check failed"}, err
	}
	if exists {
		log.Info("activity already synced", "external_id", act.ExternalID)
		return Result{Outcome: OutcomeSkipped, ExternalID: act.ExternalID, Reason: "already synced"}, nil
	}

	if err := c.Store.SaveActivity(&act, samples); err != nil {
		log.Error("persisting activity failed", "external_id", act.ExternalID, "samples", len(samples), "error", err)
		return Result{Outcome: OutcomeFailed, ExternalID: act.ExternalID, Reason: "persistence failed"}, err
	}

	log.Info("sync completed", "external_id", act.ExternalID, "samples", len(samples),
		"distance_m", act.DistanceMeters, "duration_s", act.DurationSeconds)
	return Result{Outcome: OutcomeSuccess, ExternalID: act.ExternalID, SampleCount: len(samples)}, nil
}

// fetchTrack downloads and parses the GPX track. Both a failed
// download and a malformed document degrade to zero samples, the run
// proceeds with metrics only.
func (c *Coordinator) fetchTrack(ctx context.Context, log *slog.Logger, activityID int64) []gpx.Point {
	data, err := c.Client.DownloadGPX(ctx, activityID)
	if err != nil {
		log.Warn("could not retrieve track data", "error", err)
		return nil
	}

	points, err := gpx.Parse(data)
	if err != nil {
		log.Warn("could not parse track data", "error", err)
		return nil
	}

	log.Info("retrieved track points", "count", len(points))
	return points
}

// ActivitiesSince lists running activities whose local start time
// falls within the last daysBack days. This is a read-only query, no
// normalization or persistence happens on this path.
func (c *Coordinator) ActivitiesSince(ctx context.Context, daysBack int) ([]garmin.ActivitySummary, error) {
	if daysBack <= 0 {
		return nil, fmt.Errorf("lookback days must be positive, got %d", daysBack)
	}

	if err := c.Client.Login(ctx); err != nil {
		return nil, err
	}

	// Rough estimate of activities per day, mirrors the listing window
	// the sync path uses as a floor.
	limit := daysBack * 10
	if limit < c.Settings.Sync.ListLimit {
		limit = c.Settings.Sync.ListLimit
	}

	summaries, err := c.Client.ListActivities(ctx, 0, limit)
	if err != nil {
		return nil, err
	}

	cutoff := c.now().AddDate(0, 0, -daysBack)
	var recent []garmin.ActivitySummary
	for _, s := range filterRunning(summaries) {
		start, err := activity.ParseLocalTime(s.StartTimeLocal)
		if err != nil {
			continue
		}
		if start.After(cutoff) {
			recent = append(recent, s)
		}
	}
	return recent, nil
}

func filterRunning(summaries []garmin.ActivitySummary) []garmin.ActivitySummary {
	var running []garmin.ActivitySummary
	for _, s := range summaries {
		if s.ActivityType.TypeKey == runningTypeKey {
			running = append(running, s)
		}
	}
	return running
}
