package workers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Hamuko/daiseihai/models"
)

// LeagueSyncWorker periodically refreshes the cached copy of each
// league's externally hosted metadata document ({base}/{slug}.json).
type LeagueSyncWorker struct {
	db         *gorm.DB
	baseURL    string
	interval   time.Duration
	httpClient *http.Client

	scheduler gocron.Scheduler
}

func NewLeagueSyncWorker(db *gorm.DB, baseURL string, interval time.Duration) *LeagueSyncWorker {
	return &LeagueSyncWorker{
		db:       db,
		baseURL:  baseURL,
		interval: interval,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Start schedules the periodic sync. It is a no-op when no metadata
// base URL is configured.
func (w *LeagueSyncWorker) Start(ctx context.Context) error {
	if w.baseURL == "" {
		logrus.Info("league metadata sync disabled (no base URL)")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	w.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if err := w.SyncAll(ctx); err != nil {
				logrus.WithError(err).Error("league metadata sync failed")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule league sync: %w", err)
	}

	scheduler.Start()
	logrus.WithField("interval", w.interval).Info("league metadata sync scheduled")
	return nil
}

// Stop shuts the scheduler down.
func (w *LeagueSyncWorker) Stop() {
	if w.scheduler != nil {
		_ = w.scheduler.Shutdown()
	}
}

// SyncAll refreshes every league once.
func (w *LeagueSyncWorker) SyncAll(ctx context.Context) error {
	var leagues []models.League
	if err := w.db.Find(&leagues).Error; err != nil {
		return fmt.Errorf("failed to list leagues: %w", err)
	}

	var failed int
	for i := range leagues {
		if err := w.syncLeague(ctx, &leagues[i]); err != nil {
			failed++
			logrus.WithError(err).WithField("league", leagues[i].Slug).Warn("league sync failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d league(s) failed to sync", failed, len(leagues))
	}
	return nil
}

func (w *LeagueSyncWorker) syncLeague(ctx context.Context, league *models.League) error {
	url := league.MetadataURL(w.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata document %s returned %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", url, err)
	}

	now := time.Now().UTC()
	return w.db.Model(league).Updates(map[string]interface{}{
		"metadata":           string(body),
		"metadata_synced_at": now,
	}).Error
}
