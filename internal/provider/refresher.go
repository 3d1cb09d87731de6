package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher keeps the league snapshot warm by re-fetching it on a schedule,
// so the first request after a cache expiry does not pay the full ESPN
// round-trip.
type Refresher struct {
	client   *Client
	logger   *logrus.Logger
	cron     *cron.Cron
	interval time.Duration

	mu        sync.Mutex
	isRunning bool
}

// NewRefresher creates a snapshot refresher with the given interval.
func NewRefresher(client *Client, interval time.Duration, logger *logrus.Logger) *Refresher {
	return &Refresher{
		client:   client,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start begins the scheduled refreshes and runs an initial one in the
// background.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", r.interval.String())
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return fmt.Errorf("failed to schedule snapshot refresh: %w", err)
	}

	r.cron.Start()
	r.isRunning = true

	go r.refresh()

	r.logger.WithField("interval", r.interval.String()).Info("Snapshot refresher started")
	return nil
}

// Stop halts the schedule. In-flight refreshes finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}
	r.cron.Stop()
	r.isRunning = false
	r.logger.Info("Snapshot refresher stopped")
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	data, err := r.client.Refresh(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Scheduled snapshot refresh failed")
		return
	}

	r.logger.WithFields(logrus.Fields{
		"teams":       len(data.Teams),
		"free_agents": len(data.FreeAgents),
	}).Debug("Snapshot refreshed")
}
