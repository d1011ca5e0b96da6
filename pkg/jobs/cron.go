// Package jobs runs the scheduled maintenance tasks: the nightly featured
// listing expiry sweep and a periodic backend connectivity probe.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dumpsterly/dumpsterly-api/pkg/logger"
	"github.com/dumpsterly/dumpsterly-api/pkg/store"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron  *cron.Cron
	store *store.Store
	log   logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(st *store.Store, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}

	return &CronManager{
		cron:  cron.New(),
		store: st,
		log:   log,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	// Daily at 2 AM: clear the featured flag on listings whose paid window
	// has lapsed. featured_until is authoritative either way; the sweep
	// keeps the stored flag from drifting.
	_, err := cm.cron.AddFunc("0 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		expired, err := cm.store.ExpireFeaturedListings(ctx)
		if err != nil {
			cm.log.Error("featured expiry sweep failed", "error", err)
			return
		}
		cm.log.Info("featured expiry sweep completed", "expired", expired)
	})
	if err != nil {
		return err
	}

	// Hourly: probe backend connectivity so degradation shows up in logs
	// before a user hits it
	_, err = cm.cron.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		status := cm.store.TestConnection(ctx)
		if !status.Success {
			cm.log.Warn("backend connectivity probe failed", "backend", status.Type, "error", status.Error)
			return
		}
		cm.log.Debug("backend connectivity probe ok", "backend", status.Type)
	})
	if err != nil {
		return err
	}

	cm.log.Info("cron jobs configured",
		"jobs", []string{"featured expiry (daily 2 AM)", "connectivity probe (hourly)"})

	return nil
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop stops the cron scheduler and waits for running jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
}
