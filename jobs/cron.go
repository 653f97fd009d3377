package jobs

import (
	"context"
	"fmt"
	"time"

	"eduplatform/services/logger"

	"github.com/robfig/cron/v3"
)

// cleanupTimeout bounds a single cleanup run.
const cleanupTimeout = 5 * time.Minute

// NotificationCleaner removes read notifications older than daysOld days.
type NotificationCleaner interface {
	CleanupOldNotifications(ctx context.Context, daysOld int) (int64, error)
}

// CleanupJob returns the cron func that runs one cleanup pass.
func CleanupJob(cleaner NotificationCleaner, daysOld int, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		log.Info("Running notification cleanup (daysOld=%d)", daysOld)
		deleted, err := cleaner.CleanupOldNotifications(ctx, daysOld)
		if err != nil {
			log.Error("Notification cleanup failed: %v", err)
			return
		}
		log.Info("Notification cleanup removed %d row(s)", deleted)
	}
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, cleaner NotificationCleaner, spec string, daysOld int, log logger.Logger) error {
	if daysOld < 0 {
		return fmt.Errorf("cleanup daysOld must not be negative, got %d", daysOld)
	}
	if _, err := c.AddFunc(spec, CleanupJob(cleaner, daysOld, log)); err != nil {
		return fmt.Errorf("schedule notification cleanup %q: %w", spec, err)
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
