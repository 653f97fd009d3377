package constants

import "time"

// Pagination
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Notification cleanup
const (
	DefaultCleanupDaysOld = 30
	DefaultCleanupCron    = "0 3 * * *"
)

// Cache keys and lifetimes
const (
	UnreadCountKeyPrefix = "notifications:unread:"
	UnreadCountTTL       = 5 * time.Minute
	ContentStatsKey      = "content:stats"
	ContentStatsTTL      = 10 * time.Minute
)

// Token lifetime
const AccessTokenTTL = 24 * time.Hour

// BulkSendConcurrency caps in-flight sends for one bulk request.
const BulkSendConcurrency = 10
