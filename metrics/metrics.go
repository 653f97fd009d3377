package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications persisted",
		},
		[]string{"type"},
	)

	ChannelDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_deliveries_total",
			Help: "Delivery attempts per channel",
		},
		[]string{"channel", "status"}, // status: success, failed
	)

	NotificationsCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_cleaned_total",
			Help: "Read notifications removed by cleanup",
		},
	)

	ContentViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_views_total",
			Help: "Content view count increments",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementNotificationSent(kind string) {
	NotificationsSent.WithLabelValues(kind).Inc()
}

func IncrementChannelDelivery(channel string, ok bool) {
	status := "success"
	if !ok {
		status = "failed"
	}
	ChannelDeliveries.WithLabelValues(channel, status).Inc()
}

func AddNotificationsCleaned(n int64) {
	NotificationsCleaned.Add(float64(n))
}

func IncrementContentViews() {
	ContentViews.Inc()
}
