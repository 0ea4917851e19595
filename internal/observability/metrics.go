package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	feedSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dashboard",
		Subsystem: "feed",
		Name:      "records",
		Help:      "Number of activity records currently retained by the feed.",
	})
	feedEvictedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "feed",
		Name:      "records_evicted_total",
		Help:      "Activity records dropped because the feed exceeded its bound.",
	})
	feedLastActivityGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dashboard",
		Subsystem: "feed",
		Name:      "last_activity_timestamp_seconds",
		Help:      "Unix timestamp of the most recently prepended activity.",
	})
	tickerFiredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "ticker",
		Name:      "fired_total",
		Help:      "Number of times the feed ticker synthesized an activity.",
	})
	quickActionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "quick_actions",
		Name:      "executed_total",
		Help:      "Quick actions executed, labeled by action and outcome.",
	}, []string{"action", "outcome"})
)

func init() {
	prometheus.MustRegister(feedSizeGauge, feedEvictedCounter, feedLastActivityGauge, tickerFiredCounter, quickActionCounter)
}

// RecordFeedSize publishes the current feed length.
func RecordFeedSize(n int) {
	feedSizeGauge.Set(float64(n))
}

// RecordFeedEvicted counts records dropped by truncation.
func RecordFeedEvicted(n int) {
	if n <= 0 {
		return
	}
	feedEvictedCounter.Add(float64(n))
}

// RecordFeedActivity updates the feed watermark gauge.
func RecordFeedActivity(ts time.Time) {
	if ts.IsZero() {
		return
	}
	feedLastActivityGauge.Set(float64(ts.Unix()))
}

// RecordTickerFired counts ticker firings.
func RecordTickerFired() {
	tickerFiredCounter.Inc()
}

// RecordQuickAction counts a quick action execution.
func RecordQuickAction(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	quickActionCounter.WithLabelValues(action, outcome).Inc()
}
