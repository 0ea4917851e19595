package assistant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	repliesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "assistant",
		Name:      "replies_total",
		Help:      "Assistant replies labeled by responder and outcome.",
	}, []string{"responder", "outcome"})

	replyDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Subsystem: "assistant",
		Name:      "reply_duration_seconds",
		Help:      "Time spent waiting for the responder.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"responder"})
)

func init() {
	prometheus.MustRegister(repliesCounter, replyDuration)
}

func recordReply(responder string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	repliesCounter.WithLabelValues(responder, outcome).Inc()
	replyDuration.WithLabelValues(responder).Observe(elapsed.Seconds())
}
