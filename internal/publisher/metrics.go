package publisher

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "publisher",
		Name:      "events_published_total",
		Help:      "Activity events successfully written to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "publisher",
		Name:      "events_failed_total",
		Help:      "Activity events that could not be written to Kafka.",
	})
)

func init() {
	prometheus.MustRegister(publishedCounter, failedCounter)
}
