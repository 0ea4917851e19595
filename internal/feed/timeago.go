package feed

import (
	"fmt"
	"math"
	"time"
)

// TimeAgo renders the elapsed time between occurredAt and now as a short label.
// Buckets use floor division: under a minute is "just now", then minutes, hours and days.
func TimeAgo(occurredAt, now time.Time) string {
	seconds := int64(math.Floor(now.Sub(occurredAt).Seconds()))

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}
