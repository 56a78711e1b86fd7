package models

import (
	"fmt"
	"time"
)

// TimeAgo renders the coarse age of t relative to now, e.g. "5m" or "2d".
// A unit is used only once the age strictly exceeds one of it, so exactly one
// hour renders as "60m". Months use "mo" so they do not collide with minutes.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	steps := []struct {
		span   int64
		suffix string
	}{
		{31536000, "y"},
		{2592000, "mo"},
		{86400, "d"},
		{3600, "h"},
		{60, "m"},
	}
	for _, s := range steps {
		if seconds > s.span {
			return fmt.Sprintf("%d%s", seconds/s.span, s.suffix)
		}
	}
	return fmt.Sprintf("%ds", seconds)
}
