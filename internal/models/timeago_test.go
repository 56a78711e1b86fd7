package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 0, "0s"},
		{"seconds", 42 * time.Second, "42s"},
		{"minutes", 5 * time.Minute, "5m"},
		{"hours", 3*time.Hour + 59*time.Minute, "3h"},
		{"days", 2 * 24 * time.Hour, "2d"},
		{"months", 65 * 24 * time.Hour, "2mo"},
		{"years", 400 * 24 * time.Hour, "1y"},
		{"exactly a minute", time.Minute, "60s"},
		{"exactly an hour", time.Hour, "60m"},
		{"future clamps", -time.Minute, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now))
		})
	}
}
