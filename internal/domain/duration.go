package domain

import (
	"fmt"
	"strings"
)

// FormatClock renders whole seconds as "h:mm:ss".
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatAgo renders an elapsed span as "Xd Yh Zm", omitting zero units.
// Spans under a minute come out empty; callers treat that as "just now".
func FormatAgo(seconds int64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	return strings.TrimSpace(b.String())
}
