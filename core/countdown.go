package core

import (
	"fmt"
	"time"
)

// Remaining returns the time left until expiry, clamped at zero.
func Remaining(expiresAt, now time.Time) time.Duration {
	d := expiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the expiry has passed by the local clock.
func Expired(expiresAt, now time.Time) bool {
	return Remaining(expiresAt, now) == 0
}

// FormatClock renders a duration as a zero-padded MM:SS countdown.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
