package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 65*time.Second, Remaining(now.Add(65*time.Second), now))
	assert.Equal(t, time.Duration(0), Remaining(now, now))
	assert.Equal(t, time.Duration(0), Remaining(now.Add(-time.Minute), now))
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(65 * time.Second)

	assert.False(t, Expired(expiresAt, now))
	assert.True(t, Expired(expiresAt, now.Add(65*time.Second)))
	assert.True(t, Expired(expiresAt, now.Add(66*time.Second)))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "01:05", FormatClock(65*time.Second))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:09", FormatClock(9*time.Second))
	assert.Equal(t, "10:00", FormatClock(10*time.Minute))
	assert.Equal(t, "00:00", FormatClock(-3*time.Second))
}

func TestCountdownOverElapsedTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(65 * time.Second)

	// Immediately after issue the display reads 01:05.
	assert.Equal(t, "01:05", FormatClock(Remaining(expiresAt, now)))

	// After 66 seconds of elapsed time the session is expired and the
	// display pins at 00:00.
	later := now.Add(66 * time.Second)
	assert.True(t, Expired(expiresAt, later))
	assert.Equal(t, "00:00", FormatClock(Remaining(expiresAt, later)))
}
