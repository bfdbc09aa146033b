package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockCountsOnlyWhileRunning(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewClock(time.Minute)
	c.now = func() time.Time { return now }

	now = now.Add(time.Hour)
	require.Equal(t, time.Minute, c.TimeLeft())

	c.Start()
	now = now.Add(20 * time.Second)
	require.Equal(t, 40*time.Second, c.TimeLeft())

	c.Stop()
	now = now.Add(time.Hour)
	require.Equal(t, 40*time.Second, c.TimeLeft())
	require.False(t, c.Expired())

	c.Start()
	now = now.Add(41 * time.Second)
	require.True(t, c.Expired())
}
