package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetClock(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available", err)
	}

	fixed := time.Date(2024, time.August, 26, 14, 30, 0, 0, loc)
	restore := SetClock(func() time.Time { return fixed })

	now := Now()
	require.Equal(t, time.UTC, now.Location())
	require.True(t, fixed.Equal(now))
	require.Equal(t, 12, now.Hour())

	restore()
	require.WithinDuration(t, time.Now(), Now(), time.Minute)
}
