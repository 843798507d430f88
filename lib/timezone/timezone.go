package timezone

import "time"

// scraping timestamps are always recorded in UTC so rows written from
// machines in different zones compare correctly as strings.
var Location = time.UTC

var clock = time.Now

func Now() time.Time {
	return clock().In(Location)
}

// SetClock replaces the time source and returns a function restoring the previous one.
func SetClock(now func() time.Time) (restore func()) {
	previous := clock
	clock = now
	return func() {
		clock = previous
	}
}
