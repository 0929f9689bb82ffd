package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze the report
// date/time stamps via SetClock. Production uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the current time source.
func Clock() clockwork.Clock {
	return clock
}

// StampNow returns the local-clock date and time strings stored on a report
// at submission.
func StampNow() (date, tod string) {
	now := clock.Now()
	return now.Format("2006-01-02"), now.Format("15:04:05")
}
