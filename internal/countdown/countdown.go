// Package countdown computes the time remaining until a deadline and drives
// per-view recomputation at a fixed tick interval.
package countdown

import "time"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// RemainingTime is the breakdown of the time left until a deadline.
// It is derived from (deadline, now) and never updated in place.
type RemainingTime struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"is_expired"`
}

// Compute returns the remaining time until deadline as seen at now.
// A deadline at or before now is expired and yields all-zero fields.
func Compute(deadline, now time.Time) RemainingTime {
	if !now.Before(deadline) {
		return RemainingTime{Expired: true}
	}

	// Epoch milliseconds, not Sub: a Duration saturates near 292 years.
	diff := deadline.UnixMilli() - now.UnixMilli()

	return RemainingTime{
		Days:    int(diff / msPerDay),
		Hours:   int(diff / msPerHour % 24),
		Minutes: int(diff / msPerMinute % 60),
		Seconds: int(diff / msPerSecond % 60),
	}
}

// TotalSeconds collapses the breakdown back into whole seconds.
func (r RemainingTime) TotalSeconds() int64 {
	return int64(r.Days)*86400 + int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
}
