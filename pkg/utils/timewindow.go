package utils

import "time"

// UpdateGraceMinutes is how long after a contest ends the standings may
// still be refreshed.
const UpdateGraceMinutes = 30

// ComputeEndTime returns the contest end time for a given start time and
// duration. Returns nil when the contest has no start time yet.
func ComputeEndTime(start *time.Time, durationMinutes int) *time.Time {
	if start == nil {
		return nil
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return &end
}

// WithinUpdateGrace reports whether now is still inside the post-contest
// update window (end + grace).
func WithinUpdateGrace(now, end time.Time, graceMinutes int) bool {
	return !now.After(end.Add(time.Duration(graceMinutes) * time.Minute))
}
