// Package insights holds the pure aggregation math behind the learner
// dashboard: velocity, category strengths, study patterns, engagement,
// streaks and achievements. Everything here is a plain function over rows
// the caller already fetched, so the whole package unit-tests without a
// database.
package insights

import "math"

func round(f float64) int {
	return int(math.Round(f))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
