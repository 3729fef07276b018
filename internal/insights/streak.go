package insights

import "time"

const maxStreakLookbackDays = 365

// StreakDays counts consecutive active days ending at now. A day is active
// when any activity timestamp falls on it (UTC). An empty today does not
// break the streak, it just isn't counted; any earlier gap stops the walk.
// The lookback is capped at a year.
func StreakDays(activity []time.Time, now time.Time) int {
	active := make(map[string]struct{}, len(activity))
	for _, t := range activity {
		active[t.UTC().Format("2006-01-02")] = struct{}{}
	}
	if len(active) == 0 {
		return 0
	}

	day := now.UTC()
	if _, ok := active[day.Format("2006-01-02")]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < maxStreakLookbackDays; i++ {
		if _, ok := active[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
