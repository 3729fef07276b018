package insights

import (
	"fmt"

	"github.com/freddy-ai/freddy-backend/internal/types"
)

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// RecentAchievements returns the milestones the learner has passed, newest
// threshold first, capped at three.
func RecentAchievements(progress []*types.LessonProgress) []Achievement {
	completed := 0
	for _, p := range progress {
		if p.Status == types.ProgressCompleted {
			completed++
		}
	}

	milestones := []struct {
		threshold   int
		achievement Achievement
	}{
		{10, Achievement{Title: "Lesson Veteran", Description: "Completed 10 lessons", Icon: "trophy"}},
		{5, Achievement{Title: "Getting Into It", Description: "Completed 5 lessons", Icon: "medal"}},
		{1, Achievement{Title: "First Lesson Complete", Description: "Finished your very first lesson", Icon: "star"}},
	}

	earned := []Achievement{}
	for _, m := range milestones {
		if completed >= m.threshold {
			earned = append(earned, m.achievement)
		}
		if len(earned) == 3 {
			break
		}
	}
	return earned
}

// MotivationalInsights produces the short encouragement strings shown on
// the dashboard.
func MotivationalInsights(completedLessons, streakDays int) []string {
	insights := []string{}
	if streakDays >= 3 {
		insights = append(insights, fmt.Sprintf("You're on a %d-day streak. Keep it going!", streakDays))
	}
	if completedLessons == 0 {
		insights = append(insights, "Complete your first lesson to start tracking progress.")
	} else {
		insights = append(insights, fmt.Sprintf("You've completed %d lessons so far.", completedLessons))
	}
	if RecommendedLevel(completedLessons) != types.DifficultyBeginner {
		insights = append(insights, "Your consistency is paying off: harder material has been unlocked.")
	}
	return insights
}
