package model

import "time"

// Weekly goals used by the progress summary.
const (
	ExerciseGoalMinutes   = 300
	SleepGoalHours        = 56
	MeditationGoalMinutes = 140
)

// WeeklyTotals is the raw per-type sum of durations since WeekStart.
type WeeklyTotals struct {
	WeekStart         time.Time
	ExerciseMinutes   int
	SleepHours        float64
	MeditationMinutes int
}

// GoalProgress is one line of the weekly summary.
// Percentage is not capped and may exceed 100.
type GoalProgress struct {
	Current    float64 `json:"current"`
	Goal       int     `json:"goal"`
	Percentage int     `json:"percentage"`
}

// WeeklyStats is the response of GET /api/stats/{user_id}.
type WeeklyStats struct {
	Exercise   GoalProgress `json:"exercise"`
	Sleep      GoalProgress `json:"sleep"`
	Meditation GoalProgress `json:"meditation"`
}
