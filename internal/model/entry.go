package model

import "time"

// Tracker entries. Every entry belongs to a user and carries the time it
// was recorded. Entries are append-only; Journal is the only one that can
// be deleted.
//
// Optional columns are pointers so "not provided" (NULL) stays distinct
// from a zero value. For example a nil Calories means the user didn't say,
// while 0 means they burned nothing.

// Default values applied by the service layer when the caller omits them.
const (
	DefaultExerciseType   = "General"
	DefaultSleepQuality   = "Good"
	DefaultMeditationType = "Mindfulness"
	DefaultJournalMood    = "neutral"
)

// Mood is a single mood check-in.
type Mood struct {
	ID     int64
	UserID int64
	Mood   string
	Note   *string
	Date   time.Time
}

// Activity is a free-form activity with a duration in minutes.
type Activity struct {
	ID       int64
	UserID   int64
	Activity string
	Duration int
	Date     time.Time
}

// Exercise is a workout session. Duration is in minutes.
type Exercise struct {
	ID           int64
	UserID       int64
	ExerciseType string
	Duration     int
	Calories     *int
	Notes        string
	Date         time.Time
}

// SleepLog is one night of sleep. Duration is in hours and may be
// fractional (7.5).
type SleepLog struct {
	ID       int64
	UserID   int64
	Duration float64
	Quality  string
	Bedtime  *string // "HH:MM", as entered by the user
	WakeTime *string
	Notes    string
	Date     time.Time
}

// Meditation is a meditation session. Duration is in minutes.
type Meditation struct {
	ID             int64
	UserID         int64
	Duration       int
	MeditationType string
	MoodBefore     *string
	MoodAfter      *string
	Notes          string
	Date           time.Time
}

// Journal is a free-text journal entry.
type Journal struct {
	ID      int64
	UserID  int64
	Content string
	Mood    string
	Date    time.Time
}

// Feedback is product feedback. UserID is nil for anonymous submissions.
type Feedback struct {
	ID       int64
	UserID   *int64
	Category string
	Rating   int
	Message  string
	Date     time.Time
}
