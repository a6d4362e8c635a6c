package handler

import (
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
)

// JSON views of the model types. The models carry no json tags (except
// User) so the wire format is decided here, in one place.

// Date layouts used on the wire. Activities only show the day.
const (
	dateTimeLayout = "2006-01-02 15:04"
	dayLayout      = "2006-01-02"
)

// ProfileView is a user without the password hash.
type ProfileView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	AvatarColor string `json:"avatar_color"`
}

func newProfileView(u *model.User) ProfileView {
	return ProfileView{ID: u.ID, Name: u.Name, Email: u.Email, Bio: u.Bio, AvatarColor: u.AvatarColor}
}

type MoodView struct {
	Mood string `json:"mood"`
	Date string `json:"date"`
}

type ActivityView struct {
	Activity string `json:"activity"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

type ExerciseView struct {
	ID           int64  `json:"id"`
	ExerciseType string `json:"exercise_type"`
	Duration     int    `json:"duration"`
	Calories     *int   `json:"calories"`
	Notes        string `json:"notes"`
	Date         string `json:"date"`
}

type SleepView struct {
	ID       int64   `json:"id"`
	Duration float64 `json:"duration"`
	Quality  string  `json:"quality"`
	Bedtime  *string `json:"bedtime"`
	WakeTime *string `json:"wake_time"`
	Notes    string  `json:"notes"`
	Date     string  `json:"date"`
}

type MeditationView struct {
	ID             int64   `json:"id"`
	Duration       int     `json:"duration"`
	MeditationType string  `json:"meditation_type"`
	MoodBefore     *string `json:"mood_before"`
	MoodAfter      *string `json:"mood_after"`
	Notes          string  `json:"notes"`
	Date           string  `json:"date"`
}

type JournalView struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
	Date    string `json:"date"`
}

// FeedbackView is one item of a single user's feedback.
type FeedbackView struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
	Date     string `json:"date"`
}

// AllFeedbackView always carries user_id, null for anonymous feedback.
type AllFeedbackView struct {
	ID       int64  `json:"id"`
	UserID   *int64 `json:"user_id"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
	Date     string `json:"date"`
}

// mapViews converts a slice, always returning a non-nil result so an
// empty list encodes as [] rather than null. Dates render in loc, the
// zone the weekly summary uses.
func mapViews[T, V any](items []T, loc *time.Location, view func(T, *time.Location) V) []V {
	out := make([]V, 0, len(items))
	for _, it := range items {
		out = append(out, view(it, loc))
	}
	return out
}

func formatDate(t time.Time, loc *time.Location) string { return t.In(loc).Format(dateTimeLayout) }

func moodView(m model.Mood, loc *time.Location) MoodView {
	return MoodView{Mood: m.Mood, Date: formatDate(m.Date, loc)}
}

func activityView(a model.Activity, loc *time.Location) ActivityView {
	return ActivityView{Activity: a.Activity, Duration: a.Duration, Date: a.Date.In(loc).Format(dayLayout)}
}

func exerciseView(e model.Exercise, loc *time.Location) ExerciseView {
	return ExerciseView{
		ID:           e.ID,
		ExerciseType: e.ExerciseType,
		Duration:     e.Duration,
		Calories:     e.Calories,
		Notes:        e.Notes,
		Date:         formatDate(e.Date, loc),
	}
}

func sleepView(s model.SleepLog, loc *time.Location) SleepView {
	return SleepView{
		ID:       s.ID,
		Duration: s.Duration,
		Quality:  s.Quality,
		Bedtime:  s.Bedtime,
		WakeTime: s.WakeTime,
		Notes:    s.Notes,
		Date:     formatDate(s.Date, loc),
	}
}

func meditationView(m model.Meditation, loc *time.Location) MeditationView {
	return MeditationView{
		ID:             m.ID,
		Duration:       m.Duration,
		MeditationType: m.MeditationType,
		MoodBefore:     m.MoodBefore,
		MoodAfter:      m.MoodAfter,
		Notes:          m.Notes,
		Date:           formatDate(m.Date, loc),
	}
}

func journalView(j model.Journal, loc *time.Location) JournalView {
	return JournalView{ID: j.ID, Content: j.Content, Mood: j.Mood, Date: formatDate(j.Date, loc)}
}

func feedbackView(f model.Feedback, loc *time.Location) FeedbackView {
	return FeedbackView{ID: f.ID, Category: f.Category, Rating: f.Rating, Message: f.Message, Date: formatDate(f.Date, loc)}
}

func allFeedbackView(f model.Feedback, loc *time.Location) AllFeedbackView {
	return AllFeedbackView{
		ID:       f.ID,
		UserID:   f.UserID,
		Category: f.Category,
		Rating:   f.Rating,
		Message:  f.Message,
		Date:     formatDate(f.Date, loc),
	}
}
