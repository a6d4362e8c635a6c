// Package repository declares the data-access contracts.
//
// Services depend on these interfaces, never on a concrete database, so
// tests can swap in fakes and the SQLite implementation stays in one place
// (repository/sqlite).
package repository

import (
	"context"
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

type MoodRepository interface {
	CreateMood(ctx context.Context, mood *model.Mood) error
	ListMoods(ctx context.Context, userID int64) ([]model.Mood, error)
}

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *model.Activity) error
	ListActivities(ctx context.Context, userID int64) ([]model.Activity, error)
}

type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	ListExercises(ctx context.Context, userID int64) ([]model.Exercise, error)
}

type SleepRepository interface {
	CreateSleepLog(ctx context.Context, log *model.SleepLog) error
	ListSleepLogs(ctx context.Context, userID int64) ([]model.SleepLog, error)
}

type MeditationRepository interface {
	CreateMeditation(ctx context.Context, meditation *model.Meditation) error
	ListMeditations(ctx context.Context, userID int64) ([]model.Meditation, error)
}

type JournalRepository interface {
	CreateJournal(ctx context.Context, journal *model.Journal) error
	ListJournals(ctx context.Context, userID int64) ([]model.Journal, error)
	DeleteJournal(ctx context.Context, id int64) error
}

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
	ListFeedback(ctx context.Context, userID int64) ([]model.Feedback, error)
	ListAllFeedback(ctx context.Context) ([]model.Feedback, error)
}

// TrackerRepository groups every append-only entry store.
type TrackerRepository interface {
	MoodRepository
	ActivityRepository
	ExerciseRepository
	SleepRepository
	MeditationRepository
	JournalRepository
	FeedbackRepository
}

// StatsRepository sums durations for the weekly progress summary.
// Only records with date >= since are counted.
type StatsRepository interface {
	SumExerciseMinutes(ctx context.Context, userID int64, since time.Time) (int, error)
	SumSleepHours(ctx context.Context, userID int64, since time.Time) (float64, error)
	SumMeditationMinutes(ctx context.Context, userID int64, since time.Time) (int, error)
}
