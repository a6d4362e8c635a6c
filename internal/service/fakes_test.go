package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/assistant"
	"github.com/sakif/wellness-tracker/internal/model"
)

// =========================================================================
// FAKES
// =========================================================================
//
// Hand-written in-memory fakes for the repository and assistant interfaces.
// Each has an err field that, when set, is returned from every method to
// simulate a database or upstream failure.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func ptr[T any](v T) *T { return &v }

// fakeUserRepo stores users by id and enforces email uniqueness like the
// UNIQUE constraint does.
type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) emailTaken(email string, except int64) bool {
	for id, u := range f.users {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if f.emailTaken(user.Email, 0) {
		return apperror.Conflict("email", "Email already registered")
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	if f.emailTaken(user.Email, user.ID) {
		return apperror.Conflict("email", "Email already in use")
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

// fakeTrackerRepo keeps every record type in a slice and assigns ids.
type fakeTrackerRepo struct {
	nextID      int64
	moods       []model.Mood
	activities  []model.Activity
	exercises   []model.Exercise
	sleepLogs   []model.SleepLog
	meditations []model.Meditation
	journals    []model.Journal
	feedback    []model.Feedback
	err         error
}

func (f *fakeTrackerRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeTrackerRepo) CreateMood(_ context.Context, m *model.Mood) error {
	if f.err != nil {
		return f.err
	}
	m.ID, m.Date = f.id(), time.Now()
	f.moods = append(f.moods, *m)
	return nil
}

func (f *fakeTrackerRepo) ListMoods(_ context.Context, userID int64) ([]model.Mood, error) {
	return filter(f.moods, f.err, func(m model.Mood) bool { return m.UserID == userID })
}

func (f *fakeTrackerRepo) CreateActivity(_ context.Context, a *model.Activity) error {
	if f.err != nil {
		return f.err
	}
	a.ID, a.Date = f.id(), time.Now()
	f.activities = append(f.activities, *a)
	return nil
}

func (f *fakeTrackerRepo) ListActivities(_ context.Context, userID int64) ([]model.Activity, error) {
	return filter(f.activities, f.err, func(a model.Activity) bool { return a.UserID == userID })
}

func (f *fakeTrackerRepo) CreateExercise(_ context.Context, e *model.Exercise) error {
	if f.err != nil {
		return f.err
	}
	e.ID, e.Date = f.id(), time.Now()
	f.exercises = append(f.exercises, *e)
	return nil
}

func (f *fakeTrackerRepo) ListExercises(_ context.Context, userID int64) ([]model.Exercise, error) {
	return filter(f.exercises, f.err, func(e model.Exercise) bool { return e.UserID == userID })
}

func (f *fakeTrackerRepo) CreateSleepLog(_ context.Context, s *model.SleepLog) error {
	if f.err != nil {
		return f.err
	}
	s.ID, s.Date = f.id(), time.Now()
	f.sleepLogs = append(f.sleepLogs, *s)
	return nil
}

func (f *fakeTrackerRepo) ListSleepLogs(_ context.Context, userID int64) ([]model.SleepLog, error) {
	return filter(f.sleepLogs, f.err, func(s model.SleepLog) bool { return s.UserID == userID })
}

func (f *fakeTrackerRepo) CreateMeditation(_ context.Context, m *model.Meditation) error {
	if f.err != nil {
		return f.err
	}
	m.ID, m.Date = f.id(), time.Now()
	f.meditations = append(f.meditations, *m)
	return nil
}

func (f *fakeTrackerRepo) ListMeditations(_ context.Context, userID int64) ([]model.Meditation, error) {
	return filter(f.meditations, f.err, func(m model.Meditation) bool { return m.UserID == userID })
}

func (f *fakeTrackerRepo) CreateJournal(_ context.Context, j *model.Journal) error {
	if f.err != nil {
		return f.err
	}
	j.ID, j.Date = f.id(), time.Now()
	f.journals = append(f.journals, *j)
	return nil
}

func (f *fakeTrackerRepo) ListJournals(_ context.Context, userID int64) ([]model.Journal, error) {
	return filter(f.journals, f.err, func(j model.Journal) bool { return j.UserID == userID })
}

func (f *fakeTrackerRepo) DeleteJournal(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i, j := range f.journals {
		if j.ID == id {
			f.journals = append(f.journals[:i], f.journals[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("journal", id)
}

func (f *fakeTrackerRepo) CreateFeedback(_ context.Context, fb *model.Feedback) error {
	if f.err != nil {
		return f.err
	}
	fb.ID, fb.Date = f.id(), time.Now()
	f.feedback = append(f.feedback, *fb)
	return nil
}

func (f *fakeTrackerRepo) ListFeedback(_ context.Context, userID int64) ([]model.Feedback, error) {
	return filter(f.feedback, f.err, func(fb model.Feedback) bool { return fb.UserID != nil && *fb.UserID == userID })
}

func (f *fakeTrackerRepo) ListAllFeedback(_ context.Context) ([]model.Feedback, error) {
	return filter(f.feedback, f.err, func(model.Feedback) bool { return true })
}

func filter[T any](items []T, err error, keep func(T) bool) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// fakeStatsRepo returns fixed totals and records the boundary it was asked for.
type fakeStatsRepo struct {
	exercise   int
	sleep      float64
	meditation int
	since      time.Time
	err        error
}

func (f *fakeStatsRepo) SumExerciseMinutes(_ context.Context, _ int64, since time.Time) (int, error) {
	f.since = since
	return f.exercise, f.err
}

func (f *fakeStatsRepo) SumSleepHours(_ context.Context, _ int64, _ time.Time) (float64, error) {
	return f.sleep, f.err
}

func (f *fakeStatsRepo) SumMeditationMinutes(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.meditation, f.err
}

// fakeCompleter records the last request and returns a canned reply or error.
type fakeCompleter struct {
	reply string
	err   error
	got   assistant.CompletionRequest
	// block, when set, waits for the context to end before returning.
	block bool
}

func (f *fakeCompleter) Complete(ctx context.Context, req assistant.CompletionRequest) (*assistant.Completion, error) {
	f.got = req
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.Completion{Content: f.reply}, nil
}
