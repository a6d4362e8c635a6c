package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

// StatsService computes the weekly progress summary for exercise, sleep and
// meditation against fixed goals.
type StatsService struct {
	repo   repository.StatsRepository
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewStatsService creates a StatsService. Weeks start on Monday 00:00 in
// loc; a nil loc means the server's local zone.
func NewStatsService(repo repository.StatsRepository, loc *time.Location, logger *slog.Logger) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// WeekStart returns the most recent Monday at 00:00:00 in loc, relative to
// now. On a Monday that is today's midnight.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	// time.Weekday has Sunday = 0; shift so Monday = 0.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	return time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, loc)
}

// Totals sums the current week's durations for a user. Users with no
// records (or no account) get zeros, not an error.
func (s *StatsService) Totals(ctx context.Context, userID int64) (*model.WeeklyTotals, error) {
	since := WeekStart(s.now(), s.loc)

	exercise, err := s.repo.SumExerciseMinutes(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weekly exercise: %w", err)
	}
	sleep, err := s.repo.SumSleepHours(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weekly sleep: %w", err)
	}
	meditation, err := s.repo.SumMeditationMinutes(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weekly meditation: %w", err)
	}

	return &model.WeeklyTotals{
		WeekStart:         since,
		ExerciseMinutes:   exercise,
		SleepHours:        sleep,
		MeditationMinutes: meditation,
	}, nil
}

// Weekly returns {current, goal, percentage} for each tracked type.
func (s *StatsService) Weekly(ctx context.Context, userID int64) (*model.WeeklyStats, error) {
	totals, err := s.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("weekly stats",
		slog.Int64("user_id", userID),
		slog.Time("week_start", totals.WeekStart),
	)

	sleep := progress(totals.SleepHours, model.SleepGoalHours)
	// Percentage is computed from the raw total; only the display value
	// is rounded to one decimal.
	sleep.Current = math.Round(totals.SleepHours*10) / 10

	return &model.WeeklyStats{
		Exercise:   progress(float64(totals.ExerciseMinutes), model.ExerciseGoalMinutes),
		Sleep:      sleep,
		Meditation: progress(float64(totals.MeditationMinutes), model.MeditationGoalMinutes),
	}, nil
}

// progress rounds half to even (150/300 → 50, 0.5% → 0) and does not cap
// at 100.
func progress(current float64, goal int) model.GoalProgress {
	p := model.GoalProgress{Current: current, Goal: goal}
	if current != 0 {
		p.Percentage = int(math.RoundToEven(current / float64(goal) * 100))
	}
	return p
}
