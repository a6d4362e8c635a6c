package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/wellness-tracker/internal/metrics"
	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

// TrackerService validates and stores the per-user wellness records:
// moods, activities, exercise, sleep, meditation, journals and feedback.
//
// Records are append-only. The date is assigned by the repository at write
// time; callers cannot backdate entries.
type TrackerService struct {
	repo   repository.TrackerRepository
	logger *slog.Logger
}

func NewTrackerService(repo repository.TrackerRepository, logger *slog.Logger) *TrackerService {
	return &TrackerService{repo: repo, logger: logger}
}

// created logs and counts one successful write.
func (s *TrackerService) created(kind string, id, userID int64) {
	metrics.RecordsCreated.WithLabelValues(kind).Inc()
	s.logger.Info(kind+" saved",
		slog.Int64("id", id),
		slog.Int64("user_id", userID),
	)
}

// MoodInput is the body of POST /api/moods.
type MoodInput struct {
	UserID *NumericID `json:"user_id"`
	Mood   *string    `json:"mood"`
	Note   *string    `json:"note"`
}

// AddMood records a mood check-in. The note is optional.
func (s *TrackerService) AddMood(ctx context.Context, in MoodInput) (*model.Mood, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	mood, err := requireText("mood", in.Mood)
	if err != nil {
		return nil, err
	}

	m := &model.Mood{UserID: userID, Mood: mood, Note: in.Note}
	if err := s.repo.CreateMood(ctx, m); err != nil {
		return nil, fmt.Errorf("saving mood: %w", err)
	}

	s.created("mood", m.ID, userID)
	return m, nil
}

// ListMoods returns a user's moods in the order they were recorded.
func (s *TrackerService) ListMoods(ctx context.Context, userID int64) ([]model.Mood, error) {
	moods, err := s.repo.ListMoods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing moods: %w", err)
	}
	return moods, nil
}

// ActivityInput is the body of POST /api/activity. Duration is in minutes.
type ActivityInput struct {
	UserID   *NumericID `json:"user_id"`
	Activity *string    `json:"activity"`
	Duration *int       `json:"duration"`
}

func (s *TrackerService) AddActivity(ctx context.Context, in ActivityInput) (*model.Activity, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("activity", in.Activity)
	if err != nil {
		return nil, err
	}
	duration, err := requireInt("duration", in.Duration)
	if err != nil {
		return nil, err
	}

	a := &model.Activity{UserID: userID, Activity: name, Duration: duration}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("saving activity: %w", err)
	}

	s.created("activity", a.ID, userID)
	return a, nil
}

// ListActivities returns a user's activities in the order they were recorded.
func (s *TrackerService) ListActivities(ctx context.Context, userID int64) ([]model.Activity, error) {
	activities, err := s.repo.ListActivities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}
