package service

import (
	"context"
	"fmt"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/model"
)

// Sessions are the three record types that feed the weekly summary.
// Only the duration is required; everything else has a default.

// ExerciseInput is the body of POST /api/exercises. Duration is in minutes.
type ExerciseInput struct {
	UserID       *NumericID `json:"user_id"`
	ExerciseType *string    `json:"exercise_type"`
	Duration     *int       `json:"duration"`
	Calories     *int       `json:"calories"`
	Notes        *string    `json:"notes"`
}

func (s *TrackerService) AddExercise(ctx context.Context, in ExerciseInput) (*model.Exercise, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	duration, err := requireInt("duration", in.Duration)
	if err != nil {
		return nil, err
	}
	if in.Calories != nil && *in.Calories < 0 {
		return nil, apperror.ValidationFailed("calories", "calories must not be negative")
	}

	e := &model.Exercise{
		UserID:       userID,
		ExerciseType: textOr(in.ExerciseType, model.DefaultExerciseType),
		Duration:     duration,
		Calories:     in.Calories,
		Notes:        textOr(in.Notes, ""),
	}
	if err := s.repo.CreateExercise(ctx, e); err != nil {
		return nil, fmt.Errorf("saving exercise: %w", err)
	}

	s.created("exercise", e.ID, userID)
	return e, nil
}

// ListExercises returns a user's exercise sessions, newest first.
func (s *TrackerService) ListExercises(ctx context.Context, userID int64) ([]model.Exercise, error) {
	exercises, err := s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	return exercises, nil
}

// SleepInput is the body of POST /api/sleep. Duration is in hours and may
// be fractional. Bedtime and wake time are free-form ("23:30").
type SleepInput struct {
	UserID   *NumericID `json:"user_id"`
	Duration *float64   `json:"duration"`
	Quality  *string    `json:"quality"`
	Bedtime  *string    `json:"bedtime"`
	WakeTime *string    `json:"wake_time"`
	Notes    *string    `json:"notes"`
}

func (s *TrackerService) AddSleep(ctx context.Context, in SleepInput) (*model.SleepLog, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	duration, err := requireFloat("duration", in.Duration)
	if err != nil {
		return nil, err
	}

	l := &model.SleepLog{
		UserID:   userID,
		Duration: duration,
		Quality:  textOr(in.Quality, model.DefaultSleepQuality),
		Bedtime:  in.Bedtime,
		WakeTime: in.WakeTime,
		Notes:    textOr(in.Notes, ""),
	}
	if err := s.repo.CreateSleepLog(ctx, l); err != nil {
		return nil, fmt.Errorf("saving sleep log: %w", err)
	}

	s.created("sleep", l.ID, userID)
	return l, nil
}

// ListSleepLogs returns a user's sleep logs, newest first.
func (s *TrackerService) ListSleepLogs(ctx context.Context, userID int64) ([]model.SleepLog, error) {
	logs, err := s.repo.ListSleepLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sleep logs: %w", err)
	}
	return logs, nil
}

// MeditationInput is the body of POST /api/meditations. Duration is in minutes.
type MeditationInput struct {
	UserID         *NumericID `json:"user_id"`
	Duration       *int       `json:"duration"`
	MeditationType *string    `json:"meditation_type"`
	MoodBefore     *string    `json:"mood_before"`
	MoodAfter      *string    `json:"mood_after"`
	Notes          *string    `json:"notes"`
}

func (s *TrackerService) AddMeditation(ctx context.Context, in MeditationInput) (*model.Meditation, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	duration, err := requireInt("duration", in.Duration)
	if err != nil {
		return nil, err
	}

	m := &model.Meditation{
		UserID:         userID,
		Duration:       duration,
		MeditationType: textOr(in.MeditationType, model.DefaultMeditationType),
		MoodBefore:     in.MoodBefore,
		MoodAfter:      in.MoodAfter,
		Notes:          textOr(in.Notes, ""),
	}
	if err := s.repo.CreateMeditation(ctx, m); err != nil {
		return nil, fmt.Errorf("saving meditation: %w", err)
	}

	s.created("meditation", m.ID, userID)
	return m, nil
}

// ListMeditations returns a user's meditation sessions, newest first.
func (s *TrackerService) ListMeditations(ctx context.Context, userID int64) ([]model.Meditation, error) {
	meditations, err := s.repo.ListMeditations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing meditations: %w", err)
	}
	return meditations, nil
}
