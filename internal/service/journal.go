package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/model"
)

// Rating bounds for feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// JournalInput is the body of POST /api/journals.
type JournalInput struct {
	UserID  *NumericID `json:"user_id"`
	Content *string    `json:"content"`
	Mood    *string    `json:"mood"`
}

// AddJournal stores a journal entry. Content is kept exactly as written.
func (s *TrackerService) AddJournal(ctx context.Context, in JournalInput) (*model.Journal, error) {
	userID, err := requireUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	content, err := requireText("content", in.Content)
	if err != nil {
		return nil, err
	}

	j := &model.Journal{
		UserID:  userID,
		Content: content,
		Mood:    textOr(in.Mood, model.DefaultJournalMood),
	}
	if err := s.repo.CreateJournal(ctx, j); err != nil {
		return nil, fmt.Errorf("saving journal: %w", err)
	}

	s.created("journal", j.ID, userID)
	return j, nil
}

// ListJournals returns a user's journal entries, newest first.
func (s *TrackerService) ListJournals(ctx context.Context, userID int64) ([]model.Journal, error) {
	journals, err := s.repo.ListJournals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	return journals, nil
}

// DeleteJournal removes one journal entry.
// Returns apperror.ErrNotFound if it doesn't exist (or was already deleted).
func (s *TrackerService) DeleteJournal(ctx context.Context, id int64) error {
	if err := s.repo.DeleteJournal(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &apperror.AppError{Err: apperror.ErrNotFound, Message: "Journal not found"}
		}
		return fmt.Errorf("deleting journal %d: %w", id, err)
	}

	s.logger.Info("journal deleted", slog.Int64("id", id))
	return nil
}

// FeedbackInput is the body of POST /api/feedback. UserID may be omitted
// for anonymous feedback.
type FeedbackInput struct {
	UserID   *NumericID `json:"user_id"`
	Category *string    `json:"category"`
	Rating   *int       `json:"rating"`
	Message  *string    `json:"message"`
}

func (s *TrackerService) AddFeedback(ctx context.Context, in FeedbackInput) (*model.Feedback, error) {
	var owner *int64
	if in.UserID != nil {
		id, err := requireUserID(in.UserID)
		if err != nil {
			return nil, err
		}
		owner = &id
	}
	category, err := requireText("category", in.Category)
	if err != nil {
		return nil, err
	}
	if in.Rating == nil {
		return nil, apperror.Required("rating")
	}
	if *in.Rating < MinRating || *in.Rating > MaxRating {
		return nil, apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	message, err := requireText("message", in.Message)
	if err != nil {
		return nil, err
	}

	f := &model.Feedback{UserID: owner, Category: category, Rating: *in.Rating, Message: message}
	if err := s.repo.CreateFeedback(ctx, f); err != nil {
		return nil, fmt.Errorf("saving feedback: %w", err)
	}

	var uid int64
	if owner != nil {
		uid = *owner
	}
	s.created("feedback", f.ID, uid)
	return f, nil
}

// ListFeedback returns one user's feedback, newest first.
func (s *TrackerService) ListFeedback(ctx context.Context, userID int64) ([]model.Feedback, error) {
	feedback, err := s.repo.ListFeedback(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	return feedback, nil
}

// ListAllFeedback returns every user's feedback, newest first.
// This is the only cross-user read in the API.
func (s *TrackerService) ListAllFeedback(ctx context.Context) ([]model.Feedback, error) {
	feedback, err := s.repo.ListAllFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing all feedback: %w", err)
	}
	return feedback, nil
}
