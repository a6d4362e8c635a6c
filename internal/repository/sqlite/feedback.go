package sqlite

import (
	"context"
	"database/sql"

	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

var _ repository.FeedbackRepository = (*DB)(nil)

// CreateFeedback stores product feedback. A nil UserID is stored as NULL.
func (db *DB) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	db.stamp(&f.Date)

	var owner any = "anonymous"
	if f.UserID != nil {
		owner = *f.UserID
	}

	id, err := db.insert(ctx, "feedback", owner,
		`INSERT INTO feedback (user_id, category, rating, message, date) VALUES (?, ?, ?, ?, ?)`,
		f.UserID, f.Category, f.Rating, f.Message, toMillis(f.Date),
	)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// ListFeedback returns one user's feedback, newest first.
func (db *DB) ListFeedback(ctx context.Context, userID int64) ([]model.Feedback, error) {
	return queryList(ctx, db, "feedback", scanFeedback,
		`SELECT id, user_id, category, rating, message, date FROM feedback
		 WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
}

// ListAllFeedback returns every feedback row across all users, newest first.
func (db *DB) ListAllFeedback(ctx context.Context) ([]model.Feedback, error) {
	return queryList(ctx, db, "feedback", scanFeedback,
		`SELECT id, user_id, category, rating, message, date FROM feedback
		 ORDER BY date DESC, id DESC`,
	)
}

func scanFeedback(rows *sql.Rows) (model.Feedback, error) {
	var f model.Feedback
	var date int64
	err := rows.Scan(&f.ID, &f.UserID, &f.Category, &f.Rating, &f.Message, &date)
	f.Date = fromMillis(date)
	return f, err
}
