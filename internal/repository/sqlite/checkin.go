package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

var (
	_ repository.MoodRepository     = (*DB)(nil)
	_ repository.ActivityRepository = (*DB)(nil)
)

// stamp fills in the entry date unless the caller already set one.
func (db *DB) stamp(date *time.Time) {
	if date.IsZero() {
		*date = db.now()
	}
}

// CreateMood records a mood check-in. The note column stays NULL when
// mood.Note is nil.
func (db *DB) CreateMood(ctx context.Context, mood *model.Mood) error {
	db.stamp(&mood.Date)

	id, err := db.insert(ctx, "mood", mood.UserID,
		`INSERT INTO moods (user_id, mood, note, date) VALUES (?, ?, ?, ?)`,
		mood.UserID, mood.Mood, mood.Note, toMillis(mood.Date),
	)
	if err != nil {
		return err
	}
	mood.ID = id
	return nil
}

// ListMoods returns a user's moods in insertion order.
func (db *DB) ListMoods(ctx context.Context, userID int64) ([]model.Mood, error) {
	return queryList(ctx, db, "moods", func(rows *sql.Rows) (model.Mood, error) {
		var m model.Mood
		var date int64
		err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Note, &date)
		m.Date = fromMillis(date)
		return m, err
	},
		`SELECT id, user_id, mood, note, date FROM moods
		 WHERE user_id = ? ORDER BY id`,
		userID,
	)
}

// CreateActivity records a free-form activity.
func (db *DB) CreateActivity(ctx context.Context, activity *model.Activity) error {
	db.stamp(&activity.Date)

	id, err := db.insert(ctx, "activity", activity.UserID,
		`INSERT INTO activities (user_id, activity, duration, date) VALUES (?, ?, ?, ?)`,
		activity.UserID, activity.Activity, activity.Duration, toMillis(activity.Date),
	)
	if err != nil {
		return err
	}
	activity.ID = id
	return nil
}

// ListActivities returns a user's activities in insertion order.
func (db *DB) ListActivities(ctx context.Context, userID int64) ([]model.Activity, error) {
	return queryList(ctx, db, "activities", func(rows *sql.Rows) (model.Activity, error) {
		var a model.Activity
		var date int64
		err := rows.Scan(&a.ID, &a.UserID, &a.Activity, &a.Duration, &date)
		a.Date = fromMillis(date)
		return a, err
	},
		`SELECT id, user_id, activity, duration, date FROM activities
		 WHERE user_id = ? ORDER BY id`,
		userID,
	)
}
