package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

var (
	_ repository.ExerciseRepository   = (*DB)(nil)
	_ repository.SleepRepository      = (*DB)(nil)
	_ repository.MeditationRepository = (*DB)(nil)
	_ repository.StatsRepository      = (*DB)(nil)
)

// Session lists (exercise, sleep, meditation) are newest first. The id
// breaks ties between entries written in the same millisecond.

func (db *DB) CreateExercise(ctx context.Context, e *model.Exercise) error {
	db.stamp(&e.Date)

	id, err := db.insert(ctx, "exercise", e.UserID,
		`INSERT INTO exercises (user_id, exercise_type, duration, calories, notes, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.ExerciseType, e.Duration, e.Calories, e.Notes, toMillis(e.Date),
	)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (db *DB) ListExercises(ctx context.Context, userID int64) ([]model.Exercise, error) {
	return queryList(ctx, db, "exercises", func(rows *sql.Rows) (model.Exercise, error) {
		var e model.Exercise
		var date int64
		err := rows.Scan(&e.ID, &e.UserID, &e.ExerciseType, &e.Duration, &e.Calories, &e.Notes, &date)
		e.Date = fromMillis(date)
		return e, err
	},
		`SELECT id, user_id, exercise_type, duration, calories, notes, date FROM exercises
		 WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
}

func (db *DB) CreateSleepLog(ctx context.Context, s *model.SleepLog) error {
	db.stamp(&s.Date)

	id, err := db.insert(ctx, "sleep log", s.UserID,
		`INSERT INTO sleep_logs (user_id, duration, quality, bedtime, wake_time, notes, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.Duration, s.Quality, s.Bedtime, s.WakeTime, s.Notes, toMillis(s.Date),
	)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (db *DB) ListSleepLogs(ctx context.Context, userID int64) ([]model.SleepLog, error) {
	return queryList(ctx, db, "sleep logs", func(rows *sql.Rows) (model.SleepLog, error) {
		var s model.SleepLog
		var date int64
		err := rows.Scan(&s.ID, &s.UserID, &s.Duration, &s.Quality, &s.Bedtime, &s.WakeTime, &s.Notes, &date)
		s.Date = fromMillis(date)
		return s, err
	},
		`SELECT id, user_id, duration, quality, bedtime, wake_time, notes, date FROM sleep_logs
		 WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
}

func (db *DB) CreateMeditation(ctx context.Context, m *model.Meditation) error {
	db.stamp(&m.Date)

	id, err := db.insert(ctx, "meditation", m.UserID,
		`INSERT INTO meditations (user_id, duration, meditation_type, mood_before, mood_after, notes, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Duration, m.MeditationType, m.MoodBefore, m.MoodAfter, m.Notes, toMillis(m.Date),
	)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (db *DB) ListMeditations(ctx context.Context, userID int64) ([]model.Meditation, error) {
	return queryList(ctx, db, "meditations", func(rows *sql.Rows) (model.Meditation, error) {
		var m model.Meditation
		var date int64
		err := rows.Scan(&m.ID, &m.UserID, &m.Duration, &m.MeditationType, &m.MoodBefore, &m.MoodAfter, &m.Notes, &date)
		m.Date = fromMillis(date)
		return m, err
	},
		`SELECT id, user_id, duration, meditation_type, mood_before, mood_after, notes, date FROM meditations
		 WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
}

// SumExerciseMinutes totals exercise duration recorded at or after since.
func (db *DB) SumExerciseMinutes(ctx context.Context, userID int64, since time.Time) (int, error) {
	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM exercises WHERE user_id = ? AND date >= ?`,
		userID, toMillis(since),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing exercise for user %d: %w", userID, err)
	}
	return total, nil
}

// SumSleepHours totals sleep duration recorded at or after since.
func (db *DB) SumSleepHours(ctx context.Context, userID int64, since time.Time) (float64, error) {
	var total float64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM sleep_logs WHERE user_id = ? AND date >= ?`,
		userID, toMillis(since),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing sleep for user %d: %w", userID, err)
	}
	return total, nil
}

// SumMeditationMinutes totals meditation duration recorded at or after since.
func (db *DB) SumMeditationMinutes(ctx context.Context, userID int64, since time.Time) (int, error) {
	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM meditations WHERE user_id = ? AND date >= ?`,
		userID, toMillis(since),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing meditation for user %d: %w", userID, err)
	}
	return total, nil
}
