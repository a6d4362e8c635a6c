package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

var _ repository.JournalRepository = (*DB)(nil)

func (db *DB) CreateJournal(ctx context.Context, j *model.Journal) error {
	db.stamp(&j.Date)

	id, err := db.insert(ctx, "journal", j.UserID,
		`INSERT INTO journals (user_id, content, mood, date) VALUES (?, ?, ?, ?)`,
		j.UserID, j.Content, j.Mood, toMillis(j.Date),
	)
	if err != nil {
		return err
	}
	j.ID = id
	return nil
}

// ListJournals returns a user's journal entries, newest first.
func (db *DB) ListJournals(ctx context.Context, userID int64) ([]model.Journal, error) {
	return queryList(ctx, db, "journals", func(rows *sql.Rows) (model.Journal, error) {
		var j model.Journal
		var date int64
		err := rows.Scan(&j.ID, &j.UserID, &j.Content, &j.Mood, &date)
		j.Date = fromMillis(date)
		return j, err
	},
		`SELECT id, user_id, content, mood, date FROM journals
		 WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID,
	)
}

// DeleteJournal removes a journal entry by id.
//
// RowsAffected tells us whether anything matched: DELETE of a missing row is
// not an error in SQL, but callers expect apperror.ErrNotFound.
func (db *DB) DeleteJournal(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting journal %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("journal", id)
	}

	return nil
}
