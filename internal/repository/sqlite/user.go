package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/model"
	"github.com/sakif/wellness-tracker/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new account and sets user.ID to the generated row id.
//
// The UNIQUE constraint on email is the source of truth for "already
// registered": checking first and inserting second would race with a
// concurrent registration for the same address.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if user.AvatarColor == "" {
		user.AvatarColor = model.DefaultAvatarColor
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, bio, avatar_color)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.AvatarColor,
	)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return apperror.Conflict("email", "Email already registered")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByID retrieves a user by id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, bio, avatar_color
		 FROM users WHERE id = ?`,
		id,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their (already normalised) email.
// Returns apperror.ErrNotFound if no user has that email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, bio, avatar_color
		 FROM users WHERE email = ?`,
		email,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites every mutable column of an existing user.
// Callers load the user first, change fields, then save the whole struct.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password_hash = ?, bio = ?, avatar_color = ?
		 WHERE id = ?`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.AvatarColor,
		user.ID,
	)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return apperror.Conflict("email", "Email already in use")
		}
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.AvatarColor,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
