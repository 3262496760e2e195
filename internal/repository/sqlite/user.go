package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/model"
	"github.com/sakif/word-of-the-day/internal/repository"
)

// UserDB implements repository.UserRepository on top of the shared pool.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user and fills in the assigned ID and joined date.
//
// The joined date is generated here (not by the DB default) so the caller
// gets the exact stored value back without a second SELECT. It is stored in
// UTC; display formatting is the frontend's concern.
//
// A duplicate email trips the UNIQUE constraint and comes back as a
// Conflict error. The service layer also pre-checks with GetByEmail, so in
// practice this is the backstop for two racing registrations.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	result, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, joined_date) VALUES (?, ?, ?)`,
		user.Name, user.Email, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return apperror.Conflict("Email already registered")
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user insert id: %w", err)
	}

	user.ID = id
	user.JoinedDate = now
	return nil
}

// GetByEmail looks up a user by their (unique) email address.
// Returns apperror.ErrNotFound if no such user exists.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := u.conn.QueryRowContext(ctx,
		`SELECT id, name, email, joined_date FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.JoinedDate)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying user by email %s: %w", email, err)
	}
	return &user, nil
}

// List returns all users in insertion order.
// The daily job uses this to collect recipient addresses.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.conn.QueryContext(ctx,
		`SELECT id, name, email, joined_date FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	// rows MUST be closed, or the connection leaks back into the pool dirty.
	defer rows.Close()

	// Initialise to an empty slice (not nil) so JSON encodes [] rather than null.
	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.JoinedDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}

// Count returns the total number of registered users.
func (u *UserDB) Count(ctx context.Context) (int, error) {
	var count int
	err := u.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return count, nil
}
