package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DuplicateChecker reports whether err is a unique constraint violation.
// Use pg.IsDuplicateKeyError or sqlite.IsDuplicateKeyError.
type DuplicateChecker func(err error) bool

// SQLStore implements Store on database/sql.
// Queries use $n placeholders, understood by both pgx and go-sqlite3.
type SQLStore struct {
	db          *sql.DB
	isDuplicate DuplicateChecker
}

// NewSQLStore creates a store over db.
func NewSQLStore(db *sql.DB, isDuplicate DuplicateChecker) *SQLStore {
	if isDuplicate == nil {
		isDuplicate = func(error) bool { return false }
	}
	return &SQLStore{db: db, isDuplicate: isDuplicate}
}

const (
	listQuery   = `SELECT id, name, email, created_at FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	countQuery  = `SELECT COUNT(*) FROM users`
	getQuery    = `SELECT id, name, email, created_at FROM users WHERE id = $1`
	insertQuery = `INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`
	updateQuery = `UPDATE users SET name = $1, email = $2 WHERE id = $3`
	deleteQuery = `DELETE FROM users WHERE id = $1`
)

// List returns up to limit users, newest first.
func (s *SQLStore) List(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStore, err)
	}
	defer rows.Close()

	users := make([]User, 0, limit)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrStore, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStore, err)
	}

	return users, nil
}

// Count returns the total number of users.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %w", ErrStore, err)
	}
	return n, nil
}

// Get returns the user with id or ErrUserNotFound.
func (s *SQLStore) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, getQuery, id).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("%w: get: %w", ErrStore, err)
	}
	return u, nil
}

// Create inserts u. A taken email yields ErrEmailTaken.
func (s *SQLStore) Create(ctx context.Context, u User) error {
	if _, err := s.db.ExecContext(ctx, insertQuery, u.ID, u.Name, u.Email, u.CreatedAt); err != nil {
		if s.isDuplicate(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: create: %w", ErrStore, err)
	}
	return nil
}

// Update writes name and email of u in one statement.
func (s *SQLStore) Update(ctx context.Context, u User) error {
	res, err := s.db.ExecContext(ctx, updateQuery, u.Name, u.Email, u.ID)
	if err != nil {
		if s.isDuplicate(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: update: %w", ErrStore, err)
	}
	return checkAffected(res, "update")
}

// Delete removes the user with id. Zero affected rows yields ErrUserNotFound.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return fmt.Errorf("%w: delete: %w", ErrStore, err)
	}
	return checkAffected(res, "delete")
}

func checkAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
