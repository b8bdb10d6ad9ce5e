package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository provides access to user data in the database.
// It backs the bot's allow-list: only users with the allowed flag
// may start a quiz when access control is enabled.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser inserts the user on first contact or refreshes the profile
// fields on subsequent contacts.
func (r *UserRepository) EnsureUser(ctx context.Context, userID int64, firstName, username string) error {
	query := `
    INSERT INTO users (id, first_name, username)
    VALUES ($1, $2, $3)
    ON CONFLICT (id) DO UPDATE
    SET first_name = EXCLUDED.first_name,
        username   = EXCLUDED.username
    `
	if _, err := r.db.Exec(ctx, query, userID, firstName, username); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	return nil
}

// IsAllowed reports whether the user is on the allow-list.
// Unknown users are not allowed.
func (r *UserRepository) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND allowed)"

	var allowed bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&allowed); err != nil {
		return false, fmt.Errorf("check allow-list: %w", err)
	}

	return allowed, nil
}
