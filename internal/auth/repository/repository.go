package repository

import (
	"context"
	"time"

	"portfolio_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	msgUserNotFound = "User not found"

	userColumns = `id, username, email, password_hash, first_name, last_name, role, is_active,
		login_attempts, lock_until, last_login, created_at, updated_at`

	recordFailureQuery = `
		UPDATE users SET
			login_attempts = CASE WHEN lock_until IS NOT NULL AND lock_until <= $2 THEN 1 ELSE login_attempts + 1 END,
			lock_until = CASE
				WHEN lock_until IS NOT NULL AND lock_until <= $2 THEN NULL
				WHEN lock_until IS NULL AND login_attempts + 1 >= $3 THEN $4
				ELSE lock_until
			END,
			updated_at = now()
		WHERE id = $1`
)

// User is an account row.
type User struct {
	ID            uuid.UUID  `db:"id"`
	Username      string     `db:"username"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	FirstName     *string    `db:"first_name"`
	LastName      *string    `db:"last_name"`
	Role          string     `db:"role"`
	IsActive      bool       `db:"is_active"`
	LoginAttempts int        `db:"login_attempts"`
	LockUntil     *time.Time `db:"lock_until"`
	LastLogin     *time.Time `db:"last_login"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Locked reports whether the account is locked at now.
func (u User) Locked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// NewUser holds the fields of a registration.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Role         string
}

type Repository struct {
	db db.Querier
}

func New(q db.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) CreateUser(ctx context.Context, u NewUser) (User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role)
	if err != nil {
		return User{}, db.TranslateError("auth.user.create", msgUserNotFound, err)
	}
	return collectUser("auth.user.create", rows)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	if err != nil {
		return User{}, db.TranslateError("auth.user.by_email", msgUserNotFound, err)
	}
	return collectUser("auth.user.by_email", rows)
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", userID)
	if err != nil {
		return User{}, db.TranslateError("auth.user.by_id", msgUserNotFound, err)
	}
	return collectUser("auth.user.by_id", rows)
}

func collectUser(op string, rows pgx.Rows) (User, error) {
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		return User{}, db.TranslateError(op, msgUserNotFound, err)
	}
	return user, nil
}

func (r *Repository) Taken(ctx context.Context, email, username string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)", email, username).Scan(&taken)
	if err != nil {
		return false, db.TranslateError("auth.user.taken", msgUserNotFound, err)
	}
	return taken, nil
}

func (r *Repository) RecordFailedLogin(ctx context.Context, userID uuid.UUID, now time.Time, maxAttempts int, lockUntil time.Time) error {
	if _, err := r.db.Exec(ctx, recordFailureQuery, userID, now, maxAttempts, lockUntil); err != nil {
		return db.TranslateError("auth.user.failed_login", msgUserNotFound, err)
	}
	return nil
}

func (r *Repository) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET login_attempts = 0, lock_until = NULL, last_login = $2, updated_at = now()
		WHERE id = $1`, userID, at)
	if err != nil {
		return db.TranslateError("auth.user.login", msgUserNotFound, err)
	}
	return nil
}
