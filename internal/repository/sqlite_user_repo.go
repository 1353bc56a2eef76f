package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"asd-screen/internal/domain"
)

// SQLiteUserRepository guarda credenciales en un archivo SQLite local. Es el
// store por defecto cuando no hay DATABASE_URL.
type SQLiteUserRepository struct {
	db *sql.DB
}

func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if isSQLiteUniqueViolation(err) {
		return ErrDuplicateUsername
	}
	return err
}

// isSQLiteUniqueViolation acepta el codigo extendido o el basico.
func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
}

func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`
	var (
		u         domain.User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	return u, err
}
