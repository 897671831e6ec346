// Package auth provides admin accounts, sessions and the login guard for
// the dashboard.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for an admin.
const MinPasswordLength = 8

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAdminExists is returned when adding a username that is taken.
	ErrAdminExists = errors.New("admin already exists")
	// ErrAdminNotFound is returned when no admin has the given username or ID.
	ErrAdminNotFound = errors.New("admin not found")
)

// unknownUserHash is compared against when the username does not exist so
// both failure paths cost one bcrypt comparison.
var unknownUserHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("amlak-unknown-admin"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("hashing placeholder password: %v", err))
	}
	return h
})

// Admin is a dashboard account.
type Admin struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AdminStore manages admin accounts in SQLite.
type AdminStore struct {
	db   *sql.DB
	cost int
}

// NewAdminStore creates an admin store.
func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{db: db, cost: bcrypt.DefaultCost}
}

// Add creates an admin with the given password.
func (s *AdminStore) Add(username, password string) (*Admin, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	res, err := s.db.Exec(
		"INSERT INTO admins (username, password_hash) VALUES (?, ?)",
		username, hash,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", ErrAdminExists, username)
		}
		return nil, fmt.Errorf("inserting admin: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}
	return s.Get(id)
}

// SetPassword replaces an admin's password and signs out their sessions.
func (s *AdminStore) SetPassword(username, password string) (err error) {
	hash, err := s.hash(password)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRow("SELECT id FROM admins WHERE username = ?", normalizeUsername(username)).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrAdminNotFound, username)
	}
	if err != nil {
		return fmt.Errorf("querying admin: %w", err)
	}

	if _, err = tx.Exec("UPDATE admins SET password_hash = ? WHERE id = ?", hash, id); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM sessions WHERE admin_id = ?", id); err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing password change: %w", err)
	}
	return nil
}

// Authenticate checks a username and password and records the login time.
func (s *AdminStore) Authenticate(username, password string) (*Admin, error) {
	var id int64
	var hash string
	err := s.db.QueryRow(
		"SELECT id, password_hash FROM admins WHERE username = ?",
		normalizeUsername(username),
	).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.db.Exec(
		"UPDATE admins SET last_login_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	return s.Get(id)
}

// Get returns the admin with the given ID.
func (s *AdminStore) Get(id int64) (*Admin, error) {
	a, err := scanAdmin(s.db.QueryRow(
		"SELECT id, username, created_at, last_login_at FROM admins WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin: %w", err)
	}
	return a, nil
}

// List returns all admins ordered by username.
func (s *AdminStore) List() ([]Admin, error) {
	rows, err := s.db.Query("SELECT id, username, created_at, last_login_at FROM admins ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	defer rows.Close()

	var admins []Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning admin: %w", err)
		}
		admins = append(admins, *a)
	}
	return admins, rows.Err()
}

// Remove deletes an admin and, through the foreign key, their sessions.
func (s *AdminStore) Remove(username string) error {
	res, err := s.db.Exec("DELETE FROM admins WHERE username = ?", normalizeUsername(username))
	if err != nil {
		return fmt.Errorf("deleting admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrAdminNotFound, username)
	}
	return nil
}

func (s *AdminStore) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(b), nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAdmin(row scanner) (*Admin, error) {
	var a Admin
	var lastLogin sql.NullTime
	if err := row.Scan(&a.ID, &a.Username, &a.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLoginAt = &t
	}
	return &a, nil
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
