package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/storefront-be/internal/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when no account matches the lookup key.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an insert hits the unique email index.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountStore persists accounts in SQLite. Email uniqueness is enforced by
// the unique index, so a concurrent duplicate insert fails atomically rather
// than relying on a prior lookup.
type AccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

// FindByEmail retrieves an account by email, including the password hash.
// The hash is needed by the login path and must not travel further than the
// authenticator.
func (s *AccountStore) FindByEmail(email string) (models.Account, error) {
	var account models.Account
	var createdAt int64
	row := s.db.QueryRow("SELECT id, email, name, password_hash, created_at FROM accounts WHERE email = ?", email)
	err := row.Scan(&account.ID, &account.Email, &account.Name, &account.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, fmt.Errorf("query account by email: %w", err)
	}
	account.CreatedAt = time.Unix(createdAt, 0)
	return account, nil
}

// FindByID retrieves an account by ID. The password column is excluded from
// the projection.
func (s *AccountStore) FindByID(id string) (models.Account, error) {
	var account models.Account
	var createdAt int64
	row := s.db.QueryRow("SELECT id, email, name, created_at FROM accounts WHERE id = ?", id)
	err := row.Scan(&account.ID, &account.Email, &account.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, fmt.Errorf("query account by id: %w", err)
	}
	account.CreatedAt = time.Unix(createdAt, 0)
	return account, nil
}

// Insert persists a new account. Returns ErrDuplicateEmail when the email is
// already taken.
func (s *AccountStore) Insert(account models.Account) error {
	_, err := s.db.Exec(
		"INSERT INTO accounts(id, email, name, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		account.ID, account.Email, account.Name, account.PasswordHash, account.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
