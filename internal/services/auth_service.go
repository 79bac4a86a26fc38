package services

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/storefront-be/internal/models"
	"github.com/isdelr/storefront-be/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned by Register when the email already has an
	// account. Surfaced as an authorization failure, matching login errors.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so that
	// login errors cannot be used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound is returned by Validate for an unknown account ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidInput is returned for a malformed email or empty password.
	ErrInvalidInput = errors.New("invalid registration input")
)

// AccountStore is the persistence boundary the authenticator reads and
// writes accounts through.
type AccountStore interface {
	FindByEmail(email string) (models.Account, error)
	FindByID(id string) (models.Account, error)
	Insert(account models.Account) error
}

// TokenSigner mints the bearer token returned with a successful
// registration or login.
type TokenSigner interface {
	Sign(accountID, email string) (string, error)
}

// AuthResult bundles the public account view with its freshly issued token.
type AuthResult struct {
	Account models.Account `json:"user"`
	Token   string         `json:"token"`
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(email, password, name string) (AuthResult, error)
	Login(email, password string) (AuthResult, error)
	Validate(id string) (models.Account, error)
}

// AuthService owns registration, login, and identity validation.
type AuthService struct {
	store      AccountStore
	tokens     TokenSigner
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts AccountStore, tokens TokenSigner, bcryptCost int) *AuthService {
	return &AuthService{store: accounts, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new account with a bcrypt-hashed password and returns
// the public account view plus a signed token.
func (s *AuthService) Register(email, password, name string) (AuthResult, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return AuthResult{}, ErrInvalidInput
	}
	if password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	// Advisory check for a friendlier error; the unique index on email is
	// what actually guards against a concurrent duplicate insert.
	_, err := s.store.FindByEmail(email)
	if err == nil {
		return AuthResult{}, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.store.Insert(account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokens.Sign(account.ID, account.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// The hash never leaves the service
	account.PasswordHash = ""
	return AuthResult{Account: account, Token: token}, nil
}

// Login verifies the credentials and returns the public account view plus a
// signed token.
func (s *AuthService) Login(email, password string) (AuthResult, error) {
	account, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("failed to look up email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(account.ID, account.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to sign token: %w", err)
	}

	account.PasswordHash = ""
	return AuthResult{Account: account, Token: token}, nil
}

// Validate resolves an already-authenticated subject ID to its current
// account state. The password column is excluded from the lookup.
func (s *AuthService) Validate(id string) (models.Account, error) {
	account, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, fmt.Errorf("failed to look up account: %w", err)
	}
	return account, nil
}
