package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)

type Account struct {
	ID    string
	Email string
	Hash  []byte
}

// AccountStore persists credentials. Passwords never leave the store
// unhashed.
type AccountStore interface {
	Create(ctx context.Context, id, email, password string) error
	Verify(ctx context.Context, email, password string) (Account, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
