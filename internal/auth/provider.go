package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultSessionTTL = 1 * time.Hour
	minPasswordLen    = 6
)

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrWeakPassword = errors.New("password too short")
)

// Session is an authenticated session. ID is the token id and scopes
// per-session state such as the cart.
type Session struct {
	ID        string
	AccountID string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Provider is the local identity provider: accounts in an AccountStore,
// sessions as signed tokens that can be revoked before they expire.
type Provider struct {
	Accounts AccountStore
	Tokens   *TokenMaker
	Revoked  Revocations
	TTL      time.Duration
}

func NewProvider(accounts AccountStore, tokens *TokenMaker, revoked Revocations, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if revoked == nil {
		revoked = NewMemRevocations()
	}
	return &Provider{Accounts: accounts, Tokens: tokens, Revoked: revoked, TTL: ttl}
}

// CreateAccount registers email/password and returns the new account id.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}

	id := "u_" + uuid.NewString()
	if err := p.Accounts.Create(ctx, id, email, password); err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

func (p *Provider) DeleteAccount(ctx context.Context, accountID string) error {
	if err := p.Accounts.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("delete account %s: %w", accountID, err)
	}
	return nil
}

func (p *Provider) CreateSession(ctx context.Context, email, password string) (Session, error) {
	a, err := p.Accounts.Verify(ctx, email, password)
	if err != nil {
		return Session{}, fmt.Errorf("verify credentials: %w", err)
	}

	tok, claims, err := p.Tokens.New(a.ID, a.Email, p.TTL)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	return sessionFromClaims(tok, claims), nil
}

// EndSession revokes the session's token for the rest of its lifetime.
func (p *Provider) EndSession(ctx context.Context, s Session) error {
	if err := p.Revoked.Revoke(ctx, s.ID, s.ExpiresAt); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to a live session.
func (p *Provider) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := p.Tokens.Parse(token)
	if err != nil {
		return Session{}, err
	}

	revoked, err := p.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Session{}, ErrInvalidToken
	}

	return sessionFromClaims(token, claims), nil
}

func (p *Provider) Ping(ctx context.Context) error {
	return p.Accounts.Ping(ctx)
}

func sessionFromClaims(token string, c Claims) Session {
	s := Session{
		ID:        c.ID,
		AccountID: c.Subject,
		Email:     c.Email,
		Token:     token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
