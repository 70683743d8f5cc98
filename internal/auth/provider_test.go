package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newProvider(t *testing.T, revoked auth.Revocations) *auth.Provider {
	t.Helper()
	return auth.NewProvider(auth.NewMemStore(bcrypt.MinCost), auth.NewTokenMaker(testSecret), revoked, time.Hour)
}

func TestProvider_AccountAndSession(t *testing.T) {
	p := newProvider(t, nil)
	ctx := t.Context()

	id, err := p.CreateAccount(ctx, "  User@Example.com ", "secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "u_"))

	_, err = p.CreateAccount(ctx, "user@example.com", "another1")
	require.ErrorIs(t, err, auth.ErrEmailExists)

	s, err := p.CreateSession(ctx, "USER@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, s.AccountID)
	assert.Equal(t, "user@example.com", s.Email)
	assert.NotEmpty(t, s.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)

	got, err := p.Authenticate(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, id, got.AccountID)
}

func TestProvider_Rejections(t *testing.T) {
	p := newProvider(t, nil)
	ctx := t.Context()

	_, err := p.CreateAccount(ctx, "not-an-email", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	_, err = p.CreateAccount(ctx, "a@b.co", "12345")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	_, err = p.CreateAccount(ctx, "a@b.co", "123456")
	require.NoError(t, err)

	_, err = p.CreateSession(ctx, "a@b.co", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = p.CreateSession(ctx, "nobody@b.co", "123456")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = p.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestProvider_EndSessionRevokesOnlyThatSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	revocations := map[string]auth.Revocations{
		"memory": auth.NewMemRevocations(),
		"redis":  auth.NewRedisRevocations(client),
	}

	for name, rev := range revocations {
		t.Run(name, func(t *testing.T) {
			p := newProvider(t, rev)
			ctx := t.Context()

			email := name + "@example.com"
			_, err := p.CreateAccount(ctx, email, "secret1")
			require.NoError(t, err)

			first, err := p.CreateSession(ctx, email, "secret1")
			require.NoError(t, err)
			second, err := p.CreateSession(ctx, email, "secret1")
			require.NoError(t, err)

			require.NoError(t, p.EndSession(ctx, first))

			_, err = p.Authenticate(ctx, first.Token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)

			_, err = p.Authenticate(ctx, second.Token)
			assert.NoError(t, err)
		})
	}
}

func TestProvider_DeleteAccount(t *testing.T) {
	p := newProvider(t, nil)
	ctx := t.Context()

	id, err := p.CreateAccount(ctx, "gone@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, p.DeleteAccount(ctx, id))
	assert.ErrorIs(t, p.DeleteAccount(ctx, id), auth.ErrAccountNotFound)

	_, err = p.CreateSession(ctx, "gone@example.com", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = p.CreateAccount(ctx, "gone@example.com", "secret1")
	assert.NoError(t, err, "email is free again after delete")
}

func TestTokenMaker(t *testing.T) {
	tm := auth.NewTokenMaker(testSecret)

	tok, claims, err := tm.New("u_1", "a@b.co", time.Minute)
	require.NoError(t, err)

	got, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, got.ID)
	assert.Equal(t, "u_1", got.Subject)

	_, err = auth.NewTokenMaker("another-secret-another-secret-xx").Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, _, err := tm.New("u_1", "a@b.co", -time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
