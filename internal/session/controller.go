// Package session implements sign-in, sign-up and sign-out on top of an
// injected identity provider, and decides where the view goes next.
package session

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/profile"
	"storefront/pkg/kit"
)

// View is a navigation target.
type View string

const (
	ViewEntry   View = "/"
	ViewCatalog View = "/home"
)

const compensateTimeout = 5 * time.Second

type Identity interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	DeleteAccount(ctx context.Context, accountID string) error
	CreateSession(ctx context.Context, email, password string) (auth.Session, error)
	EndSession(ctx context.Context, s auth.Session) error
}

type Profiles interface {
	Write(ctx context.Context, accountID string, p profile.Profile) error
	Delete(ctx context.Context, accountID string) error
}

type Carts interface {
	Discard(ctx context.Context, sessionID string) error
}

// Outcome tells the view where to go. Session is set after login and
// signup.
type Outcome struct {
	Redirect View
	Session  auth.Session
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Mobile   string
}

type Controller struct {
	Identity Identity
	Profiles Profiles
	Carts    Carts
	Log      *zap.Logger
}

func NewController(identity Identity, profiles Profiles, carts Carts, log *zap.Logger) *Controller {
	return &Controller{Identity: identity, Profiles: profiles, Carts: carts, Log: kit.OrNop(log)}
}

func (c *Controller) Login(ctx context.Context, email, password string) (Outcome, error) {
	s, err := c.Identity.CreateSession(ctx, email, password)
	if err != nil {
		c.log().Info("login failed", zap.Error(err))
		return Outcome{}, authError(MsgLoginFailed)
	}
	return Outcome{Redirect: ViewCatalog, Session: s}, nil
}

// Signup creates the account and its profile together. Whatever fails after
// the account exists is compensated so that no account is left without a
// profile and no profile without an account.
func (c *Controller) Signup(ctx context.Context, in SignupInput) (Outcome, error) {
	if !validMobile(in.Mobile) {
		return Outcome{}, validationError(MsgBadMobile)
	}

	accountID, err := c.Identity.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		c.log().Info("signup failed", zap.Error(err))
		return Outcome{}, authError(MsgSignupFailed)
	}

	p := profile.Profile{
		Name:   strings.TrimSpace(in.Name),
		Email:  strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile: in.Mobile,
	}
	if err := c.Profiles.Write(ctx, accountID, p); err != nil {
		c.log().Error("profile write failed", zap.String("account_id", accountID), zap.Error(err))
		c.compensate(ctx, accountID, false)
		return Outcome{}, authError(MsgSignupFailed)
	}

	s, err := c.Identity.CreateSession(ctx, in.Email, in.Password)
	if err != nil {
		c.log().Error("session after signup failed", zap.String("account_id", accountID), zap.Error(err))
		c.compensate(ctx, accountID, true)
		return Outcome{}, authError(MsgSignupFailed)
	}

	return Outcome{Redirect: ViewCatalog, Session: s}, nil
}

// Logout ends the session and drops its cart. A provider failure is logged
// and swallowed: the outcome carries no redirect and the cart is kept.
func (c *Controller) Logout(ctx context.Context, s auth.Session) Outcome {
	if err := c.Identity.EndSession(ctx, s); err != nil {
		c.log().Error("failed to log out", zap.String("session_id", s.ID), zap.Error(err))
		return Outcome{}
	}

	if c.Carts != nil {
		if err := c.Carts.Discard(ctx, s.ID); err != nil {
			c.log().Warn("discard cart failed", zap.String("session_id", s.ID), zap.Error(err))
		}
	}
	return Outcome{Redirect: ViewEntry}
}

func (c *Controller) compensate(ctx context.Context, accountID string, profileWritten bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	if profileWritten {
		if err := c.Profiles.Delete(ctx, accountID); err != nil {
			c.log().Error("compensating profile delete failed", zap.String("account_id", accountID), zap.Error(err))
		}
	}
	if err := c.Identity.DeleteAccount(ctx, accountID); err != nil {
		c.log().Error("compensating account delete failed", zap.String("account_id", accountID), zap.Error(err))
	}
}

func (c *Controller) log() *zap.Logger {
	return kit.OrNop(c.Log)
}

func validMobile(m string) bool {
	if len(m) != 10 {
		return false
	}
	for i := 0; i < len(m); i++ {
		if m[i] < '0' || m[i] > '9' {
			return false
		}
	}
	return true
}
