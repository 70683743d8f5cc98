// Package profile stores per-account supplementary data kept apart from
// credentials.
package profile

import (
	"context"
	"errors"
	"time"
)

const queryTimeout = 3 * time.Second

var ErrNotFound = errors.New("profile not found")

type Profile struct {
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Mobile string `json:"mobile" bson:"mobile"`
}

// Store keeps one profile per account id. Write replaces any existing
// profile for the account.
type Store interface {
	Write(ctx context.Context, accountID string, p Profile) error
	Get(ctx context.Context, accountID string) (Profile, error)
	Delete(ctx context.Context, accountID string) error
	Ping(ctx context.Context) error
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
