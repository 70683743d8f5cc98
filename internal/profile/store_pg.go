package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Write(ctx context.Context, accountID string, p Profile) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO profiles (account_id, name, email, mobile)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (account_id) DO UPDATE
			SET name = EXCLUDED.name, email = EXCLUDED.email, mobile = EXCLUDED.mobile, updated_at = now()
		`, accountID, p.Name, p.Email, p.Mobile)
		return err
	})
}

func (s *PostgresStore) Get(ctx context.Context, accountID string) (Profile, error) {
	var p Profile
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.pool.QueryRow(ctx, `
			SELECT name, email, mobile
			FROM profiles
			WHERE account_id = $1
		`, accountID).Scan(&p.Name, &p.Email, &p.Mobile)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *PostgresStore) Delete(ctx context.Context, accountID string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE account_id = $1`, accountID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
