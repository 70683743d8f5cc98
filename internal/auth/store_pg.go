package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const pgUniqueCode = "23505"

type PostgresStore struct {
	pool *pgxpool.Pool
	cost int
}

func NewPostgresStore(pool *pgxpool.Pool, cost int) *PostgresStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PostgresStore{pool: pool, cost: cost}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, s.pool.Ping)
}

func (s *PostgresStore) Create(ctx context.Context, id, email, password string) error {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO accounts (id, email, pass_hash)
			VALUES ($1, $2, $3)
		`, id, email, hash)

		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	})
}

func (s *PostgresStore) Verify(ctx context.Context, email, password string) (Account, error) {
	email = normalizeEmail(email)

	var a Account
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.pool.QueryRow(ctx, `
			SELECT id, email, pass_hash
			FROM accounts
			WHERE email = $1
		`, email).Scan(&a.ID, &a.Email, &a.Hash)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(a.Hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
