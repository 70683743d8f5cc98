//go:build integration

package profile_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	pg "storefront/internal/postgres"
	"storefront/internal/profile"
)

func mongoStore(t *testing.T) profile.Store {
	t.Helper()
	ctx := t.Context()

	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return profile.NewMongoStore(client.Database("storefront_test"))
}

func postgresStore(t *testing.T) profile.Store {
	t.Helper()
	ctx := t.Context()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, pg.Migrate(dsn))

	pool, err := pg.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return profile.NewPostgresStore(pool)
}

func TestStores(t *testing.T) {
	stores := map[string]func(*testing.T) profile.Store{
		"mongo":    mongoStore,
		"postgres": postgresStore,
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			ctx := t.Context()
			require.NoError(t, s.Ping(ctx))

			id := "u_" + gofakeit.UUID()
			want := profile.Profile{
				Name:   gofakeit.Name(),
				Email:  gofakeit.Email(),
				Mobile: gofakeit.Numerify("##########"),
			}

			_, err := s.Get(ctx, id)
			require.ErrorIs(t, err, profile.ErrNotFound)

			require.NoError(t, s.Write(ctx, id, want))
			got, err := s.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, s.Delete(ctx, id))
			assert.ErrorIs(t, s.Delete(ctx, id), profile.ErrNotFound)
		})
	}
}
