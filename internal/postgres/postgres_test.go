package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	got, err := migrateURL("postgres://shop:pw@db:5432/shop?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://shop:pw@db:5432/shop?sslmode=disable", got)

	got, err = migrateURL("postgresql://db/shop")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://db/shop", got)

	_, err = migrateURL("host=db user=shop")
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
