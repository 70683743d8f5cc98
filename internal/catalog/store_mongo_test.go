//go:build integration

package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/catalog"
)

func startMongo(t *testing.T) *mongo.Database {
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

	return client.Database("storefront_test")
}

func TestMongoStore(t *testing.T) {
	db := startMongo(t)
	store := catalog.NewMongoStore(db)
	ctx := t.Context()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Insert(ctx, sampleProducts()...))

	// a document written the way a console user would: generated id, float price
	_, err := db.Collection(catalog.Collection).InsertOne(ctx, bson.M{
		"name":        "Lamp",
		"description": "Warm light",
		"price":       19.99,
	})
	require.NoError(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	var lamp catalog.Product
	for _, p := range got {
		if p.Name == "Lamp" {
			lamp = p
		}
	}
	require.NotEmpty(t, lamp.ID)
	assert.True(t, decimal.RequireFromString("19.99").Equal(lamp.Price))

	byHex, ok, err := store.Get(ctx, lamp.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Lamp", byHex.Name)

	pen, ok, err := store.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1.50").Equal(pen.Price))

	_, ok, err = store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}
