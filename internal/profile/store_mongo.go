package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "users"

// MongoStore keeps profiles in the users collection, one document per
// account with the account id as document id.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(Collection)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, nil)
}

func (s *MongoStore) Write(ctx context.Context, accountID string, p Profile) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": accountID}, p, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
		return nil
	})
}

func (s *MongoStore) Get(ctx context.Context, accountID string) (Profile, error) {
	var p Profile
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.collection.FindOne(ctx, bson.M{"_id": accountID}).Decode(&p)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *MongoStore) Delete(ctx context.Context, accountID string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.collection.DeleteOne(ctx, bson.M{"_id": accountID})
		if err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}
