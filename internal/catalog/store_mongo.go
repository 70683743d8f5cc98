package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "items"

// MongoStore reads products from the items collection. Documents carry
// name, description and price; the document id becomes the product id.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(Collection)}
}

type productDoc struct {
	ID          any           `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Price       bson.RawValue `bson:"price"`
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.collection.Database().Client().Ping(ctx, nil)
	})
}

func (s *MongoStore) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		cur, err := s.collection.Find(ctx, bson.D{})
		if err != nil {
			return fmt.Errorf("find items: %w", err)
		}
		defer cur.Close(ctx)

		out = make([]Product, 0, 16)
		for cur.Next(ctx) {
			var doc productDoc
			if err := cur.Decode(&doc); err != nil {
				return fmt.Errorf("decode item: %w", err)
			}
			p, err := doc.product()
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Product, bool, error) {
	var doc productDoc

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.collection.FindOne(ctx, bson.M{"_id": docID(id)}).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("find item %s: %w", id, err)
	}

	p, err := doc.product()
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

// Insert writes products with string ids. Prices are stored as Decimal128 so
// they round-trip exactly.
func (s *MongoStore) Insert(ctx context.Context, products ...Product) error {
	if len(products) == 0 {
		return nil
	}

	docs := make([]any, 0, len(products))
	for _, p := range products {
		price, err := primitive.ParseDecimal128(p.Price.String())
		if err != nil {
			return fmt.Errorf("price of %s: %w", p.ID, err)
		}
		docs = append(docs, bson.M{
			"_id":         p.ID,
			"name":        p.Name,
			"description": p.Description,
			"price":       price,
		})
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.collection.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
}

func (d productDoc) product() (Product, error) {
	id := idString(d.ID)
	price, err := decodePrice(d.Price)
	if err != nil {
		return Product{}, fmt.Errorf("item %s: %w", id, err)
	}
	return Product{ID: id, Name: d.Name, Description: d.Description, Price: price}, nil
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}

func docID(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{oid, id}}
	}
	return id
}

func decodePrice(rv bson.RawValue) (decimal.Decimal, error) {
	if f, ok := rv.DoubleOK(); ok {
		return decimal.NewFromFloat(f), nil
	}
	if i, ok := rv.Int32OK(); ok {
		return decimal.NewFromInt32(i), nil
	}
	if i, ok := rv.Int64OK(); ok {
		return decimal.NewFromInt(i), nil
	}
	if d, ok := rv.Decimal128OK(); ok {
		return decimal.NewFromString(d.String())
	}
	if s, ok := rv.StringValueOK(); ok {
		return decimal.NewFromString(s)
	}
	return decimal.Zero, fmt.Errorf("unsupported price type %s", rv.Type)
}
