package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 5 * time.Second

// mongoEntry is the document shape in the form_state collection
type mongoEntry struct {
	Scope     string    `bson:"scope"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore persists values in a shared MongoDB collection, one document per scope and key
type MongoStore struct {
	Collection *mongo.Collection
	scope      string
}

// ConnectMongo dials uri and pings the primary
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// NewMongoStore creates a MongoStore on the breakfast.form_state collection
func NewMongoStore(client *mongo.Client, scope string) *MongoStore {
	collection := client.Database("breakfast").Collection("form_state")
	return &MongoStore{Collection: collection, scope: scope}
}

func (s *MongoStore) filter(key string) bson.M {
	return bson.M{"scope": s.scope, "key": key}
}

func (s *MongoStore) keysFilter(keys []string) bson.M {
	return bson.M{"scope": s.scope, "key": bson.M{"$in": keys}}
}

func setValue(value string, at time.Time) bson.M {
	return bson.M{"$set": bson.M{"value": value, "updated_at": at}}
}

func (s *MongoStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var e mongoEntry
	err := s.Collection.FindOne(ctx, s.filter(key)).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *MongoStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	_, err := s.Collection.UpdateOne(ctx, s.filter(key), setValue(value, time.Now()), options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	_, err := s.Collection.DeleteMany(ctx, s.keysFilter(keys))
	if err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}
