package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection that holds cached pages.
const CollectionName = "page_cache"

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Entry     Entry     `bson:"entry"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoStore shares cached pages between server instances. Mongo's TTL
// monitor removes expired documents; reads also filter on expires_at since
// the monitor only runs once a minute.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates the TTL index on the cache collection of db.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	collection := db.Collection(CollectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, fmt.Errorf("create page cache TTL index: %w", err)
	}
	return &MongoStore{collection: collection}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var doc mongoEntry
	err := s.collection.FindOne(ctx, bson.M{
		"_id":        key,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return doc.Entry, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	doc := mongoEntry{Key: key, Entry: entry, ExpiresAt: time.Now().Add(ttl)}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{})
	return err
}
