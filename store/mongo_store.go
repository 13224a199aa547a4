package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDoc is the on-disk document shape: key/value as raw bytes, keyed
// by a hex-encoded _id so binary keys survive BSON's string-keyed index.
type mongoDoc struct {
	ID    string `bson:"_id"`
	Value []byte `bson:"value"`
}

// NewMongoStore implements SecretStore on a single MongoDB collection.
func NewMongoStore(collection *mongo.Collection) (*MongoStore, error) {
	if collection == nil {
		return nil, fmt.Errorf("store: mongo collection must not be nil")
	}
	return &MongoStore{collection: collection}, nil
}

// MongoStore is a SecretStore backed by a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

func hexKey(key []byte) string { return hex.EncodeToString(key) }

func (m *MongoStore) Get(ctx context.Context, key []byte) ([]byte, Result, error) {
	var doc mongoDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": hexKey(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ResultKeyNotFound, nil
	}
	if err != nil {
		return nil, ResultUnknown, fmt.Errorf("store: mongo find: %w", err)
	}
	return doc.Value, ResultKeyFound, nil
}

func (m *MongoStore) Set(ctx context.Context, key, value []byte) (Result, error) {
	res, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": hexKey(key)},
		mongoDoc{ID: hexKey(key), Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: mongo replace: %w", err)
	}
	if res.UpsertedCount > 0 {
		return ResultInserted, nil
	}
	return ResultModified, nil
}

func (m *MongoStore) Remove(ctx context.Context, key []byte) (Result, error) {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": hexKey(key)})
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ResultKeyNotFound, nil
	}
	return ResultDeleted, nil
}

func (m *MongoStore) Check(ctx context.Context, key []byte) (bool, error) {
	n, err := m.collection.CountDocuments(ctx, bson.M{"_id": hexKey(key)})
	if err != nil {
		return false, fmt.Errorf("store: mongo count: %w", err)
	}
	return n > 0, nil
}

func (m *MongoStore) List(ctx context.Context) ([][]byte, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: mongo find: %w", err)
	}
	defer cursor.Close(ctx)

	var out [][]byte
	for cursor.Next(ctx) {
		var doc mongoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("store: mongo decode: %w", err)
		}
		key, err := hex.DecodeString(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("store: mongo key decode: %w", err)
		}
		out = append(out, key)
	}
	return out, cursor.Err()
}

func (m *MongoStore) Clear(ctx context.Context) error {
	_, err := m.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("store: mongo clear: %w", err)
	}
	return nil
}

func (m *MongoStore) Close() error { return nil }
