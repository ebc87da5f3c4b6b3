package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vidly/internal/docstore"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

// Open connects to uri, verifies the connection and makes sure the unique
// index on users.email exists.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}

	_, err = s.db.Collection(docstore.Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create users.email index: %w", err)
	}

	return s, nil
}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{coll: s.db.Collection(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

type collection struct {
	coll *mongo.Collection
}

func (c *collection) Find(ctx context.Context, sortField string, out any) error {
	opts := options.Find()
	if sortField != "" {
		opts.SetSort(bson.D{{Key: sortField, Value: 1}})
	}

	cursor, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (c *collection) FindOne(ctx context.Context, field string, value string, out any) error {
	err := c.coll.FindOne(ctx, bson.D{{Key: field, Value: value}}).Decode(out)
	return translate(err)
}

func (c *collection) FindByID(ctx context.Context, id bson.ObjectID, out any) error {
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(out)
	return translate(err)
}

func (c *collection) Insert(ctx context.Context, doc any) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (c *collection) UpdateByID(ctx context.Context, id bson.ObjectID, set map[string]any, out any) error {
	update := bson.D{{Key: "$set", Value: bson.M(set)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := c.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(out)
	return translate(err)
}

func (c *collection) DeleteByID(ctx context.Context, id bson.ObjectID, out any) error {
	err := c.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(out)
	return translate(err)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return docstore.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return docstore.ErrDuplicateKey
	default:
		return err
	}
}
