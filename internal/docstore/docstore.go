// Package docstore defines the document store the API persists its
// resources in. Backends live in the mongodb, postgres and memory
// subpackages; all of them store documents keyed by an object id that is
// generated by the caller before insert.
package docstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound     = errors.New("docstore: document not found")
	ErrDuplicateKey = errors.New("docstore: duplicate key")
	ErrInvalidID    = errors.New("docstore: invalid id")
)

// Collection names shared by every backend.
const (
	Genres = "genres"
	Movies = "movies"
	Users  = "users"
)

// ID identifies a document in every backend.
type ID = bson.ObjectID

// Store is a handle on an open document database.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection is the set of operations the API performs on one kind of
// document. out arguments are pointers the matching document(s) are
// decoded into; Find expects a pointer to a slice.
type Collection interface {
	Find(ctx context.Context, sortField string, out any) error
	FindOne(ctx context.Context, field string, value string, out any) error
	FindByID(ctx context.Context, id ID, out any) error
	Insert(ctx context.Context, doc any) error
	UpdateByID(ctx context.Context, id ID, set map[string]any, out any) error
	DeleteByID(ctx context.Context, id ID, out any) error
}

// ParseID converts the hex form of an object id, as it appears in request
// paths, into an id.
func ParseID(hex string) (ID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// NewID returns a fresh object id.
func NewID() ID {
	return bson.NewObjectID()
}
