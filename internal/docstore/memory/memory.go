// Package memory is an in-process docstore backend. Documents are kept in
// their JSON form in insertion order, so they decode exactly like the ones
// coming back from the postgres backend.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"vidly/internal/docstore"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
	unique      map[string][]string
}

var _ docstore.Store = (*Store)(nil)

// New returns an empty store. users.email is unique, mirroring the index
// the other backends create.
func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		unique:      map[string][]string{docstore.Users: {"email"}},
	}
}

func (s *Store) Collection(name string) docstore.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &collection{unique: s.unique[name]}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

type document map[string]any

func (d document) id() string {
	id, _ := d["_id"].(string)
	return id
}

type collection struct {
	mu     sync.RWMutex
	docs   []document
	unique []string
}

func (c *collection) Find(_ context.Context, sortField string, out any) error {
	c.mu.RLock()
	docs := make([]document, len(c.docs))
	copy(docs, c.docs)
	c.mu.RUnlock()

	if sortField != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a, aok := docs[i][sortField]
			b, bok := docs[j][sortField]
			switch {
			case !aok || !bok:
				return !aok && bok
			default:
				return fmt.Sprint(a) < fmt.Sprint(b)
			}
		})
	}

	return decode(docs, out)
}

func (c *collection) FindOne(_ context.Context, field string, value string, out any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if v, ok := d[field]; ok && fmt.Sprint(v) == value {
			return decode(d, out)
		}
	}
	return docstore.ErrNotFound
}

func (c *collection) FindByID(_ context.Context, id bson.ObjectID, out any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id.Hex())
	if i < 0 {
		return docstore.ErrNotFound
	}
	return decode(c.docs[i], out)
}

func (c *collection) Insert(_ context.Context, doc any) error {
	var d document
	if err := decode(doc, &d); err != nil {
		return err
	}
	if _, err := docstore.ParseID(d.id()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(d.id()) >= 0 {
		return docstore.ErrDuplicateKey
	}
	for _, field := range c.unique {
		for _, existing := range c.docs {
			if v, ok := d[field]; ok && fmt.Sprint(existing[field]) == fmt.Sprint(v) {
				return docstore.ErrDuplicateKey
			}
		}
	}

	c.docs = append(c.docs, d)
	return nil
}

func (c *collection) UpdateByID(_ context.Context, id bson.ObjectID, set map[string]any, out any) error {
	var patch document
	if err := decode(set, &patch); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id.Hex())
	if i < 0 {
		return docstore.ErrNotFound
	}

	updated := make(document, len(c.docs[i])+len(patch))
	for k, v := range c.docs[i] {
		updated[k] = v
	}
	for k, v := range patch {
		updated[k] = v
	}
	c.docs[i] = updated

	return decode(updated, out)
}

func (c *collection) DeleteByID(_ context.Context, id bson.ObjectID, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id.Hex())
	if i < 0 {
		return docstore.ErrNotFound
	}

	removed := c.docs[i]
	c.docs = append(c.docs[:i], c.docs[i+1:]...)

	return decode(removed, out)
}

func (c *collection) indexOf(id string) int {
	for i, d := range c.docs {
		if d.id() == id {
			return i
		}
	}
	return -1
}

func decode(in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
