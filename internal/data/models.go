package data

import (
	"context"
	"errors"
	"time"

	"vidly/internal/docstore"
)

var (
	ErrNoRecordFound = errors.New("record not found")
)

// queryTimeout bounds every store call made by the models.
const queryTimeout = 3 * time.Second

type Models struct {
	Genres GenreModel
	Movies MovieModel
	Users  UserModel
}

func NewModels(store docstore.Store) Models {
	return Models{
		Genres: GenreModel{Coll: store.Collection(docstore.Genres)},
		Movies: MovieModel{Coll: store.Collection(docstore.Movies)},
		Users:  UserModel{Coll: store.Collection(docstore.Users)},
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// translate maps store errors onto the errors handlers switch on.
func translate(err error) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNoRecordFound
	default:
		return err
	}
}
