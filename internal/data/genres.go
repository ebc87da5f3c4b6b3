package data

import (
	"context"

	"vidly/internal/docstore"
	"vidly/internal/validator"
)

type Genre struct {
	ID   docstore.ID `json:"_id" bson:"_id"`
	Name string      `json:"name" bson:"name"`
}

type GenreInput struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func ValidateGenre(v *validator.Validator, input *GenreInput) {
	v.Struct(input)
}

type GenreModel struct {
	Coll docstore.Collection
}

// GetAll returns every genre ordered by name.
func (m GenreModel) GetAll(ctx context.Context) ([]*Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	genres := []*Genre{}
	if err := m.Coll.Find(ctx, "name", &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (m GenreModel) Get(ctx context.Context, id docstore.ID) (*Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var genre Genre
	if err := m.Coll.FindByID(ctx, id, &genre); err != nil {
		return nil, translate(err)
	}
	return &genre, nil
}

// Insert assigns genre a new id and stores it.
func (m GenreModel) Insert(ctx context.Context, genre *Genre) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	genre.ID = docstore.NewID()
	return m.Coll.Insert(ctx, genre)
}

func (m GenreModel) UpdateName(ctx context.Context, id docstore.ID, name string) (*Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var genre Genre
	if err := m.Coll.UpdateByID(ctx, id, map[string]any{"name": name}, &genre); err != nil {
		return nil, translate(err)
	}
	return &genre, nil
}

func (m GenreModel) Delete(ctx context.Context, id docstore.ID) (*Genre, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var genre Genre
	if err := m.Coll.DeleteByID(ctx, id, &genre); err != nil {
		return nil, translate(err)
	}
	return &genre, nil
}
