package data

import (
	"context"

	"vidly/internal/docstore"
	"vidly/internal/validator"
)

// Movie embeds a copy of its genre taken when the movie was created. Later
// changes to the genre are not reflected here.
type Movie struct {
	ID              docstore.ID `json:"_id" bson:"_id"`
	Title           string      `json:"title" bson:"title"`
	Genre           Genre       `json:"genre" bson:"genre"`
	NumberInStock   int         `json:"numberInStock" bson:"numberInStock"`
	DailyRentalRate float64     `json:"dailyRentalRate" bson:"dailyRentalRate"`
	Name            string      `json:"name,omitempty" bson:"name,omitempty"`
}

type MovieInput struct {
	Title           string           `json:"title" validate:"required,min=5,max=50"`
	GenreID         string           `json:"genreId" validate:"required,mongodb"`
	NumberInStock   validator.Number `json:"numberInStock" validate:"-"`
	DailyRentalRate validator.Number `json:"dailyRentalRate" validate:"-"`
	Name            *string          `json:"name" validate:"omitempty,max=255"`
}

func ValidateMovie(v *validator.Validator, input *MovieInput) {
	v.Struct(input)
	v.Number("numberInStock", input.NumberInStock, 0, 255, true)
	v.Number("dailyRentalRate", input.DailyRentalRate, 0, 255, false)
}

type MovieModel struct {
	Coll docstore.Collection
}

// GetAll returns every movie ordered by name; movies that were never given
// a name come first.
func (m MovieModel) GetAll(ctx context.Context) ([]*Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	movies := []*Movie{}
	if err := m.Coll.Find(ctx, "name", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (m MovieModel) Get(ctx context.Context, id docstore.ID) (*Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var movie Movie
	if err := m.Coll.FindByID(ctx, id, &movie); err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

func (m MovieModel) Insert(ctx context.Context, movie *Movie) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	movie.ID = docstore.NewID()
	return m.Coll.Insert(ctx, movie)
}

// UpdateName sets the name of a movie and nothing else. A nil name leaves
// the document untouched.
func (m MovieModel) UpdateName(ctx context.Context, id docstore.ID, name *string) (*Movie, error) {
	if name == nil {
		return m.Get(ctx, id)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var movie Movie
	if err := m.Coll.UpdateByID(ctx, id, map[string]any{"name": *name}, &movie); err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

func (m MovieModel) Delete(ctx context.Context, id docstore.ID) (*Movie, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var movie Movie
	if err := m.Coll.DeleteByID(ctx, id, &movie); err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}
