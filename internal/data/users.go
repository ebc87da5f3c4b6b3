package data

import (
	"context"
	"errors"

	"vidly/internal/docstore"
	"vidly/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
)

type password struct {
	plaintext *string
	hash      []byte
}

type User struct {
	ID       docstore.ID `json:"_id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password password    `json:"-"`
	IsAdmin  bool        `json:"isAdmin"`
}

// userDocument is the stored form of a User. It carries the password hash,
// which User never serializes.
type userDocument struct {
	ID       docstore.ID `json:"_id" bson:"_id"`
	Name     string      `json:"name" bson:"name"`
	Email    string      `json:"email" bson:"email"`
	Password string      `json:"password" bson:"password"`
	IsAdmin  bool        `json:"isAdmin" bson:"isAdmin"`
}

func (d userDocument) user() *User {
	return &User{
		ID:       d.ID,
		Name:     d.Name,
		Email:    d.Email,
		Password: password{hash: []byte(d.Password)},
		IsAdmin:  d.IsAdmin,
	}
}

func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintextPassword
	p.hash = hash

	return nil
}

func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

type UserInput struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

func ValidateUser(v *validator.Validator, input *UserInput) {
	v.Struct(input)
}

func ValidateLogin(v *validator.Validator, input *LoginInput) {
	v.Struct(input)
}

type UserModel struct {
	Coll docstore.Collection
}

func (m UserModel) Insert(ctx context.Context, user *User) error {
	if user.Password.hash == nil {
		panic("missing password hash for user")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user.ID = docstore.NewID()
	doc := userDocument{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Password: string(user.Password.hash),
		IsAdmin:  user.IsAdmin,
	}

	err := m.Coll.Insert(ctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrDuplicateKey):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m UserModel) Get(ctx context.Context, id docstore.ID) (*User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc userDocument
	if err := m.Coll.FindByID(ctx, id, &doc); err != nil {
		return nil, translate(err)
	}
	return doc.user(), nil
}

func (m UserModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var doc userDocument
	if err := m.Coll.FindOne(ctx, "email", email, &doc); err != nil {
		return nil, translate(err)
	}
	return doc.user(), nil
}
