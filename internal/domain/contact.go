package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrContactNotFound    = errors.New("contact not found")
	ErrInvalidContactID   = errors.New("invalid contact id")
	ErrMissingFields      = errors.New("missing required fields")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// RequiredContactFields lists the JSON names every create/update body must carry.
var RequiredContactFields = []string{"firstName", "lastName", "email", "favoriteColor", "birthday"}

// Contact is a stored contact record. ID is the 24-hex identifier assigned by storage.
type Contact struct {
	ID            string `json:"id" bson:"-" example:"507f1f77bcf86cd799439011"`
	FirstName     string `json:"firstName" bson:"firstName" example:"Juan"`
	LastName      string `json:"lastName" bson:"lastName" example:"Perez"`
	Email         string `json:"email" bson:"email" example:"juan.perez@email.com"`
	FavoriteColor string `json:"favoriteColor" bson:"favoriteColor" example:"azul"`
	Birthday      string `json:"birthday" bson:"birthday" example:"1990-05-15"`
}

// ContactInput is the body of POST /contacts and PUT /contacts/{id}.
// Update is a full replace, so both operations require all five fields.
type ContactInput struct {
	FirstName     string `json:"firstName" binding:"required,notblank" validate:"required,notblank" example:"Juan"`
	LastName      string `json:"lastName" binding:"required,notblank" validate:"required,notblank" example:"Perez"`
	Email         string `json:"email" binding:"required,notblank" validate:"required,notblank" example:"juan.perez@email.com"`
	FavoriteColor string `json:"favoriteColor" binding:"required,notblank" validate:"required,notblank" example:"azul"`
	Birthday      string `json:"birthday" binding:"required,notblank" validate:"required,notblank" example:"1990-05-15"`
}

// Normalize trims every field and lower-cases the email.
func (in ContactInput) Normalize() ContactInput {
	return ContactInput{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		FavoriteColor: strings.TrimSpace(in.FavoriteColor),
		Birthday:      strings.TrimSpace(in.Birthday),
	}
}

// ToContact builds a record carrying the input fields under the given id.
func (in ContactInput) ToContact(id string) *Contact {
	return &Contact{
		ID:            id,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		FavoriteColor: in.FavoriteColor,
		Birthday:      in.Birthday,
	}
}

type ContactRepository interface {
	// List returns every contact in natural storage order; never nil.
	List(ctx context.Context) ([]Contact, error)
	// GetByID returns ErrContactNotFound when no record matches.
	GetByID(ctx context.Context, id string) (*Contact, error)
	// Create stores the contact and returns the identifier storage assigned.
	Create(ctx context.Context, in ContactInput) (string, error)
	// Update replaces the five fields; ErrContactNotFound when nothing matched.
	Update(ctx context.Context, id string, in ContactInput) error
	// Delete removes the record; ErrContactNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the storage backend is reachable.
	Ping(ctx context.Context) error
}

// ContactUsecase defines the operations behind the /contacts routes.
type ContactUsecase interface {
	List(ctx context.Context) ([]Contact, error)
	Get(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, in ContactInput) (string, error)
	Update(ctx context.Context, id string, in ContactInput) error
	Delete(ctx context.Context, id string) error
}

// StorageError marks err as an infrastructure failure, keeping the driver message.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
