package trainer

import (
	"time"

	"pokedex-service/internal/pokemon"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Trainer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Age       int                `bson:"age" json:"age"`
	// CapturedPokemon holds weak references, ownership stays with the
	// pokemons collection.
	CapturedPokemon []primitive.ObjectID `bson:"capturedPokemon" json:"capturedPokemon"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
}

type CreateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,alphanum,min=3,max=30"`
	FirstName string `json:"firstName" validate:"required,alphanum,min=2,max=15"`
	LastName  string `json:"lastName" validate:"required,alphanum,min=2,max=15"`
	Age       *int   `json:"age" validate:"required"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,alphanum,min=3,max=30"`
}

// UpdateRequest carries a partial patch, nil fields are left
// untouched. Password and capturedPokemon are not updatable here.
type UpdateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,alphanum,min=2,max=15"`
	LastName  *string `json:"lastName" validate:"omitempty,alphanum,min=2,max=15"`
	Age       *int    `json:"age"`
}

func (r UpdateRequest) empty() bool {
	return r.Email == nil && r.FirstName == nil && r.LastName == nil && r.Age == nil
}

// Profile is the self-read shape, password and id stay private.
type Profile struct {
	Email           string               `json:"email"`
	FirstName       string               `json:"firstName"`
	LastName        string               `json:"lastName"`
	Age             int                  `json:"age"`
	CapturedPokemon []primitive.ObjectID `json:"capturedPokemon"`
}

func profile(t *Trainer) *Profile {
	captured := t.CapturedPokemon
	if captured == nil {
		captured = []primitive.ObjectID{}
	}
	return &Profile{
		Email:           t.Email,
		FirstName:       t.FirstName,
		LastName:        t.LastName,
		Age:             t.Age,
		CapturedPokemon: captured,
	}
}

// Updated is the update result shape.
type Updated struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

func updated(t *Trainer) *Updated {
	return &Updated{
		Email:     t.Email,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Age:       t.Age,
	}
}

// WithPokemon is a trainer whose captured ids are joined into full
// pokemon records.
type WithPokemon struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Email           string             `bson:"email" json:"email"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Age             int                `bson:"age" json:"age"`
	CapturedPokemon []pokemon.Pokemon  `bson:"capturedPokemon" json:"capturedPokemon"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
