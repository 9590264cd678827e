package pokemon

import "go.mongodb.org/mongo-driver/bson/primitive"

// nameTag is the constraint shared by every operation that takes a
// pokemon name.
const nameTag = "required,alphanum,min=2,max=15"

type Pokemon struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Type  string             `bson:"type" json:"type"`
	Level int                `bson:"level" json:"level"`
}

type CreateRequest struct {
	Name  string `json:"name" validate:"required,alphanum,min=2,max=15"`
	Type  string `json:"type" validate:"required,alphanum,min=2,max=15"`
	Level *int   `json:"level" validate:"required"`
}

// UpdateRequest carries a partial patch, nil fields are left
// untouched.
type UpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,alphanum,min=2,max=15"`
	Type  *string `json:"type" validate:"omitempty,alphanum,min=2,max=15"`
	Level *int    `json:"level"`
}

func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.Type == nil && r.Level == nil
}

// Details is the read shape, the internal id stays private.
type Details struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Level int    `json:"level"`
}

func details(p *Pokemon) *Details {
	return &Details{Name: p.Name, Type: p.Type, Level: p.Level}
}
