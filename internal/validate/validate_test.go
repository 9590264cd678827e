package validate_test

import (
	"testing"

	"pokedex-service/internal/apperror"
	"pokedex-service/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPokemon struct {
	Name  string `json:"name" validate:"required,alphanum,min=2,max=15"`
	Type  string `json:"type" validate:"required,alphanum,min=2,max=15"`
	Level *int   `json:"level" validate:"required"`
}

func intPtr(i int) *int { return &i }

func TestStruct_Valid(t *testing.T) {
	req := createPokemon{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}
	assert.NoError(t, validate.Struct(req))
}

func TestStruct_FirstFailingFieldWins(t *testing.T) {
	req := createPokemon{Name: "", Type: ""}
	err := validate.Struct(req)
	require.Error(t, err)
	assert.Equal(t, `"name" is required`, err.Error())
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		req  createPokemon
		want string
	}{
		{
			name: "missing name",
			req:  createPokemon{Type: "Electric", Level: intPtr(5)},
			want: `"name" is required`,
		},
		{
			name: "name too short",
			req:  createPokemon{Name: "P", Type: "Electric", Level: intPtr(5)},
			want: `"name" length must be at least 2 characters long`,
		},
		{
			name: "name too long",
			req:  createPokemon{Name: "Pikachuuuuuuuuuu", Type: "Electric", Level: intPtr(5)},
			want: `"name" length must be less than or equal to 15 characters long`,
		},
		{
			name: "name not alphanumeric",
			req:  createPokemon{Name: "Pika chu", Type: "Electric", Level: intPtr(5)},
			want: `"name" must only contain alpha-numeric characters`,
		},
		{
			name: "missing type",
			req:  createPokemon{Name: "Pikachu", Level: intPtr(5)},
			want: `"type" is required`,
		},
		{
			name: "missing level",
			req:  createPokemon{Name: "Pikachu", Type: "Electric"},
			want: `"level" is required`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestStruct_OptionalPatchFields(t *testing.T) {
	type patch struct {
		Name *string `json:"name" validate:"omitempty,alphanum,min=2,max=15"`
	}
	assert.NoError(t, validate.Struct(patch{}))

	bad := "x"
	err := validate.Struct(patch{Name: &bad})
	require.Error(t, err)
	assert.Equal(t, `"name" length must be at least 2 characters long`, err.Error())
}

func TestField_Email(t *testing.T) {
	assert.NoError(t, validate.Field("email", "required,email", "ash@pallet.town"))

	err := validate.Field("email", "required,email", "not-an-email")
	require.Error(t, err)
	assert.Equal(t, `"email" must be a valid email`, err.Error())
}

func TestID(t *testing.T) {
	assert.NoError(t, validate.ID("trainerId", "5e9f8f8f8f8f8f8f8f8f8f8f"))

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", `"trainerId" is required`},
		{"too short", "abc123", `"trainerId" must be a valid id`},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", `"trainerId" must be a valid id`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.ID("trainerId", tt.value)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
