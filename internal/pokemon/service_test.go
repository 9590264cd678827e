package pokemon_test

import (
	"context"
	"testing"

	"pokedex-service/internal/apperror"
	"pokedex-service/internal/pokemon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	records []pokemon.Pokemon
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, p *pokemon.Pokemon) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.records {
		if existing.Name == p.Name {
			return pokemon.ErrDuplicate
		}
	}
	p.ID = primitive.NewObjectID()
	f.records = append(f.records, *p)
	return nil
}

func (f *fakeRepo) GetByName(ctx context.Context, name string) (*pokemon.Pokemon, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].Name == name {
			p := f.records[i]
			return &p, nil
		}
	}
	return nil, pokemon.ErrNotFound
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]pokemon.Pokemon, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]pokemon.Pokemon(nil), f.records...), nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.records)), nil
}

func (f *fakeRepo) Update(ctx context.Context, name string, patch pokemon.UpdateRequest) (*pokemon.Pokemon, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].Name == name {
			if patch.Name != nil {
				f.records[i].Name = *patch.Name
			}
			if patch.Type != nil {
				f.records[i].Type = *patch.Type
			}
			if patch.Level != nil {
				f.records[i].Level = *patch.Level
			}
			p := f.records[i]
			return &p, nil
		}
	}
	return nil, pokemon.ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.records {
		if f.records[i].Name == name {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return pokemon.ErrNotFound
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func newService() (pokemon.Service, *fakeRepo) {
	repo := &fakeRepo{}
	return pokemon.NewService(repo, nil), repo
}

func TestCreateThenGet(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	err := service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)})
	require.NoError(t, err)

	details, err := service.Get(ctx, "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", details.Name)
	assert.Equal(t, "Electric", details.Type)
	assert.Equal(t, 5, details.Level)
}

func TestCreate_DuplicateName(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	req := pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}
	require.NoError(t, service.Create(ctx, req))

	err := service.Create(ctx, req)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "Pokemon with name Pikachu already exists", err.Error())
}

func TestCreate_Validation(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	err := service.Create(ctx, pokemon.CreateRequest{Type: "Electric", Level: intPtr(5)})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, `"name" is required`, err.Error())

	// validation failures never touch the store
	assert.Empty(t, repo.records)
}

func TestGet_NotFound(t *testing.T) {
	service, _ := newService()

	_, err := service.Get(context.Background(), "Missingno")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Pokemon with name Missingno not found", err.Error())
}

func TestUpdate_PartialPatch(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}))

	details, err := service.Update(ctx, "Pikachu", pokemon.UpdateRequest{Level: intPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", details.Name)
	assert.Equal(t, "Electric", details.Type)
	assert.Equal(t, 12, details.Level)
}

func TestUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}))

	details, err := service.Update(ctx, "Pikachu", pokemon.UpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5, details.Level)
}

func TestUpdate_NotFound(t *testing.T) {
	service, _ := newService()

	_, err := service.Update(context.Background(), "Missingno", pokemon.UpdateRequest{Type: strPtr("Ghost")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdate_InvalidPatchField(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}))

	_, err := service.Update(ctx, "Pikachu", pokemon.UpdateRequest{Name: strPtr("x")})
	require.Error(t, err)
	assert.Equal(t, `"name" length must be at least 2 characters long`, err.Error())
}

func TestDelete_RoundTrip(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}))
	require.NoError(t, service.Delete(ctx, "Pikachu"))

	_, err := service.Get(ctx, "Pikachu")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = service.Delete(ctx, "Pikachu")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListAndCount(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Pikachu", Type: "Electric", Level: intPtr(5)}))
	require.NoError(t, service.Create(ctx, pokemon.CreateRequest{Name: "Charmander", Type: "Fire", Level: intPtr(7)}))

	pokemons, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, pokemons, 2)
	assert.Equal(t, "Pikachu", pokemons[0].Name)
	assert.False(t, pokemons[0].ID.IsZero())

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStoreFailureSurfacesAsStoreError(t *testing.T) {
	repo := &fakeRepo{err: assert.AnError}
	service := pokemon.NewService(repo, nil)

	_, err := service.Get(context.Background(), "Pikachu")
	require.Error(t, err)
	assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
}
