package pokemon

import (
	"context"
	"errors"
	"fmt"

	"pokedex-service/internal/apperror"
	"pokedex-service/internal/messaging"
	"pokedex-service/internal/validate"
)

// Producer publishes lifecycle events, a nil Producer disables
// eventing.
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) error
	Get(ctx context.Context, name string) (*Details, error)
	Update(ctx context.Context, name string, patch UpdateRequest) (*Details, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Pokemon, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	producer Producer
}

func NewService(repo Repository, producer Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	_, err := s.repo.GetByName(ctx, req.Name)
	if err == nil {
		return apperror.Conflict("pokemon", fmt.Sprintf("Pokemon with name %s already exists", req.Name))
	}
	if !errors.Is(err, ErrNotFound) {
		return apperror.Store("pokemon", err)
	}

	p := &Pokemon{
		Name:  req.Name,
		Type:  req.Type,
		Level: *req.Level,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Unique index backstop for creates racing past the lookup.
		if errors.Is(err, ErrDuplicate) {
			return apperror.Conflict("pokemon", fmt.Sprintf("Pokemon with name %s already exists", req.Name))
		}
		return apperror.Store("pokemon", err)
	}

	s.publish(ctx, "created", req.Name)
	return nil
}

func (s *service) Get(ctx context.Context, name string) (*Details, error) {
	if err := validate.Field("name", nameTag, name); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("pokemon", fmt.Sprintf("Pokemon with name %s not found", name))
		}
		return nil, apperror.Store("pokemon", err)
	}
	return details(p), nil
}

func (s *service) Update(ctx context.Context, name string, patch UpdateRequest) (*Details, error) {
	if err := validate.Field("name", nameTag, name); err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	// An empty patch changes nothing, read the current record instead
	// of issuing an empty $set.
	if patch.empty() {
		return s.Get(ctx, name)
	}

	p, err := s.repo.Update(ctx, name, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperror.NotFound("pokemon", fmt.Sprintf("Pokemon with name %s not found", name))
		case errors.Is(err, ErrDuplicate):
			newName := name
			if patch.Name != nil {
				newName = *patch.Name
			}
			return nil, apperror.Conflict("pokemon", fmt.Sprintf("Pokemon with name %s already exists", newName))
		default:
			return nil, apperror.Store("pokemon", err)
		}
	}

	s.publish(ctx, "updated", p.Name)
	return details(p), nil
}

func (s *service) Delete(ctx context.Context, name string) error {
	if err := validate.Field("name", nameTag, name); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("pokemon", fmt.Sprintf("Pokemon with name %s not found", name))
		}
		return apperror.Store("pokemon", err)
	}

	s.publish(ctx, "deleted", name)
	return nil
}

func (s *service) List(ctx context.Context) ([]Pokemon, error) {
	pokemons, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Store("pokemon", err)
	}
	if pokemons == nil {
		pokemons = []Pokemon{}
	}
	return pokemons, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperror.Store("pokemon", err)
	}
	return count, nil
}

// publish is best effort, a failed event never fails the operation.
func (s *service) publish(ctx context.Context, action, name string) {
	if s.producer == nil {
		return
	}
	_ = s.producer.SendMessage(ctx, messaging.NewEvent(action, "pokemon", name))
}
