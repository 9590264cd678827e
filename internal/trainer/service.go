package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pokedex-service/internal/apperror"
	"pokedex-service/internal/messaging"
	"pokedex-service/internal/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Producer publishes lifecycle events, a nil Producer disables
// eventing.
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Trainer, error)
	Authenticate(ctx context.Context, req AuthRequest) error
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, patch UpdateRequest) (*Updated, error)
	Delete(ctx context.Context, id string) error
	ToggleCapture(ctx context.Context, trainerID, pokemonID string) (*Trainer, error)
	ListWithPokemon(ctx context.Context) ([]WithPokemon, error)
	CaptureSummaries(ctx context.Context) ([]string, error)
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Trainer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperror.Conflict("trainer", fmt.Sprintf("Trainer with email %s already exists", req.Email))
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, apperror.Store("trainer", err)
	}

	// Passwords are stored as salted bcrypt hashes, never as plain
	// text.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Store("trainer", err)
	}

	t := &Trainer{
		Email:           req.Email,
		Password:        string(hashedPassword),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Age:             *req.Age,
		CapturedPokemon: []primitive.ObjectID{},
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperror.Conflict("trainer", fmt.Sprintf("Trainer with email %s already exists", req.Email))
		}
		return nil, apperror.Store("trainer", err)
	}
	t.ID = id

	s.publish(ctx, "registered", t.ID.Hex())
	return t, nil
}

// Authenticate verifies the credentials and succeeds silently, token
// issuance is the caller's concern. bcrypt's comparison is
// constant time.
func (s *service) Authenticate(ctx context.Context, req AuthRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	t, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("trainer", fmt.Sprintf("Trainer with email %s not found", req.Email))
		}
		return apperror.Store("trainer", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(t.Password), []byte(req.Password)); err != nil {
		return apperror.Unauthorized("wrong password")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*Profile, error) {
	oid, err := s.parseID("id", id)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("trainer", "Trainer not found")
		}
		return nil, apperror.Store("trainer", err)
	}
	return profile(t), nil
}

func (s *service) Update(ctx context.Context, id string, patch UpdateRequest) (*Updated, error) {
	oid, err := s.parseID("id", id)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	// An empty patch changes nothing, read the current record instead
	// of issuing an empty $set.
	if patch.empty() {
		t, err := s.repo.GetByID(ctx, oid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, apperror.NotFound("trainer", "Trainer not found")
			}
			return nil, apperror.Store("trainer", err)
		}
		return updated(t), nil
	}

	t, err := s.repo.Update(ctx, oid, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperror.NotFound("trainer", "Trainer not found")
		case errors.Is(err, ErrDuplicate):
			email := ""
			if patch.Email != nil {
				email = *patch.Email
			}
			return nil, apperror.Conflict("trainer", fmt.Sprintf("Trainer with email %s already exists", email))
		default:
			return nil, apperror.Store("trainer", err)
		}
	}

	s.publish(ctx, "updated", id)
	return updated(t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := s.parseID("id", id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperror.NotFound("trainer", "Trainer not found")
		}
		return apperror.Store("trainer", err)
	}

	s.publish(ctx, "deleted", id)
	return nil
}

// ToggleCapture removes pokemonID from the trainer's capture list if
// present, otherwise appends it. Each branch is a single atomic
// find-and-modify, so concurrent toggles cannot lose updates. The
// pokemon id is not checked for existence, any well-formed id toggles.
func (s *service) ToggleCapture(ctx context.Context, trainerID, pokemonID string) (*Trainer, error) {
	tid, err := s.parseID("trainerId", trainerID)
	if err != nil {
		return nil, err
	}
	pid, err := s.parseID("pokemonId", pokemonID)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.RemoveCapture(ctx, tid, pid)
	if errors.Is(err, ErrNotFound) {
		t, err = s.repo.AddCapture(ctx, tid, pid)
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NotFound("trainer", "Trainer not found")
		}
	}
	if err != nil {
		return nil, apperror.Store("trainer", err)
	}

	s.publish(ctx, "capture_toggled", trainerID)
	return t, nil
}

func (s *service) ListWithPokemon(ctx context.Context) ([]WithPokemon, error) {
	trainers, err := s.repo.GetAllWithPokemon(ctx)
	if err != nil {
		return nil, apperror.Store("trainer", err)
	}
	if trainers == nil {
		trainers = []WithPokemon{}
	}
	return trainers, nil
}

// CaptureSummaries returns a line per trainer combining the first
// name with the captured count.
func (s *service) CaptureSummaries(ctx context.Context) ([]string, error) {
	trainers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Store("trainer", err)
	}

	summaries := make([]string, 0, len(trainers))
	for _, t := range trainers {
		summaries = append(summaries, fmt.Sprintf("%s has captured %d pokemon", t.FirstName, len(t.CapturedPokemon)))
	}
	return summaries, nil
}

func (s *service) parseID(field, id string) (primitive.ObjectID, error) {
	if err := validate.ID(field, id); err != nil {
		return primitive.NilObjectID, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation(field, fmt.Sprintf("%q must be a valid id", field))
	}
	return oid, nil
}

// publish is best effort, a failed event never fails the operation.
func (s *service) publish(ctx context.Context, action, key string) {
	if s.producer == nil {
		return
	}
	_ = s.producer.SendMessage(ctx, messaging.NewEvent(action, "trainer", key))
}
