package trainer

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("trainer not found")
	ErrDuplicate = errors.New("trainer email already exists")
)

type Repository interface {
	Create(ctx context.Context, t *Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Trainer, error)
	GetByEmail(ctx context.Context, email string) (*Trainer, error)
	GetAll(ctx context.Context) ([]Trainer, error)
	GetAllWithPokemon(ctx context.Context) ([]WithPokemon, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UpdateRequest) (*Trainer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	RemoveCapture(ctx context.Context, id, pokemonID primitive.ObjectID) (*Trainer, error)
	AddCapture(ctx context.Context, id, pokemonID primitive.ObjectID) (*Trainer, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database) Repository {
	return &repository{
		collection: database.Collection("trainers"),
	}
}

func (r *repository) Create(ctx context.Context, t *Trainer) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return oid, nil
}

func (r *repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Trainer, error) {
	t := new(Trainer)
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Trainer, error) {
	t := new(Trainer)
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Trainer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var trainers []Trainer
	if err := cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// GetAllWithPokemon joins captured pokemon ids into full pokemon
// records with a $lookup against the pokemons collection.
func (r *repository) GetAllWithPokemon(ctx context.Context) ([]WithPokemon, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "pokemons"},
			{Key: "localField", Value: "capturedPokemon"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "capturedPokemon"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var trainers []WithPokemon
	if err := cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update applies only the provided patch fields in a single
// find-and-modify round trip and returns the updated document.
func (r *repository) Update(ctx context.Context, id primitive.ObjectID, patch UpdateRequest) (*Trainer, error) {
	set := bson.M{}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}

	t := new(Trainer)
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveCapture pulls pokemonID out of the capture list. The filter
// requires the id to be present, so the pull is atomic and ErrNotFound
// means either the trainer is absent or the id was not captured.
func (r *repository) RemoveCapture(ctx context.Context, id, pokemonID primitive.ObjectID) (*Trainer, error) {
	t := new(Trainer)
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "capturedPokemon": pokemonID},
		bson.M{"$pull": bson.M{"capturedPokemon": pokemonID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// AddCapture appends pokemonID to the capture list. The $ne guard in
// the filter keeps the toggle from ever producing duplicates under
// concurrent requests.
func (r *repository) AddCapture(ctx context.Context, id, pokemonID primitive.ObjectID) (*Trainer, error) {
	t := new(Trainer)
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "capturedPokemon": bson.M{"$ne": pokemonID}},
		bson.M{"$push": bson.M{"capturedPokemon": pokemonID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
