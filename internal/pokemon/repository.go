package pokemon

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("pokemon not found")
	ErrDuplicate = errors.New("pokemon name already exists")
)

type Repository interface {
	Create(ctx context.Context, p *Pokemon) error
	GetByName(ctx context.Context, name string) (*Pokemon, error)
	GetAll(ctx context.Context) ([]Pokemon, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, name string, patch UpdateRequest) (*Pokemon, error)
	Delete(ctx context.Context, name string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database) Repository {
	return &repository{
		collection: database.Collection("pokemons"),
	}
}

func (r *repository) Create(ctx context.Context, p *Pokemon) error {
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Pokemon, error) {
	p := new(Pokemon)
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Pokemon, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var pokemons []Pokemon
	if err := cursor.All(ctx, &pokemons); err != nil {
		return nil, err
	}
	return pokemons, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Update applies only the provided patch fields in a single
// find-and-modify round trip and returns the updated document.
func (r *repository) Update(ctx context.Context, name string, patch UpdateRequest) (*Pokemon, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Level != nil {
		set["level"] = *patch.Level
	}

	p := new(Pokemon)
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"name": name},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, name string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
