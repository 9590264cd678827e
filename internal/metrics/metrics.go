package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	pokemonCreated      metric.Int64Counter
	pokemonListViewed   metric.Int64Counter
	trainersRegistered  metric.Int64Counter
	trainersListViewed  metric.Int64Counter
	capturesToggled     metric.Int64Counter
	authenticationsDone metric.Int64Counter
}

func New() (*Metrics, error) {
	meter := otel.Meter("pokedex-service")
	m := &Metrics{}

	var err error

	m.pokemonCreated, err = meter.Int64Counter(
		"pokedex_service.pokemon.created",
		metric.WithDescription("Total number of pokemon created"),
		metric.WithUnit("{pokemon}"),
	)
	if err != nil {
		return nil, err
	}

	m.pokemonListViewed, err = meter.Int64Counter(
		"pokedex_service.pokemon.list_viewed",
		metric.WithDescription("Total number of times the pokemon list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.trainersRegistered, err = meter.Int64Counter(
		"pokedex_service.trainers.registered",
		metric.WithDescription("Total number of trainers registered"),
		metric.WithUnit("{trainer}"),
	)
	if err != nil {
		return nil, err
	}

	m.trainersListViewed, err = meter.Int64Counter(
		"pokedex_service.trainers.list_viewed",
		metric.WithDescription("Total number of times the trainer list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.capturesToggled, err = meter.Int64Counter(
		"pokedex_service.captures.toggled",
		metric.WithDescription("Total number of capture toggles"),
		metric.WithUnit("{toggle}"),
	)
	if err != nil {
		return nil, err
	}

	m.authenticationsDone, err = meter.Int64Counter(
		"pokedex_service.trainers.authenticated",
		metric.WithDescription("Total number of successful trainer authentications"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewNoop creates a Metrics instance whose Record calls are no-ops,
// for tests.
func NewNoop() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordPokemonCreated(ctx context.Context) {
	if m != nil && m.pokemonCreated != nil {
		m.pokemonCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordPokemonListViewed(ctx context.Context) {
	if m != nil && m.pokemonListViewed != nil {
		m.pokemonListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordTrainerRegistered(ctx context.Context) {
	if m != nil && m.trainersRegistered != nil {
		m.trainersRegistered.Add(ctx, 1)
	}
}

func (m *Metrics) RecordTrainersListViewed(ctx context.Context) {
	if m != nil && m.trainersListViewed != nil {
		m.trainersListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordCaptureToggled(ctx context.Context) {
	if m != nil && m.capturesToggled != nil {
		m.capturesToggled.Add(ctx, 1)
	}
}

func (m *Metrics) RecordTrainerAuthenticated(ctx context.Context) {
	if m != nil && m.authenticationsDone != nil {
		m.authenticationsDone.Add(ctx, 1)
	}
}
