package handler

import (
	"context"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"go.uber.org/zap"
)

type FetchRequest struct {
	Identifier string `json:"identifier"`
	Random     bool   `json:"random"`
}

type Fetcher interface {
	FetchPokemon(ctx context.Context, identifier string) (pokeapi.Pokemon, error)
	FetchRandomPokemon(ctx context.Context) (pokeapi.Pokemon, error)
}

// Fetch exposes the PokeAPI client as a Lambda function. Errors are returned
// unchanged so the invocation fails.
type Fetch struct {
	fetcher Fetcher
	sugar   *zap.SugaredLogger
}

func NewFetch(fetcher Fetcher, sugar *zap.SugaredLogger) *Fetch {
	return &Fetch{fetcher: fetcher, sugar: sugar}
}

func (h *Fetch) Handle(ctx context.Context, request FetchRequest) (*pokeapi.Pokemon, error) {
	h.sugar.Infof("Starting Fetch Handler, identifier: %q, random: %t", request.Identifier, request.Random)
	var (
		pokemon pokeapi.Pokemon
		err     error
	)
	if request.Random {
		pokemon, err = h.fetcher.FetchRandomPokemon(ctx)
	} else {
		pokemon, err = h.fetcher.FetchPokemon(ctx, request.Identifier)
	}
	if err != nil {
		h.sugar.Errorf("Failed to fetch Pokemon: %s", err)
		return nil, err
	}
	return &pokemon, nil
}
