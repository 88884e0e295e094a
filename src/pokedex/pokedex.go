package pokedex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var (
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrUnsupported     = errors.New("action not available in this variant")
)

type Fetcher interface {
	FetchPokemon(ctx context.Context, identifier string) (pokeapi.Pokemon, error)
	FetchRandomPokemon(ctx context.Context) (pokeapi.Pokemon, error)
}

type Listener func(State)

// Pokedex owns one view state. Fetches run outside the lock and their results
// are committed in completion order; concurrent adds are not sequenced.
type Pokedex struct {
	fetcher Fetcher
	variant Variant
	sugar   *zap.SugaredLogger

	mu        sync.Mutex
	state     State
	listeners []Listener

	tasks conc.WaitGroup
}

func New(fetcher Fetcher, variant Variant, sugar *zap.SugaredLogger) *Pokedex {
	return &Pokedex{
		fetcher: fetcher,
		variant: variant,
		sugar:   sugar,
		state:   State{Variant: variant, Entries: List{}},
	}
}

// OnChange registers fn to receive every committed snapshot. Snapshots from
// concurrent tasks may arrive out of order; compare Revision to discard
// stale ones.
func (p *Pokedex) OnChange(fn Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *Pokedex) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

func (p *Pokedex) Variant() Variant {
	return p.variant
}

// commit applies fn under the lock. fn returns false to abort without
// publishing a new revision.
func (p *Pokedex) commit(fn func(s *State) bool) {
	p.mu.Lock()
	if !fn(&p.state) {
		p.mu.Unlock()
		return
	}
	p.state.Revision++
	snapshot := p.state.clone()
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}

func (p *Pokedex) SetInput(text string) {
	p.commit(func(s *State) bool {
		if s.Input == text {
			return false
		}
		s.Input = text
		return true
	})
}

func (p *Pokedex) AddByInput(ctx context.Context, rawText string) error {
	p.commit(func(s *State) bool {
		s.Input = rawText
		return true
	})
	return p.add(ctx, rawText, func(ctx context.Context) (pokeapi.Pokemon, error) {
		return p.fetcher.FetchPokemon(ctx, rawText)
	})
}

func (p *Pokedex) AddRandom(ctx context.Context) error {
	return p.add(ctx, "random", p.fetcher.FetchRandomPokemon)
}

func (p *Pokedex) add(ctx context.Context, label string, fetch func(context.Context) (pokeapi.Pokemon, error)) error {
	p.begin()
	pokemon, err := fetch(ctx)
	if err != nil {
		p.fail(label, err)
		return err
	}
	p.commit(func(s *State) bool {
		s.Pending--
		s.Entries = Reduce(s.Entries, Append{Entry: newEntry(pokemon)})
		return true
	})
	p.sugar.Debugf("Added Pokemon %s", pokemon.Name)
	return nil
}

func (p *Pokedex) ToggleLike(index int) error {
	if p.variant != VariantLike {
		return ErrUnsupported
	}
	var err error
	p.commit(func(s *State) bool {
		if !validIndex(s.Entries, index) {
			err = fmt.Errorf("toggle like %d of %d: %w", index, len(s.Entries), ErrIndexOutOfRange)
			return false
		}
		s.Entries = Reduce(s.Entries, ToggleLike{Index: index})
		return true
	})
	return err
}

// ReplaceAt swaps the entry at index for a random Pokémon. Entries are never
// removed, so an index valid before the fetch is still valid after it.
func (p *Pokedex) ReplaceAt(ctx context.Context, index int) error {
	if p.variant != VariantNext {
		return ErrUnsupported
	}
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.begin()
	pokemon, err := p.fetcher.FetchRandomPokemon(ctx)
	if err != nil {
		p.fail("random", err)
		return err
	}
	p.commit(func(s *State) bool {
		s.Pending--
		s.Entries = Reduce(s.Entries, Replace{Index: index, Entry: newEntry(pokemon)})
		return true
	})
	p.sugar.Debugf("Replaced entry %d with Pokemon %s", index, pokemon.Name)
	return nil
}

func (p *Pokedex) checkIndex(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !validIndex(p.state.Entries, index) {
		return fmt.Errorf("replace %d of %d: %w", index, len(p.state.Entries), ErrIndexOutOfRange)
	}
	return nil
}

func (p *Pokedex) begin() {
	p.commit(func(s *State) bool {
		s.Error = false
		s.Pending++
		return true
	})
}

func (p *Pokedex) fail(label string, err error) {
	p.sugar.Infof("Pokemon %s not found: %s", label, err)
	p.commit(func(s *State) bool {
		s.Pending--
		s.Error = true
		return true
	})
}

func newEntry(pokemon pokeapi.Pokemon) Entry {
	return Entry{Name: pokemon.Name, SpriteURL: pokemon.SpriteURL}
}
