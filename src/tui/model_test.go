package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type stubFetcher struct {
	next int
}

func (s *stubFetcher) FetchPokemon(_ context.Context, identifier string) (pokeapi.Pokemon, error) {
	if identifier != "pikachu" {
		return pokeapi.Pokemon{}, &pokeapi.FetchError{Identifier: identifier, StatusCode: 404}
	}
	return pokeapi.Pokemon{Name: "pikachu", SpriteURL: "https://img.example/25.png"}, nil
}

func (s *stubFetcher) FetchRandomPokemon(_ context.Context) (pokeapi.Pokemon, error) {
	names := []string{"bulbasaur", "charmander", "squirtle", "eevee"}
	name := names[s.next%len(names)]
	s.next++
	return pokeapi.Pokemon{Name: name, SpriteURL: "https://img.example/" + name + ".png"}, nil
}

func newTestModel(t *testing.T, variant pokedex.Variant) *Model {
	t.Helper()
	dex := pokedex.New(&stubFetcher{}, variant, zap.NewNop().Sugar())
	return NewModel(context.Background(), dex)
}

// press feeds a key to the model and waits for any dispatched fetch, then
// delivers the resulting snapshot the way the program would.
func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	m.dex.Wait()
	m.Update(StateMsg(m.dex.Snapshot()))
	return cmd
}

func typeText(m *Model, text string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestTypeAndAdd(t *testing.T) {
	m := newTestModel(t, pokedex.VariantLike)

	typeText(m, "pikachu")
	if got := m.dex.Snapshot().Input; got != "pikachu" {
		t.Errorf("captured input = %q", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if n := len(m.state.Entries); n != 1 || m.state.Entries[0].Name != "pikachu" {
		t.Fatalf("entries = %+v", m.state.Entries)
	}
	if view := m.View(); !strings.Contains(view, "pikachu") || strings.Contains(view, "Pokemon not found") {
		t.Errorf("view:\n%s", view)
	}
}

func TestAddUnknownShowsError(t *testing.T) {
	m := newTestModel(t, pokedex.VariantLike)

	typeText(m, "doesnotexist123")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.state.Entries) != 0 || !m.state.Error {
		t.Errorf("state = %+v", m.state)
	}
	if !strings.Contains(m.View(), "Pokemon not found") {
		t.Error("error line missing from view")
	}
}

func TestRandomAndLikeSelected(t *testing.T) {
	m := newTestModel(t, pokedex.VariantLike)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if len(m.state.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.state.Entries))
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1 (clamped)", m.selected)
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	if m.state.Entries[0].Liked || !m.state.Entries[1].Liked {
		t.Errorf("liked flags = %v, %v", m.state.Entries[0].Liked, m.state.Entries[1].Liked)
	}
	if !strings.Contains(m.View(), "❤️") {
		t.Error("liked marker missing from view")
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.state.Entries[1].Name != "charmander" {
		t.Error("next key acted on like variant")
	}
}

func TestNextReplacesSelected(t *testing.T) {
	m := newTestModel(t, pokedex.VariantNext)
	typeText(m, "pikachu")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})

	press(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	if m.state.Entries[0].Name != "charmander" || m.state.Entries[1].Name != "bulbasaur" {
		t.Errorf("entries = %+v", m.state.Entries)
	}
	if !strings.Contains(m.View(), "ctrl+n next") {
		t.Error("help does not mention next")
	}
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m := newTestModel(t, pokedex.VariantLike)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	current := m.state

	m.Update(StateMsg(pokedex.State{Revision: current.Revision - 1}))

	if len(m.state.Entries) != 1 || m.state.Revision != current.Revision {
		t.Errorf("stale snapshot applied: %+v", m.state)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newTestModel(t, pokedex.VariantLike)
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v: no command returned", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not quit", key)
		}
	}
}
