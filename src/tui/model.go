package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StateMsg carries a committed Pokédex snapshot into the program.
type StateMsg pokedex.State

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCB05")).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2A75BB"))
	spriteStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E3350D")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

type Model struct {
	ctx      context.Context
	dex      *pokedex.Pokedex
	input    textinput.Model
	state    pokedex.State
	selected int
}

func NewModel(ctx context.Context, dex *pokedex.Pokedex) *Model {
	input := textinput.New()
	input.Placeholder = "Pokemon"
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()
	return &Model{
		ctx:   ctx,
		dex:   dex,
		input: input,
		state: dex.Snapshot(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		// Snapshots are delivered from several goroutines.
		if msg.Revision > m.state.Revision {
			m.state = pokedex.State(msg)
			m.clampSelection()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		m.dex.Dispatch(m.ctx, pokedex.Command{Kind: pokedex.CommandAdd, Input: m.input.Value()})
		return m, nil
	case "ctrl+r":
		m.dex.Dispatch(m.ctx, pokedex.Command{Kind: pokedex.CommandRandom})
		return m, nil
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down":
		if m.selected < len(m.state.Entries)-1 {
			m.selected++
		}
		return m, nil
	case "ctrl+l":
		m.dispatchSelected(pokedex.VariantLike, pokedex.CommandLike)
		return m, nil
	case "ctrl+n":
		m.dispatchSelected(pokedex.VariantNext, pokedex.CommandNext)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dex.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) dispatchSelected(variant pokedex.Variant, kind pokedex.CommandKind) {
	if m.dex.Variant() != variant || len(m.state.Entries) == 0 {
		return
	}
	m.dex.Dispatch(m.ctx, pokedex.Command{Kind: kind, Index: m.selected})
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.state.Entries) {
		m.selected = max(0, len(m.state.Entries)-1)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Go Pokédex"))
	b.WriteString("\n")

	for i, entry := range m.state.Entries {
		cursor := "  "
		line := entry.Name
		if i == m.selected {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		if m.state.Variant == pokedex.VariantLike && entry.Liked {
			line += " ❤️"
		}
		fmt.Fprintf(&b, "%s%d. %s %s\n", cursor, i+1, line, spriteStyle.Render(entry.SpriteURL))
	}
	if len(m.state.Entries) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.state.Error {
		b.WriteString(errorStyle.Render("Pokemon not found"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) help() string {
	keys := []string{"enter add", "ctrl+r random", "↑/↓ select"}
	if m.dex.Variant() == pokedex.VariantNext {
		keys = append(keys, "ctrl+n next")
	} else {
		keys = append(keys, "ctrl+l like")
	}
	keys = append(keys, "esc quit")
	return strings.Join(keys, " • ")
}
