package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

var ErrNoTerminal = errors.New("TUI requires a real terminal")

// Run blocks until the user quits. Fetches still in flight are cancelled
// and awaited before returning.
func Run(ctx context.Context, dex *pokedex.Pokedex, sugar *zap.SugaredLogger) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, dex), tea.WithAltScreen(), tea.WithContext(ctx))
	// Send blocks while Update runs, and Update itself commits state.
	dex.OnChange(func(s pokedex.State) {
		go p.Send(StateMsg(s))
	})

	_, err := p.Run()
	cancel()
	dex.Wait()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	sugar.Infof("TUI closed with %d entries", len(dex.Snapshot().Entries))
	return nil
}
