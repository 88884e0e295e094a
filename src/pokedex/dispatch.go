package pokedex

import (
	"context"
	"fmt"
)

type CommandKind int

const (
	CommandAdd CommandKind = iota
	CommandRandom
	CommandLike
	CommandNext
)

func (k CommandKind) String() string {
	switch k {
	case CommandAdd:
		return "add"
	case CommandRandom:
		return "random"
	case CommandLike:
		return "like"
	case CommandNext:
		return "next"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a user action. Input is read by CommandAdd, Index by
// CommandLike and CommandNext.
type Command struct {
	Kind  CommandKind
	Input string
	Index int
}

// Do runs cmd to completion on the calling goroutine.
func (p *Pokedex) Do(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CommandAdd:
		return p.AddByInput(ctx, cmd.Input)
	case CommandRandom:
		return p.AddRandom(ctx)
	case CommandLike:
		return p.ToggleLike(cmd.Index)
	case CommandNext:
		return p.ReplaceAt(ctx, cmd.Index)
	default:
		return fmt.Errorf("unknown command %s", cmd.Kind)
	}
}

// Dispatch runs cmd as a background task and returns immediately. A later
// command does not cancel or wait for an earlier one. The outcome is only
// observable through OnChange and Snapshot.
func (p *Pokedex) Dispatch(ctx context.Context, cmd Command) {
	p.tasks.Go(func() {
		if err := p.Do(ctx, cmd); err != nil {
			p.sugar.Debugf("Command %s finished with error: %s", cmd.Kind, err)
		}
	})
}

// Wait blocks until every dispatched task has finished.
func (p *Pokedex) Wait() {
	p.tasks.Wait()
}
