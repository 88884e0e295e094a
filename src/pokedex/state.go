package pokedex

import (
	"fmt"
	"slices"
)

type Variant string

const (
	// VariantLike shows a like toggle on every entry.
	VariantLike Variant = "like"
	// VariantNext shows a Next button that swaps the entry for a random one.
	VariantNext Variant = "next"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantLike, VariantNext:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q, expected %q or %q", s, VariantLike, VariantNext)
	}
}

type Entry struct {
	Name      string `json:"name"`
	SpriteURL string `json:"spriteUrl"`
	Liked     bool   `json:"liked"`
}

// List is display-ordered. Values of List are never modified after they are
// published; Reduce always returns a fresh slice.
type List []Entry

type Action interface {
	isAction()
}

type Append struct {
	Entry Entry
}

type ToggleLike struct {
	Index int
}

type Replace struct {
	Index int
	Entry Entry
}

func (Append) isAction()     {}
func (ToggleLike) isAction() {}
func (Replace) isAction()    {}

// Reduce returns the list that results from applying action to list. The
// input is never modified. Index actions outside the list return a copy of
// the input unchanged.
func Reduce(list List, action Action) List {
	switch a := action.(type) {
	case Append:
		next := make(List, len(list), len(list)+1)
		copy(next, list)
		return append(next, a.Entry)
	case ToggleLike:
		next := slices.Clone(list)
		if validIndex(list, a.Index) {
			next[a.Index].Liked = !next[a.Index].Liked
		}
		return next
	case Replace:
		next := slices.Clone(list)
		if validIndex(list, a.Index) {
			next[a.Index] = a.Entry
		}
		return next
	default:
		return slices.Clone(list)
	}
}

func validIndex(list List, index int) bool {
	return index >= 0 && index < len(list)
}

// State is one immutable snapshot of the view.
type State struct {
	Variant  Variant `json:"variant"`
	Entries  List    `json:"entries"`
	Input    string  `json:"input"`
	Error    bool    `json:"error"`
	Pending  int     `json:"pending"`
	Revision uint64  `json:"revision"`
}

func (s State) clone() State {
	s.Entries = slices.Clone(s.Entries)
	if s.Entries == nil {
		s.Entries = List{}
	}
	return s
}
