package pokeapi

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every error returned by Client. The UI does not
// tell a missing Pokémon apart from an unreachable API.
var ErrFetchFailed = errors.New("pokemon fetch failed")

var errMalformed = errors.New("response is missing name or sprites")

type FetchError struct {
	Identifier string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching pokemon %q: status %d", e.Identifier, e.StatusCode)
	}
	return fmt.Sprintf("fetching pokemon %q: %v", e.Identifier, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
