package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrGameOver             = errors.New("game is over")
	ErrOutOfBounds          = errors.New("cell out of bounds")
)

// OutOfBoundsError is returned for any coordinate outside the board. It
// matches [ErrOutOfBounds] with [errors.Is].
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

// [OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell (%d, %d) out of bounds (board %dx%d)",
		e.Row, e.Col, e.Rows, e.Cols,
	)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// AssertionError signals a broken collaborator contract, e.g. a [Sampler]
// returning a draw that is not a valid mine placement.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
