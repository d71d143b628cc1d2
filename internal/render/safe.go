package render

import (
	"errors"
	"fmt"
)

// ErrPanic wraps a recovered rendering panic.
var ErrPanic = errors.New("render: panic")

// Safe runs draw and converts a panic into an error, so a broken frame never
// takes the game loops down with it.
func Safe(draw func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	draw()
	return nil
}
