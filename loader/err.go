package loader

import (
	"errors"

	"github.com/davren/ls8/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrLoadFailure = errors.New(f("load failure"))
	ErrTooLarge    = errors.New(f("image larger than memory"))
)

// ErrToken reports a token that parsed as a number too wide to store.
type ErrToken struct {
	LineNo int
	Word   string
}

func (err *ErrToken) Error() string {
	return f("line %d '%v' does not fit in a byte", err.LineNo, err.Word)
}
