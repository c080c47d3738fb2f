package emulator

import (
	"github.com/davren/ls8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d address 0x%02x %v", err.LineNo, err.Addr, err.Err)
	}
	return f("address 0x%02x %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
