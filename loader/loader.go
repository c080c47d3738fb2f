// Package loader reads textual LS-8 program images.
//
// An image is whitespace-separated tokens, one instruction byte per
// token, written in base 2. Tokens that do not parse as base-2 numbers
// are comments and are skipped.
package loader

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davren/ls8/cpu"
)

// Read parses a program image from an input stream. Bytes are stored
// sequentially from address zero. A base-2 token wider than 8 bits, or
// an image larger than the machine's memory, is a load failure.
func Read(input io.Reader) (image []byte, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno += 1
		for _, word := range strings.Fields(scanner.Text()) {
			value, perr := strconv.ParseUint(word, 2, 8)
			if perr != nil {
				var num *strconv.NumError
				if errors.As(perr, &num) && errors.Is(num.Err, strconv.ErrRange) {
					err = errors.Join(ErrLoadFailure, &ErrToken{LineNo: lineno, Word: word})
					return
				}
				// Not a number - comment token.
				continue
			}
			if len(image) == cpu.MEMORY_SIZE {
				err = errors.Join(ErrLoadFailure, ErrTooLarge)
				return
			}
			image = append(image, byte(value))
		}
	}

	if serr := scanner.Err(); serr != nil {
		err = errors.Join(ErrLoadFailure, serr)
	}

	return
}

// ReadFile parses the program image in the named file. A missing or
// unreadable file is a load failure.
func ReadFile(name string) (image []byte, err error) {
	file, ferr := os.Open(name)
	if ferr != nil {
		err = errors.Join(ErrLoadFailure, ferr)
		return
	}
	defer file.Close()

	return Read(file)
}
