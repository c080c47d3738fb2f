package cpu

import (
	"fmt"
	"strings"
)

// Statement is one assembled source statement and the bytes it
// produced.
type Statement struct {
	LineNo    int      // Source line number.
	Addr      int      // Memory address of the first byte.
	Words     []string // Source words after expansion.
	Bytes     []byte   // Encoded instruction or data bytes.
	LinkLabel string   // Label to patch into the final byte, if any.
}

// Program is an assembled program listing.
type Program struct {
	Statements []Statement
}

// Debug locates the statement covering a memory address.
type Debug struct {
	*Statement
	Index int
}

func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// LineNo returns the source line number for a memory address, or zero
// when the address is outside the program.
func (prog *Program) LineNo(addr int) int {
	dbg := prog.Debug(addr)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.Statement.LineNo
}

// Binary returns the program as a memory image.
func (prog *Program) Binary() (image []byte) {
	for _, st := range prog.Statements {
		image = append(image, st.Bytes...)
	}

	return
}

// Text renders the program in the loader's textual format: one line per
// statement with its bytes in base 2, followed by the source as a
// comment. Comment words are joined with commas so that no comment
// token parses as a base-2 number.
func (prog *Program) Text() string {
	var sb strings.Builder

	for _, st := range prog.Statements {
		var bits []string
		for _, value := range st.Bytes {
			bits = append(bits, fmt.Sprintf("%08b", value))
		}
		fmt.Fprintf(&sb, "%-26s # %d: %s\n",
			strings.Join(bits, " "), st.LineNo, strings.Join(st.Words, ","))
	}

	return sb.String()
}
