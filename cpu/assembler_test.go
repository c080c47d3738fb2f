package cpu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseLines(t *testing.T, asm *Assembler, lines ...string) (prog *Program, err error) {
	t.Helper()
	return asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

func stEqual(t *testing.T, expected []Statement, statements []Statement) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(statements))
	if len(expected) == len(statements) {
		for n := range len(expected) {
			assert.Equal(expected[n], statements[n])
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%#v", STACK_EMPTY), asm.Equate["SP_EMPTY"])
	assert.Equal(fmt.Sprintf("%#v", MEMORY_SIZE), asm.Equate["MEMORY_SIZE"])
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"ldi r0 5",
		"ldi r1 3",
		"add r0 r1",
		"prn r0",
		"hlt",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{"ldi", "r0", "5"}, []byte{byte(OP_LDI), 0, 5}, ""},
		{2, 3, []string{"ldi", "r1", "3"}, []byte{byte(OP_LDI), 1, 3}, ""},
		{3, 6, []string{"add", "r0", "r1"}, []byte{byte(OP_ADD), 0, 1}, ""},
		{4, 9, []string{"prn", "r0"}, []byte{byte(OP_PRN), 0}, ""},
		{5, 11, []string{"hlt"}, []byte{byte(OP_HLT)}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"ldi r0 done",
		"jmp r0",
		"done: hlt",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{"ldi", "r0", "done"}, []byte{byte(OP_LDI), 0, 5}, "done"},
		{2, 3, []string{"jmp", "r0"}, []byte{byte(OP_JMP), 0}, ""},
		{3, 5, []string{"hlt"}, []byte{byte(OP_HLT)}, ""},
	}

	stEqual(t, expected, prog.Statements)
	assert.Equal(5, asm.Label["done"])
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		".equ COUNT 5",
		"ldi r0 COUNT",
	)
	assert.NoError(err)

	expected := []Statement{
		{2, 0, []string{"ldi", "r0", "5"}, []byte{byte(OP_LDI), 0, 5}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_Expressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		".equ N 4",
		"ldi r0 $(2+3)",
		"ldi r1 $(N*2)",
	)
	assert.NoError(err)

	expected := []Statement{
		{2, 0, []string{"ldi", "r0", "5"}, []byte{byte(OP_LDI), 0, 5}, ""},
		{3, 3, []string{"ldi", "r1", "8"}, []byte{byte(OP_LDI), 1, 8}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_Characters(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"ldi r0 'A'",
		"ldi r1 '\\n'",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{"ldi", "r0", "65"}, []byte{byte(OP_LDI), 0, 'A'}, ""},
		{2, 3, []string{"ldi", "r1", "10"}, []byte{byte(OP_LDI), 1, '\n'}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_Byte(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		".byte 1 2 0xff",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{".byte", "1", "2", "0xff"}, []byte{1, 2, 255}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_Comments(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"# a whole-line comment",
		"ldi r0 5 ; trailing",
		"hlt # also trailing",
	)
	assert.NoError(err)

	expected := []Statement{
		{2, 0, []string{"ldi", "r0", "5"}, []byte{byte(OP_LDI), 0, 5}, ""},
		{3, 3, []string{"hlt"}, []byte{byte(OP_HLT)}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_CaseAndAliases(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"LDI R0 8",
		"PUSH sp",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{"LDI", "R0", "8"}, []byte{byte(OP_LDI), 0, 8}, ""},
		{2, 3, []string{"PUSH", "sp"}, []byte{byte(OP_PUSH), REG_SP}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_TabSeparated(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"ldi\tr0\t5",
		"\thlt",
	)
	assert.NoError(err)

	expected := []Statement{
		{1, 0, []string{"ldi", "r0", "5"}, []byte{byte(OP_LDI), 0, 5}, ""},
		{2, 3, []string{"hlt"}, []byte{byte(OP_HLT)}, ""},
	}

	stEqual(t, expected, prog.Statements)
}

func TestAssembler_LabelPastEndOfMemory(t *testing.T) {
	assert := assert.New(t)

	// Pad the image so the label lands at address 256. The link pass
	// must reject it instead of truncating the immediate to zero.
	lines := []string{"ldi r0 end"}
	for range 253 {
		lines = append(lines, ".byte 0")
	}
	lines = append(lines, "end: hlt")

	asm := &Assembler{}
	_, err := parseLines(t, asm, lines...)

	var rng ErrLabelRange
	assert.ErrorAs(err, &rng)
	assert.Equal("end", rng.Label)
	assert.Equal(MEMORY_SIZE, rng.Addr)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("START", "9")

	prog, err := parseLines(t, asm,
		"ldi r0 START",
	)
	assert.NoError(err)
	assert.Equal([]byte{byte(OP_LDI), 0, 9}, prog.Statements[0].Bytes)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		lines []string
		want  error
	}){
		{"mnemonic", []string{"frobnicate r0"}, ErrMnemonicInvalid},
		{"missing", []string{"ldi r0"}, ErrOperandMissing},
		{"extra", []string{"add r0 r1 r2"}, ErrOperandExtra},
		{"register", []string{"add r0 5"}, ErrRegisterInvalid},
		{"label", []string{"ldi r0 nowhere"}, ErrLabelMissing("nowhere")},
		{"label_dup", []string{"a: hlt", "a: hlt"}, ErrLabelDuplicate},
		{"equ_dup", []string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate},
		{"equ_syntax", []string{".equ X"}, ErrEquateSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := parseLines(t, asm, entry.lines...)
		assert.ErrorIs(err, entry.want, entry.name)

		var syntax *ErrSyntax
		assert.ErrorAs(err, &syntax, entry.name)
	}
}

func TestAssembler_Lineno(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := parseLines(t, asm,
		"",
		"ldi r0 LINENO",
	)
	assert.NoError(err)
	assert.Equal([]byte{byte(OP_LDI), 0, 2}, prog.Statements[0].Bytes)
}
