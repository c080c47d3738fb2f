package cpu

// AluOp selects an ALU operation.
type AluOp int

const (
	ALU_OP_ADD = AluOp(iota) // add
	ALU_OP_MUL               // mul
	ALU_OP_INC               // inc
	ALU_OP_DEC               // dec
	ALU_OP_CMP               // cmp
)

var aluName = map[AluOp]string{
	ALU_OP_ADD: "ADD",
	ALU_OP_MUL: "MUL",
	ALU_OP_INC: "INC",
	ALU_OP_DEC: "DEC",
	ALU_OP_CMP: "CMP",
}

// String returns the name of the ALU operation.
func (op AluOp) String() string {
	name, ok := aluName[op]
	if !ok {
		return "?"
	}
	return name
}

// alu applies an ALU operation to registers a and b, storing the result
// in register a. Arithmetic wraps modulo 256. CMP stores nothing and
// instead sets exactly one of the three comparison flags. Register b is
// ignored by the unary INC and DEC operations.
//
// An unknown operation is an ErrAluUnsupported dispatch defect, not a
// runtime condition.
func (cpu *Cpu) alu(op AluOp, a byte, b byte) (err error) {
	va, err := cpu.RegRead(a)
	if err != nil {
		return
	}

	var vb byte
	if op == ALU_OP_ADD || op == ALU_OP_MUL || op == ALU_OP_CMP {
		vb, err = cpu.RegRead(b)
		if err != nil {
			return
		}
	}

	switch op {
	case ALU_OP_ADD:
		err = cpu.RegWrite(a, va+vb)
	case ALU_OP_MUL:
		err = cpu.RegWrite(a, va*vb)
	case ALU_OP_INC:
		err = cpu.RegWrite(a, va+1)
	case ALU_OP_DEC:
		err = cpu.RegWrite(a, va-1)
	case ALU_OP_CMP:
		cpu.Flags = Flags{}
		switch {
		case va == vb:
			cpu.Flags.Equal = true
		case va < vb:
			cpu.Flags.Less = true
		default:
			cpu.Flags.Greater = true
		}
	default:
		err = ErrAluUnsupported
	}

	return
}
