package hw

import "fmt"

// DisasmOp is a disassembled instruction.
type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint32
}

func (d DisasmOp) String() string {
	return string(d.Bytes())
}

// operandSize returns the number of operand bytes following the opcode. For
// immediate modes depending on M or X, the current flags are used.
func (c *CPU) operandSize(mode Mode) int {
	switch mode {
	case Implied, Accumulator:
		return 0
	case Immediate8, Direct, DirectX, DirectY, DirectIndirect, DirectIndirectLong,
		DirectIndexedIndirect, DirectIndirectY, DirectIndirectLongY,
		StackRelative, StackRelativeIndirectY, Relative:
		return 1
	case ImmediateM:
		if c.m8() {
			return 1
		}
		return 2
	case ImmediateX:
		if c.x8() {
			return 1
		}
		return 2
	case AbsoluteLong, AbsoluteLongX:
		return 3
	}
	return 2
}

// Disasm disassembles the instruction at pc, without side effects.
func (c *CPU) Disasm(pc uint32) DisasmOp {
	bank := pc & 0xFF0000
	peek := func(i int) uint8 {
		return c.Bus.Peek8(bank | (pc+uint32(i))&0xFFFF)
	}

	opcode := peek(0)
	def := &ops[opcode]
	n := c.operandSize(def.mode)

	op := DisasmOp{
		PC:     pc,
		Opcode: def.name,
		Buf:    make([]byte, 1+n),
	}
	for i := range op.Buf {
		op.Buf[i] = peek(i)
	}

	var v uint32
	for i := n; i >= 1; i-- {
		v = v<<8 | uint32(op.Buf[i])
	}
	next := uint16(pc) + uint16(1+n)

	switch def.mode {
	case Implied:
	case Accumulator:
		op.Oper = "A"
	case Immediate8, ImmediateM, ImmediateX, Immediate16:
		op.Oper = fmt.Sprintf("#$%0*X", 2*n, v)
	case Absolute:
		op.Oper = fmt.Sprintf("$%04X", v)
	case AbsoluteX:
		op.Oper = fmt.Sprintf("$%04X,X", v)
	case AbsoluteY:
		op.Oper = fmt.Sprintf("$%04X,Y", v)
	case AbsoluteLong:
		op.Oper = fmt.Sprintf("$%06X", v)
	case AbsoluteLongX:
		op.Oper = fmt.Sprintf("$%06X,X", v)
	case AbsoluteIndirect:
		op.Oper = fmt.Sprintf("($%04X)", v)
	case AbsoluteIndirectLong:
		op.Oper = fmt.Sprintf("[$%04X]", v)
	case AbsoluteIndexedIndirect:
		op.Oper = fmt.Sprintf("($%04X,X)", v)
	case Direct:
		op.Oper = fmt.Sprintf("$%02X", v)
	case DirectX:
		op.Oper = fmt.Sprintf("$%02X,X", v)
	case DirectY:
		op.Oper = fmt.Sprintf("$%02X,Y", v)
	case DirectIndirect:
		op.Oper = fmt.Sprintf("($%02X)", v)
	case DirectIndirectLong:
		op.Oper = fmt.Sprintf("[$%02X]", v)
	case DirectIndexedIndirect:
		op.Oper = fmt.Sprintf("($%02X,X)", v)
	case DirectIndirectY:
		op.Oper = fmt.Sprintf("($%02X),Y", v)
	case DirectIndirectLongY:
		op.Oper = fmt.Sprintf("[$%02X],Y", v)
	case StackRelative:
		op.Oper = fmt.Sprintf("$%02X,S", v)
	case StackRelativeIndirectY:
		op.Oper = fmt.Sprintf("($%02X,S),Y", v)
	case Relative:
		op.Oper = fmt.Sprintf("$%04X", next+uint16(int8(v)))
	case RelativeLong:
		op.Oper = fmt.Sprintf("$%04X", next+uint16(v))
	case BlockMove:
		// Source bank is the second operand byte.
		op.Oper = fmt.Sprintf("$%02X,$%02X", op.Buf[2], op.Buf[1])
	}
	return op
}

// Bytes returns the string representation of a DisasmOp, this is optimized
// version, suitable for the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 40
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>16))
	hexEncode(buf[2:], byte(d.PC>>8))
	hexEncode(buf[4:], byte(d.PC))
	buf[6] = ' '
	buf[7] = ' '

	off := 8
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 21; off++ {
		buf[off] = ' '
	}

	off += copy(buf[off:], d.Opcode)
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) > totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}
