package hw

// Mode is an addressing mode.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate8  // fixed 8-bit: REP, SEP, BRK/COP signature, WDM
	Immediate16 // fixed 16-bit: PEA
	ImmediateM  // accumulator width
	ImmediateX  // index width
	Absolute
	AbsoluteX
	AbsoluteY
	AbsoluteLong
	AbsoluteLongX
	AbsoluteIndirect        // (a)
	AbsoluteIndirectLong    // [a]
	AbsoluteIndexedIndirect // (a,X)
	Direct
	DirectX
	DirectY
	DirectIndirect        // (d)
	DirectIndirectLong    // [d]
	DirectIndexedIndirect // (d,X)
	DirectIndirectY       // (d),Y
	DirectIndirectLongY   // [d],Y
	StackRelative         // d,S
	StackRelativeIndirectY
	Relative
	RelativeLong
	BlockMove

	numModes
)

// access tells how an instruction uses its operand, some modes spend an
// extra cycle for writes.
type access uint8

const (
	none access = iota
	rd
	wr
	rmw
)

// operand is the effective address computed by a resolver.
type operand struct {
	addr uint32
	// wrap is set when multi-byte accesses wrap inside the bank of addr
	// rather than carrying into the next bank (direct page, stack and
	// immediate operands).
	wrap bool
}

// at returns the address of the i-th byte of the operand.
func (op operand) at(i uint32) uint32 {
	if op.wrap {
		return op.addr&0xFF0000 | uint32(uint16(op.addr)+uint16(i))
	}
	return (op.addr + i) & 0xFFFFFF
}

func (c *CPU) resolve(mode Mode, acc access) operand {
	switch mode {
	case Implied, Accumulator:
		c.idle()
		return operand{}
	case Immediate8:
		return c.immediate(1)
	case Immediate16:
		return c.immediate(2)
	case ImmediateM:
		if c.m8() {
			return c.immediate(1)
		}
		return c.immediate(2)
	case ImmediateX:
		if c.x8() {
			return c.immediate(1)
		}
		return c.immediate(2)

	case Absolute:
		return operand{addr: c.dbank() | uint32(c.fetch16())}
	case AbsoluteX:
		return c.indexed(c.dbank()|uint32(c.fetch16()), c.X, acc)
	case AbsoluteY:
		return c.indexed(c.dbank()|uint32(c.fetch16()), c.Y, acc)
	case AbsoluteLong:
		return operand{addr: c.fetch24()}
	case AbsoluteLongX:
		return operand{addr: (c.fetch24() + uint32(c.X)) & 0xFFFFFF}
	case AbsoluteIndirect:
		ptr := c.fetch16()
		lo := c.read8(uint32(ptr))
		hi := c.read8(uint32(ptr + 1))
		return operand{addr: uint32(c.PB)<<16 | uint32(hi)<<8 | uint32(lo)}
	case AbsoluteIndirectLong:
		ptr := c.fetch16()
		lo := c.read8(uint32(ptr))
		mid := c.read8(uint32(ptr + 1))
		hi := c.read8(uint32(ptr + 2))
		return operand{addr: uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)}
	case AbsoluteIndexedIndirect:
		ptr := c.fetch16() + c.X
		c.idle()
		pb := uint32(c.PB) << 16
		lo := c.read8(pb | uint32(ptr))
		hi := c.read8(pb | uint32(ptr+1))
		return operand{addr: pb | uint32(hi)<<8 | uint32(lo)}

	case Direct:
		return operand{addr: uint32(c.direct(0)), wrap: true}
	case DirectX:
		return operand{addr: uint32(c.directIndexed(c.X)), wrap: true}
	case DirectY:
		return operand{addr: uint32(c.directIndexed(c.Y)), wrap: true}
	case DirectIndirect:
		ptr := c.readDirectPtr(c.direct(0))
		return operand{addr: c.dbank() | uint32(ptr)}
	case DirectIndirectLong:
		return operand{addr: c.readLongPtr(c.direct(0))}
	case DirectIndexedIndirect:
		ptr := c.readDirectPtr(c.directIndexed(c.X))
		return operand{addr: c.dbank() | uint32(ptr)}
	case DirectIndirectY:
		ptr := c.readDirectPtr(c.direct(0))
		return c.indexed(c.dbank()|uint32(ptr), c.Y, acc)
	case DirectIndirectLongY:
		ptr := c.readLongPtr(c.direct(0))
		return operand{addr: (ptr + uint32(c.Y)) & 0xFFFFFF}

	case StackRelative:
		off := c.fetch8()
		c.idle()
		return operand{addr: uint32(c.S + uint16(off)), wrap: true}
	case StackRelativeIndirectY:
		off := c.fetch8()
		c.idle()
		a := c.S + uint16(off)
		lo := c.read8(uint32(a))
		hi := c.read8(uint32(a + 1))
		c.idle()
		ptr := c.dbank() | uint32(hi)<<8 | uint32(lo)
		return operand{addr: (ptr + uint32(c.Y)) & 0xFFFFFF}

	case Relative:
		disp := int8(c.fetch8())
		return operand{addr: uint32(c.PB)<<16 | uint32(c.PC+uint16(disp))}
	case RelativeLong:
		disp := c.fetch16()
		return operand{addr: uint32(c.PB)<<16 | uint32(c.PC+disp)}

	case BlockMove:
		dst := c.fetch8()
		src := c.fetch8()
		return operand{addr: uint32(dst)<<8 | uint32(src)}
	}
	panic("unreachable")
}

func (c *CPU) dbank() uint32 { return uint32(c.DB) << 16 }

// immediate returns the address of an n-byte immediate operand and skips it.
func (c *CPU) immediate(n uint16) operand {
	op := operand{addr: c.PC24(), wrap: true}
	c.PC += n
	return op
}

// indexed adds an index register to a base address. Reads spend an extra
// cycle when crossing a page or when using 16-bit index registers, writes
// always do.
func (c *CPU) indexed(base uint32, idx uint16, acc access) operand {
	ea := (base + uint32(idx)) & 0xFFFFFF
	if !c.x8() || acc != rd || (base^ea)&0xFFFF00 != 0 {
		c.idle()
	}
	return operand{addr: ea}
}

// direct returns a direct page address. A direct page register that is not
// page aligned costs an extra cycle.
func (c *CPU) direct(idx uint16) uint16 {
	off := c.fetch8()
	if c.D&0xFF != 0 {
		c.idle()
	}
	return c.D + uint16(off) + idx
}

// directIndexed is d,X and d,Y. In emulation mode with a page aligned direct
// page, indexing wraps inside the page.
func (c *CPU) directIndexed(idx uint16) uint16 {
	off := c.fetch8()
	if c.D&0xFF != 0 {
		c.idle()
	}
	c.idle()
	if c.E && c.D&0xFF == 0 {
		return c.D | uint16(off+uint8(idx))
	}
	return c.D + uint16(off) + idx
}

// readDirectPtr reads a 16-bit pointer from the direct page, with 6502 page
// wrapping in emulation mode.
func (c *CPU) readDirectPtr(a uint16) uint16 {
	lo := c.read8(uint32(a))
	next := a + 1
	if c.E && c.D&0xFF == 0 {
		next = a&0xFF00 | uint16(uint8(a)+1)
	}
	hi := c.read8(uint32(next))
	return uint16(hi)<<8 | uint16(lo)
}

// readLongPtr reads a 24-bit pointer from the direct page.
func (c *CPU) readLongPtr(a uint16) uint32 {
	lo := c.read8(uint32(a))
	mid := c.read8(uint32(a + 1))
	hi := c.read8(uint32(a + 2))
	return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
}
