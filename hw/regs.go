package hw

// Register widths depend on M/X, and on E which forces both to 8 bits.

func (c *CPU) m8() bool { return c.E || c.P.M() }
func (c *CPU) x8() bool { return c.E || c.P.X() }

// AccWidth returns the current accumulator/memory width, in bits.
func (c *CPU) AccWidth() int {
	if c.m8() {
		return 8
	}
	return 16
}

// IndexWidth returns the current width of X and Y, in bits.
func (c *CPU) IndexWidth() int {
	if c.x8() {
		return 8
	}
	return 16
}

// setP writes the status register. In emulation mode M and X are forced
// set. Whenever X ends up set, the high bytes of the index registers are
// cleared.
func (c *CPU) setP(p P) {
	if c.E {
		p |= AccMem8 | IndexReg8
	}
	c.P = p
	if p.X() {
		c.X &= 0xFF
		c.Y &= 0xFF
	}
}

// setE switches between emulation and native mode.
func (c *CPU) setE(e bool) {
	c.E = e
	if e {
		c.S = 0x0100 | c.S&0xFF
	}
	c.setP(c.P)
}

// SetP writes the status register, enforcing width invariants.
func (c *CPU) SetP(p P) { c.setP(p) }

// SetE sets the emulation mode flag, enforcing width invariants.
func (c *CPU) SetE(e bool) { c.setE(e) }

// acc returns A at the current accumulator width.
func (c *CPU) acc() uint16 {
	if c.m8() {
		return c.A & 0xFF
	}
	return c.A
}

// setAcc writes A at the current accumulator width. In 8-bit mode, the
// hidden high byte (B) is preserved.
func (c *CPU) setAcc(v uint16) {
	if c.m8() {
		c.A = c.A&0xFF00 | v&0xFF
	} else {
		c.A = v
	}
}

// index truncates v to the current index width.
func (c *CPU) index(v uint16) uint16 {
	if c.x8() {
		return v & 0xFF
	}
	return v
}

// setS writes the stack pointer, keeping it in page 1 in emulation mode.
func (c *CPU) setS(v uint16) {
	if c.E {
		v = 0x0100 | v&0xFF
	}
	c.S = v
}

// Regs is a copy of the CPU registers.
type Regs struct {
	A, X, Y uint16
	S, D    uint16
	PC      uint16
	DB, PB  uint8
	P       P
	E       bool
	Cycles  int64
}

func (c *CPU) snapshotRegs() Regs {
	return Regs{
		A: c.A, X: c.X, Y: c.Y,
		S: c.S, D: c.D,
		PC: c.PC,
		DB: c.DB, PB: c.PB,
		P:      c.P,
		E:      c.E,
		Cycles: c.Cycles,
	}
}

// Regs returns a copy of the CPU registers.
func (c *CPU) Regs() Regs { return c.snapshotRegs() }

// SetRegs loads all registers at once. Width invariants are enforced after
// loading, so that X and Y get truncated if needed.
func (c *CPU) SetRegs(r Regs) {
	c.A, c.X, c.Y = r.A, r.X, r.Y
	c.D = r.D
	c.PC = r.PC
	c.DB, c.PB = r.DB, r.PB
	c.E = r.E
	c.S = r.S
	c.Cycles = r.Cycles
	c.setE(r.E)
	c.setP(r.P)
}
