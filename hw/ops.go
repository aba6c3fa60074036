package hw

/* loads and stores */

func LDA(c *CPU, op operand) {
	wide := !c.m8()
	v := c.load(op, wide)
	c.setAcc(v)
	c.P.checkNZ(v, wide)
}

func LDX(c *CPU, op operand) {
	wide := !c.x8()
	c.X = c.load(op, wide)
	c.P.checkNZ(c.X, wide)
}

func LDY(c *CPU, op operand) {
	wide := !c.x8()
	c.Y = c.load(op, wide)
	c.P.checkNZ(c.Y, wide)
}

func STA(c *CPU, op operand) { c.store(op, c.A, !c.m8()) }
func STX(c *CPU, op operand) { c.store(op, c.X, !c.x8()) }
func STY(c *CPU, op operand) { c.store(op, c.Y, !c.x8()) }
func STZ(c *CPU, op operand) { c.store(op, 0, !c.m8()) }

/* arithmetic and logic */

func ORA(c *CPU, op operand) {
	wide := !c.m8()
	c.setAcc(c.acc() | c.load(op, wide))
	c.P.checkNZ(c.acc(), wide)
}

func AND(c *CPU, op operand) {
	wide := !c.m8()
	c.setAcc(c.acc() & c.load(op, wide))
	c.P.checkNZ(c.acc(), wide)
}

func EOR(c *CPU, op operand) {
	wide := !c.m8()
	c.setAcc(c.acc() ^ c.load(op, wide))
	c.P.checkNZ(c.acc(), wide)
}

func ADC(c *CPU, op operand) {
	wide := !c.m8()
	c.setAcc(c.add(c.acc(), c.load(op, wide), wide))
}

func SBC(c *CPU, op operand) {
	wide := !c.m8()
	c.setAcc(c.sub(c.acc(), c.load(op, wide), wide))
}

// add computes a+b+C, setting N, V, Z and C.
func (c *CPU) add(a, b uint16, wide bool) uint16 {
	return c.adc(int32(a), int32(b), wide, false)
}

// sub computes a-b-!C, that is a + ^b + C.
func (c *CPU) sub(a, b uint16, wide bool) uint16 {
	return c.adc(int32(a), int32(^b), wide, true)
}

// adc is the adder shared by ADC and SBC. In decimal mode the sum is
// computed one nibble at a time, each nibble being adjusted before carrying
// into the next one. V is taken before the adjustment of the top nibble.
func (c *CPU) adc(x, y int32, wide, sub bool) uint16 {
	nibbles, sign, mask := 2, int32(0x80), int32(0xFF)
	if wide {
		nibbles, sign, mask = 4, 0x8000, 0xFFFF
	}
	y &= mask

	carry := int32(0)
	if c.P.C() {
		carry = 1
	}

	var r int32
	if !c.P.D() {
		r = x + y + carry
		c.P.setV(^(x^y)&(x^r)&sign != 0)
	} else {
		for i := 0; i < nibbles; i++ {
			sh := 4 * i
			low := int32(1)<<sh - 1
			nm := int32(0xF) << sh

			r = x&nm + y&nm + carry<<sh + r&low
			if i == nibbles-1 {
				c.P.setV(^(x^y)&(x^r)&sign != 0)
			}
			if !sub && r > 0x9<<sh|low {
				r += 0x6 << sh
			}
			if sub && r <= 0xF<<sh|low {
				r -= 0x6 << sh
			}
			carry = 0
			if r > 0xF<<sh|low {
				carry = 1
			}
		}
	}

	c.P.setC(r > mask)
	res := uint16(r & mask)
	c.P.checkNZ(res, wide)
	return res
}

func (c *CPU) compare(reg uint16, op operand, wide bool) {
	v := c.load(op, wide)
	if !wide {
		reg &= 0xFF
	}
	c.P.setC(reg >= v)
	c.P.checkNZ(reg-v, wide)
}

func CMP(c *CPU, op operand) { c.compare(c.A, op, !c.m8()) }
func CPX(c *CPU, op operand) { c.compare(c.X, op, !c.x8()) }
func CPY(c *CPU, op operand) { c.compare(c.Y, op, !c.x8()) }

func BIT(c *CPU, op operand) {
	wide := !c.m8()
	v := c.load(op, wide)
	if wide {
		c.P.writeFlag(Negative, v&0x8000 != 0)
		c.P.writeFlag(Overflow, v&0x4000 != 0)
	} else {
		c.P.writeFlag(Negative, v&0x80 != 0)
		c.P.writeFlag(Overflow, v&0x40 != 0)
	}
	c.P.setZ(c.acc()&v == 0)
}

// BITimm only affects Z.
func BITimm(c *CPU, op operand) {
	v := c.load(op, !c.m8())
	c.P.setZ(c.acc()&v == 0)
}

/* read-modify-write */

type modifier func(c *CPU, v uint16, wide bool) uint16

func msb(wide bool) uint16 {
	if wide {
		return 0x8000
	}
	return 0x80
}

func asl(c *CPU, v uint16, wide bool) uint16 {
	c.P.setC(v&msb(wide) != 0)
	v <<= 1
	c.P.checkNZ(v, wide)
	return v
}

func lsr(c *CPU, v uint16, wide bool) uint16 {
	c.P.setC(v&1 != 0)
	v >>= 1
	c.P.checkNZ(v, wide)
	return v
}

func rol(c *CPU, v uint16, wide bool) uint16 {
	carry := uint16(0)
	if c.P.C() {
		carry = 1
	}
	c.P.setC(v&msb(wide) != 0)
	v = v<<1 | carry
	c.P.checkNZ(v, wide)
	return v
}

func ror(c *CPU, v uint16, wide bool) uint16 {
	carry := uint16(0)
	if c.P.C() {
		carry = msb(wide)
	}
	c.P.setC(v&1 != 0)
	v = v>>1 | carry
	c.P.checkNZ(v, wide)
	return v
}

func inc(c *CPU, v uint16, wide bool) uint16 {
	v++
	c.P.checkNZ(v, wide)
	return v
}

func dec(c *CPU, v uint16, wide bool) uint16 {
	v--
	c.P.checkNZ(v, wide)
	return v
}

func tsb(c *CPU, v uint16, wide bool) uint16 {
	c.P.setZ(c.acc()&v == 0)
	return v | c.acc()
}

func trb(c *CPU, v uint16, wide bool) uint16 {
	c.P.setZ(c.acc()&v == 0)
	return v &^ c.acc()
}

// memory returns the memory operand form of a read-modify-write
// instruction.
func memory(f modifier) func(*CPU, operand) {
	return func(c *CPU, op operand) {
		wide := !c.m8()
		v := c.load(op, wide)
		c.idle()
		c.store(op, f(c, v, wide), wide)
	}
}

// accumulator returns the accumulator form of a read-modify-write
// instruction.
func accumulator(f modifier) func(*CPU, operand) {
	return func(c *CPU, _ operand) {
		c.setAcc(f(c, c.acc(), !c.m8()))
	}
}

var (
	ASL = memory(asl)
	LSR = memory(lsr)
	ROL = memory(rol)
	ROR = memory(ror)
	INC = memory(inc)
	DEC = memory(dec)
	TSB = memory(tsb)
	TRB = memory(trb)

	ASLacc = accumulator(asl)
	LSRacc = accumulator(lsr)
	ROLacc = accumulator(rol)
	RORacc = accumulator(ror)
	INCacc = accumulator(inc)
	DECacc = accumulator(dec)
)

func INX(c *CPU, _ operand) {
	c.X = c.index(c.X + 1)
	c.P.checkNZ(c.X, !c.x8())
}

func INY(c *CPU, _ operand) {
	c.Y = c.index(c.Y + 1)
	c.P.checkNZ(c.Y, !c.x8())
}

func DEX(c *CPU, _ operand) {
	c.X = c.index(c.X - 1)
	c.P.checkNZ(c.X, !c.x8())
}

func DEY(c *CPU, _ operand) {
	c.Y = c.index(c.Y - 1)
	c.P.checkNZ(c.Y, !c.x8())
}

/* transfers */

func TAX(c *CPU, _ operand) {
	c.X = c.index(c.A)
	c.P.checkNZ(c.X, !c.x8())
}

func TAY(c *CPU, _ operand) {
	c.Y = c.index(c.A)
	c.P.checkNZ(c.Y, !c.x8())
}

func TXA(c *CPU, _ operand) {
	c.setAcc(c.X)
	c.P.checkNZ(c.acc(), !c.m8())
}

func TYA(c *CPU, _ operand) {
	c.setAcc(c.Y)
	c.P.checkNZ(c.acc(), !c.m8())
}

func TXY(c *CPU, _ operand) {
	c.Y = c.X
	c.P.checkNZ(c.Y, !c.x8())
}

func TYX(c *CPU, _ operand) {
	c.X = c.Y
	c.P.checkNZ(c.X, !c.x8())
}

func TSX(c *CPU, _ operand) {
	c.X = c.index(c.S)
	c.P.checkNZ(c.X, !c.x8())
}

func TXS(c *CPU, _ operand) { c.setS(c.X) }

func TCD(c *CPU, _ operand) {
	c.D = c.A
	c.P.checkNZ(c.D, true)
}

func TDC(c *CPU, _ operand) {
	c.A = c.D
	c.P.checkNZ(c.A, true)
}

func TCS(c *CPU, _ operand) { c.setS(c.A) }

func TSC(c *CPU, _ operand) {
	c.A = c.S
	c.P.checkNZ(c.A, true)
}

// XBA exchanges the two halves of the 16-bit accumulator.
func XBA(c *CPU, _ operand) {
	c.idle()
	c.A = c.A<<8 | c.A>>8
	c.P.checkNZ(c.A, false)
}

/* status register */

func CLC(c *CPU, _ operand) { c.P.clearFlags(Carry) }
func SEC(c *CPU, _ operand) { c.P.setFlags(Carry) }
func CLI(c *CPU, _ operand) { c.P.clearFlags(IntDis) }
func SEI(c *CPU, _ operand) { c.P.setFlags(IntDis) }
func CLD(c *CPU, _ operand) { c.P.clearFlags(Decimal) }
func SED(c *CPU, _ operand) { c.P.setFlags(Decimal) }
func CLV(c *CPU, _ operand) { c.P.clearFlags(Overflow) }

func REP(c *CPU, op operand) {
	v := c.load(op, false)
	c.idle()
	c.setP(c.P &^ P(v))
}

func SEP(c *CPU, op operand) {
	v := c.load(op, false)
	c.idle()
	c.setP(c.P | P(v))
}

// XCE exchanges the carry and emulation flags.
func XCE(c *CPU, _ operand) {
	carry := c.P.C()
	c.P.setC(c.E)
	c.setE(carry)
}

/* stack */

func PHA(c *CPU, _ operand) {
	if c.m8() {
		c.push8(uint8(c.A))
	} else {
		c.push16(c.A)
	}
}

func PHX(c *CPU, _ operand) {
	if c.x8() {
		c.push8(uint8(c.X))
	} else {
		c.push16(c.X)
	}
}

func PHY(c *CPU, _ operand) {
	if c.x8() {
		c.push8(uint8(c.Y))
	} else {
		c.push16(c.Y)
	}
}

func PLA(c *CPU, _ operand) {
	c.idle()
	if c.m8() {
		c.setAcc(uint16(c.pull8()))
	} else {
		c.A = c.pull16()
	}
	c.P.checkNZ(c.acc(), !c.m8())
}

func PLX(c *CPU, _ operand) {
	c.idle()
	if c.x8() {
		c.X = uint16(c.pull8())
	} else {
		c.X = c.pull16()
	}
	c.P.checkNZ(c.X, !c.x8())
}

func PLY(c *CPU, _ operand) {
	c.idle()
	if c.x8() {
		c.Y = uint16(c.pull8())
	} else {
		c.Y = c.pull16()
	}
	c.P.checkNZ(c.Y, !c.x8())
}

// PHP pushes P. In emulation mode bits 4 and 5 read as set.
func PHP(c *CPU, _ operand) {
	p := c.P
	if c.E {
		p |= Break | 0x20
	}
	c.push8(uint8(p))
}

func PLP(c *CPU, _ operand) {
	c.idle()
	c.setP(P(c.pull8()))
}

func PHB(c *CPU, _ operand) { c.push8(c.DB) }
func PHK(c *CPU, _ operand) { c.push8(c.PB) }
func PHD(c *CPU, _ operand) {
	c.pushN16(c.D)
	c.fixS()
}

func PLB(c *CPU, _ operand) {
	c.idle()
	c.DB = c.pull8()
	c.P.checkNZ(uint16(c.DB), false)
}

func PLD(c *CPU, _ operand) {
	c.idle()
	c.D = c.pullN16()
	c.fixS()
	c.P.checkNZ(c.D, true)
}

// PEA pushes its 16-bit immediate operand.
func PEA(c *CPU, op operand) {
	c.pushN16(c.load(op, true))
	c.fixS()
}

// PEI pushes the 16-bit pointer found in the direct page.
func PEI(c *CPU, op operand) {
	c.pushN16(uint16(op.addr))
	c.fixS()
}

// PER pushes a PC relative address.
func PER(c *CPU, op operand) {
	c.idle()
	c.pushN16(uint16(op.addr))
	c.fixS()
}

/* control flow */

func (c *CPU) branch(target uint16) {
	c.idle()
	if c.E && target&0xFF00 != c.PC&0xFF00 {
		c.idle()
	}
	c.PC = target
}

func branchIf(flag P, set bool) func(*CPU, operand) {
	return func(c *CPU, op operand) {
		if (c.P&flag != 0) == set {
			c.branch(uint16(op.addr))
		}
	}
}

var (
	BPL = branchIf(Negative, false)
	BMI = branchIf(Negative, true)
	BVC = branchIf(Overflow, false)
	BVS = branchIf(Overflow, true)
	BCC = branchIf(Carry, false)
	BCS = branchIf(Carry, true)
	BNE = branchIf(Zero, false)
	BEQ = branchIf(Zero, true)
)

func BRA(c *CPU, op operand) { c.branch(uint16(op.addr)) }

func BRL(c *CPU, op operand) {
	c.idle()
	c.PC = uint16(op.addr)
}

func JMP(c *CPU, op operand) { c.PC = uint16(op.addr) }

func JML(c *CPU, op operand) {
	c.PB = uint8(op.addr >> 16)
	c.PC = uint16(op.addr)
}

// JSR pushes the address of the last byte of the instruction.
func JSR(c *CPU, op operand) {
	c.idle()
	c.push16(c.PC - 1)
	c.PC = uint16(op.addr)
}

// JSRind is JSR (a,X), the resolver already spent the internal cycle.
func JSRind(c *CPU, op operand) {
	c.pushN16(c.PC - 1)
	c.fixS()
	c.PC = uint16(op.addr)
}

func JSL(c *CPU, op operand) {
	c.pushN(c.PB)
	c.idle()
	c.pushN16(c.PC - 1)
	c.fixS()
	c.PB = uint8(op.addr >> 16)
	c.PC = uint16(op.addr)
}

func RTS(c *CPU, _ operand) {
	c.idle()
	c.PC = c.pull16() + 1
	c.idle()
}

func RTL(c *CPU, _ operand) {
	c.idle()
	pc := c.pullN16()
	c.PB = c.pullN()
	c.fixS()
	c.PC = pc + 1
}

func RTI(c *CPU, _ operand) {
	c.idle()
	c.setP(P(c.pull8()))
	c.PC = c.pull16()
	if !c.E {
		c.PB = c.pull8()
	}
}

// BRK and COP have a signature byte, skipped by the resolver.
func BRK(c *CPU, _ operand) {
	prevpc := c.PC24()
	c.interrupt(brkVector, true)
	c.dbg.Interrupt(prevpc, c.PC24(), false)
}

func COP(c *CPU, _ operand) {
	prevpc := c.PC24()
	c.interrupt(copVector, false)
	c.dbg.Interrupt(prevpc, c.PC24(), false)
}

func WAI(c *CPU, _ operand) {
	c.idle()
	c.state = Waiting
}

func STP(c *CPU, _ operand) {
	c.idle()
	c.state = Stopped
	c.dbg.Break("STP")
}

func NOP(c *CPU, _ operand) {}

// WDM is reserved for future expansion, it behaves like a 2-byte NOP.
func WDM(c *CPU, _ operand) {}

/* block moves */

// MVN and MVP copy A+1 bytes from src:X to dst:Y, and leave DB set to the
// destination bank. The whole move runs as one instruction, each byte after
// the first is charged the 3 cycles of the opcode and operands refetch.
func blockMove(step uint16) func(*CPU, operand) {
	return func(c *CPU, op operand) {
		dst, src := uint8(op.addr>>8), uint8(op.addr)
		c.DB = dst
		for first := true; ; first = false {
			if !first {
				c.idle()
				c.idle()
				c.idle()
			}
			v := c.read8(uint32(src)<<16 | uint32(c.X))
			c.write8(uint32(dst)<<16|uint32(c.Y), v)
			c.idle()
			c.idle()
			c.X = c.index(c.X + step)
			c.Y = c.index(c.Y + step)
			c.A--
			if c.A == 0xFFFF {
				break
			}
		}
	}
}

var (
	MVN = blockMove(1)
	MVP = blockMove(0xFFFF)
)
