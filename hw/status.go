package hw

// P is the processor status register.
type P uint8

const (
	Carry     = 1 << iota // C
	Zero                  // Z
	IntDis                // I
	Decimal               // D
	IndexReg8             // X (B in emulation mode)
	AccMem8               // M
	Overflow              // V
	Negative              // N
)

// Break is the emulation mode alias of the X bit, as pushed by BRK.
const Break = IndexReg8

func (p P) String() string {
	const bits = "nvmxdizcNVMXDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}

func (p P) C() bool { return p&Carry != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) I() bool { return p&IntDis != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) X() bool { return p&IndexReg8 != 0 }
func (p P) M() bool { return p&AccMem8 != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) N() bool { return p&Negative != 0 }

func (p *P) setFlags(flags uint8) {
	*p |= P(flags)
}

func (p *P) clearFlags(flags uint8) {
	*p &= ^P(flags)
}

func (p *P) writeFlag(flag uint8, set bool) {
	if set {
		p.setFlags(flag)
	} else {
		p.clearFlags(flag)
	}
}

func (p *P) setC(v bool) { p.writeFlag(Carry, v) }
func (p *P) setV(v bool) { p.writeFlag(Overflow, v) }
func (p *P) setZ(v bool) { p.writeFlag(Zero, v) }

// checkNZ sets N and Z from an 8 or 16-bit result.
func (p *P) checkNZ(v uint16, wide bool) {
	if wide {
		p.writeFlag(Negative, v&0x8000 != 0)
		p.writeFlag(Zero, v == 0)
	} else {
		p.writeFlag(Negative, v&0x80 != 0)
		p.writeFlag(Zero, v&0xFF == 0)
	}
}
