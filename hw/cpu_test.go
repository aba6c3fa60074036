package hw

import (
	"errors"
	"testing"

	"snestor/hw/hwdefs"
)

func TestPflags(t *testing.T) {
	var p P
	p.setFlags(IntDis | AccMem8 | IndexReg8)
	if p != 0x34 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x34))
	}

	p.checkNZ(0x80, false)
	if !p.N() || p.Z() {
		t.Errorf("8-bit 0x80: got %s", p)
	}
	p.checkNZ(0x0100, false)
	if p.N() || !p.Z() {
		t.Errorf("8-bit 0x100 should only consider the low byte: got %s", p)
	}
	p.checkNZ(0x8000, true)
	if !p.N() || p.Z() {
		t.Errorf("16-bit 0x8000: got %s", p)
	}
	p.checkNZ(0x0080, true)
	if p.N() || p.Z() {
		t.Errorf("16-bit 0x0080: got %s", p)
	}
}

func TestPString(t *testing.T) {
	p := P(0b00110100)
	if got := p.String(); got != "nvMXdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvMXdIzc")
	}
	p = P(0b11001011)
	if got := p.String(); got != "NVmxDiZC" {
		t.Errorf("got P = %s, want %s", got, "NVmxDiZC")
	}
}

func TestReset(t *testing.T) {
	cpu, _ := loadCPUWith(t, ``)

	wantRegs(t, cpu, Regs{
		S:  0x01FD,
		PC: 0x8000,
		P:  AccMem8 | IndexReg8 | IntDis,
		E:  true,
	})
	if cpu.AccWidth() != 8 || cpu.IndexWidth() != 8 {
		t.Errorf("widths = %d/%d, want 8/8", cpu.AccWidth(), cpu.IndexWidth())
	}
	if cpu.State() != Fetching {
		t.Errorf("state = %s, want %s", cpu.State(), Fetching)
	}
}

func TestSoftReset(t *testing.T) {
	cpu, _ := loadCPUWith(t, ``)
	native(cpu)
	cpu.A, cpu.X, cpu.Y = 0x1234, 0x5678, 0x9ABC
	cpu.S = 0x1FF0
	cpu.D = 0x4300
	cpu.P |= Decimal

	cpu.Reset(hwdefs.SoftReset)

	wantRegs(t, cpu, Regs{
		A: 0x1234, X: 0x78, Y: 0xBC,
		S:  0x01ED,
		PC: 0x8000,
		P:  AccMem8 | IndexReg8 | IntDis,
		E:  true,
	})
}

func TestEmulationForcesWidths(t *testing.T) {
	// SEC
	// XCE
	cpu, _ := loadCPUWith(t, `008000: 38 fb`)
	native(cpu)
	cpu.X, cpu.Y = 0x1234, 0xABCD
	cpu.S = 0x1FF0

	stepN(t, cpu, 2)

	if !cpu.E {
		t.Fatalf("E = false, want true")
	}
	if cpu.P.C() {
		t.Errorf("C = true, want previous E (false)")
	}
	if !cpu.P.M() || !cpu.P.X() {
		t.Errorf("P = %s, M and X should be forced", cpu.P)
	}
	if cpu.X != 0x34 || cpu.Y != 0xCD {
		t.Errorf("X,Y = %04X,%04X want 0034,00CD", cpu.X, cpu.Y)
	}
	if cpu.S != 0x01F0 {
		t.Errorf("S = %04X want 01F0", cpu.S)
	}

	// In emulation mode, REP can't clear M and X.
	cpu.SetP(0)
	if !cpu.P.M() || !cpu.P.X() {
		t.Errorf("P = %s, M and X should be forced", cpu.P)
	}
}

func TestIndexTruncation(t *testing.T) {
	// SEP #$10
	// REP #$10
	cpu, _ := loadCPUWith(t, `008000: e2 10 c2 10`)
	native(cpu)
	cpu.X, cpu.Y = 0x1234, 0xABCD

	stepN(t, cpu, 1)
	if cpu.X != 0x34 || cpu.Y != 0xCD {
		t.Errorf("after SEP: X,Y = %04X,%04X want 0034,00CD", cpu.X, cpu.Y)
	}
	stepN(t, cpu, 1)
	if cpu.X != 0x34 || cpu.Y != 0xCD {
		t.Errorf("after REP: X,Y = %04X,%04X want 0034,00CD", cpu.X, cpu.Y)
	}
	if cpu.IndexWidth() != 16 {
		t.Errorf("IndexWidth = %d want 16", cpu.IndexWidth())
	}
}

func TestBreakEmulation(t *testing.T) {
	// BRK #$EA
	cpu, mem := loadCPUWith(t, `
008000: 00 ea
00fffe: 00 90`)
	cpu.P |= Decimal

	stepN(t, cpu, 1)

	wantRegs(t, cpu, Regs{
		S:  0x01FA,
		PC: 0x9000,
		P:  AccMem8 | IndexReg8 | IntDis,
		E:  true,
	})
	wantMem8(t, mem, 0x01FD, 0x80)
	wantMem8(t, mem, 0x01FC, 0x02)
	wantMem8(t, mem, 0x01FB, 0x3C) // B and D set
}

func TestBreakNative(t *testing.T) {
	// BRK #$EA
	// ...
	// RTI
	cpu, mem := loadCPUWith(t, `
008000: 00 ea
00ffe6: 00 a0
00a000: 40`)
	native(cpu)
	cpu.P = IntDis | Carry

	stepN(t, cpu, 1)

	wantRegs(t, cpu, Regs{
		S:  0x01F9,
		PC: 0xA000,
		P:  IntDis | Carry,
	})
	wantMem8(t, mem, 0x01FD, 0x00) // PB
	wantMem8(t, mem, 0x01FC, 0x80)
	wantMem8(t, mem, 0x01FB, 0x02)
	wantMem8(t, mem, 0x01FA, 0x05)

	stepN(t, cpu, 1)

	wantRegs(t, cpu, Regs{
		S:  0x01FD,
		PC: 0x8002,
		P:  IntDis | Carry,
	})
}

func TestCOP(t *testing.T) {
	cpu, _ := loadCPUWith(t, `
008000: 02 00
00fff4: 00 b0
00ffe4: 00 c0`)

	stepN(t, cpu, 1)
	if cpu.PC != 0xB000 {
		t.Errorf("emulation COP: PC = %04X want B000", cpu.PC)
	}

	cpu.Reset(false)
	native(cpu)
	stepN(t, cpu, 1)
	if cpu.PC != 0xC000 {
		t.Errorf("native COP: PC = %04X want C000", cpu.PC)
	}
}

func TestNMI(t *testing.T) {
	cpu, mem := loadCPUWith(t, `
008000: ea
00fffa: 00 90
00ffea: 00 a0`)

	cpu.NMI()
	stepN(t, cpu, 1)
	if cpu.PC != 0x9000 {
		t.Fatalf("PC = %04X want 9000", cpu.PC)
	}
	wantMem8(t, mem, 0x01FB, 0x24) // B clear

	cpu.Reset(false)
	native(cpu)
	cpu.PB = 0x12
	cpu.PC = 0x3456
	cpu.NMI()
	stepN(t, cpu, 1)
	if cpu.PC24() != 0x00A000 {
		t.Fatalf("PC = %06X want 00A000", cpu.PC24())
	}
	wantMem8(t, mem, 0x01FD, 0x12)
	wantMem8(t, mem, 0x01FC, 0x34)
	wantMem8(t, mem, 0x01FB, 0x56)
}

func TestAbort(t *testing.T) {
	cpu, mem := loadCPUWith(t, `
008000: ea
00fff8: 00 90
00fffa: 00 a0`)

	stepN(t, cpu, 1)
	cpu.Abort()
	cpu.NMI()

	// ABORT is serviced before a pending NMI.
	stepN(t, cpu, 1)
	if cpu.PC != 0x9000 {
		t.Fatalf("PC = %04X want 9000", cpu.PC)
	}
	if !cpu.P.I() {
		t.Errorf("I should be set on ABORT entry")
	}
	wantMem8(t, mem, 0x01FD, 0x80)
	wantMem8(t, mem, 0x01FC, 0x01)

	stepN(t, cpu, 1)
	if cpu.PC != 0xA000 {
		t.Fatalf("PC = %04X want A000", cpu.PC)
	}
}

func TestIRQ(t *testing.T) {
	// NOP
	// NOP
	cpu, _ := loadCPUWith(t, `
008000: ea ea
00fffe: 00 90`)

	cpu.SetIRQSource(hwdefs.External)
	stepN(t, cpu, 1)
	if cpu.PC != 0x8001 {
		t.Fatalf("IRQ with I set: PC = %04X want 8001", cpu.PC)
	}

	cpu.P &^= IntDis
	stepN(t, cpu, 1)
	if cpu.PC != 0x9000 {
		t.Fatalf("PC = %04X want 9000", cpu.PC)
	}
	if !cpu.P.I() {
		t.Errorf("I should be set on IRQ entry")
	}
	cpu.ClearIRQSource(hwdefs.External)
	if cpu.IRQLine() != 0 {
		t.Errorf("IRQLine = %s want none", cpu.IRQLine())
	}
}

func TestWAI(t *testing.T) {
	// WAI
	// NOP
	cpu, _ := loadCPUWith(t, `008000: cb ea`)

	stepN(t, cpu, 1)
	if cpu.State() != Waiting {
		t.Fatalf("state = %s want %s", cpu.State(), Waiting)
	}
	stepN(t, cpu, 10)
	if cpu.State() != Waiting || cpu.PC != 0x8001 {
		t.Fatalf("state = %s PC = %04X, want waiting at 8001", cpu.State(), cpu.PC)
	}

	// Interrupts are disabled, execution resumes without entering the
	// handler.
	cpu.SetIRQSource(hwdefs.External)
	stepN(t, cpu, 1)
	if cpu.State() != Fetching || cpu.PC != 0x8002 {
		t.Fatalf("state = %s PC = %04X, want fetching at 8002", cpu.State(), cpu.PC)
	}
}

func TestSTP(t *testing.T) {
	cpu, _ := loadCPUWith(t, `008000: db ea`)

	if err := cpu.Run(100); err != nil {
		t.Fatal(err)
	}
	if cpu.State() != Stopped || cpu.PC != 0x8001 {
		t.Fatalf("state = %s PC = %04X, want stopped at 8001", cpu.State(), cpu.PC)
	}

	cpu.NMI()
	stepN(t, cpu, 5)
	if cpu.State() != Stopped || cpu.PC != 0x8001 {
		t.Fatalf("NMI shouldn't wake a stopped CPU")
	}

	cpu.Reset(hwdefs.HardReset)
	if cpu.State() != Fetching || cpu.PC != 0x8000 {
		t.Fatalf("state = %s PC = %04X, want fetching at 8000", cpu.State(), cpu.PC)
	}
}

func TestUnknownOpcode(t *testing.T) {
	saved := ops[0xEA]
	ops[0xEA].exec = nil
	defer func() { ops[0xEA] = saved }()

	cpu, _ := loadCPUWith(t, `008000: ea`)
	err := cpu.Step()

	var uerr *UnknownOpcodeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Step() = %v, want *UnknownOpcodeError", err)
	}
	if uerr.Opcode != 0xEA || uerr.PC != 0x008000 {
		t.Errorf("got %+v", uerr)
	}
}

func TestStackWrapsInPage1(t *testing.T) {
	// PHA
	// PLA
	cpu, mem := loadCPUWith(t, `008000: 48 68`)
	cpu.S = 0x0100
	cpu.A = 0x5A

	stepN(t, cpu, 1)
	if cpu.S != 0x01FF {
		t.Errorf("S = %04X want 01FF", cpu.S)
	}
	wantMem8(t, mem, 0x0100, 0x5A)

	cpu.A = 0
	stepN(t, cpu, 1)
	if cpu.S != 0x0100 || cpu.A != 0x5A {
		t.Errorf("S = %04X A = %04X, want 0100 and 005A", cpu.S, cpu.A)
	}
}

func TestStackNewInstructionsEmulation(t *testing.T) {
	// PEA $1234
	// PLD
	cpu, mem := loadCPUWith(t, `
008000: f4 34 12 2b
000200: 78 56`)
	cpu.S = 0x0100

	stepN(t, cpu, 1)
	wantMem8(t, mem, 0x0100, 0x12)
	wantMem8(t, mem, 0x00FF, 0x34)
	if cpu.S != 0x01FE {
		t.Errorf("S = %04X want 01FE", cpu.S)
	}

	cpu.S = 0x01FF
	stepN(t, cpu, 1)
	if cpu.D != 0x5678 {
		t.Errorf("D = %04X want 5678", cpu.D)
	}
	if cpu.S != 0x0101 {
		t.Errorf("S = %04X want 0101", cpu.S)
	}
}
