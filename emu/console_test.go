package emu

import (
	"testing"

	"snestor/cart"
	"snestor/hw"
	"snestor/hw/hwdefs"
)

// testRom builds a 32KB LoROM cartridge, prog maps cpu addresses in bank 0
// to code.
func testRom(prog map[uint16][]byte) *cart.Rom {
	img := make([]byte, 0x8000)
	for addr, code := range prog {
		copy(img[addr-0x8000:], code)
	}
	return &cart.Rom{
		Header: cart.Header{Mapping: cart.LoROM, Title: "TEST", SRAMSize: 0x800},
		ROM:    img,
	}
}

func powerUp(tb testing.TB, prog map[uint16][]byte) *Console {
	tb.Helper()
	c, err := PowerUp(testRom(prog), DefaultConfig())
	if err != nil {
		tb.Fatal(err)
	}
	return c
}

// Counts NMIs in $000000.
var nmiCounter = map[uint16][]byte{
	0x8000: {
		0x78,             // SEI
		0x18,             // CLC
		0xFB,             // XCE
		0xA9, 0x80,       // LDA #$80
		0x8D, 0x00, 0x42, // STA $4200
		0xCB,             // WAI
		0x80, 0xFD,       // BRA $8008
	},
	0x8100: {
		0xEE, 0x00, 0x00, // INC $0000
		0xAD, 0x10, 0x42, // LDA $4210
		0x40,             // RTI
	},
	0xFFEA: {0x00, 0x81}, // native NMI
	0xFFFC: {0x00, 0x80}, // reset
}

func TestConsoleNMI(t *testing.T) {
	c := powerUp(t, nmiCounter)

	if err := c.Run(3); err != nil {
		t.Fatal(err)
	}
	if got := c.Bus.WRAM[0]; got != 3 {
		t.Errorf("NMI count = %d, want 3", got)
	}
	if c.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", c.Frames())
	}
	if c.CPU.State() != hw.Waiting {
		t.Errorf("CPU state = %s, want waiting", c.CPU.State())
	}
}

func TestConsoleTimerIRQ(t *testing.T) {
	c := powerUp(t, map[uint16][]byte{
		0x8000: {
			0x18, 0xFB,                   // CLC; XCE
			0xA9, 0x0A, 0x8D, 0x09, 0x42, // LDA #$0A; STA $4209
			0x9C, 0x0A, 0x42,             // STZ $420A
			0xA9, 0x20, 0x8D, 0x00, 0x42, // LDA #$20; STA $4200
			0x58,                         // CLI
			0xCB,                         // WAI
			0x80, 0xFD,                   // BRA $8010
		},
		0x8200: {
			0xEE, 0x01, 0x00, // INC $0001
			0xAD, 0x11, 0x42, // LDA $4211
			0x40,             // RTI
		},
		0xFFEE: {0x00, 0x82}, // native IRQ
		0xFFFC: {0x00, 0x80},
	})

	if err := c.Run(2); err != nil {
		t.Fatal(err)
	}
	if got := c.Bus.WRAM[1]; got != 2 {
		t.Errorf("IRQ count = %d, want 2", got)
	}
	if c.CPU.IRQLine() != 0 {
		t.Errorf("IRQ line still asserted: %s", c.CPU.IRQLine())
	}
}

func TestConsoleStop(t *testing.T) {
	c := powerUp(t, map[uint16][]byte{
		0x8000: {0xDB}, // STP
		0xFFFC: {0x00, 0x80},
	})

	// Would never return if STP didn't end the loop.
	if err := c.Run(0); err != nil {
		t.Fatal(err)
	}
	if c.CPU.State() != hw.Stopped {
		t.Errorf("CPU state = %s, want stopped", c.CPU.State())
	}
	if c.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", c.Frames())
	}
}

func TestConsoleReset(t *testing.T) {
	c := powerUp(t, nmiCounter)
	if err := c.Run(2); err != nil {
		t.Fatal(err)
	}
	c.Bus.Write8(0x700000, 0x77)

	c.Reset(hwdefs.SoftReset)
	if c.Bus.WRAM[0] != 2 {
		t.Errorf("soft reset cleared WRAM")
	}

	c.Reset(hwdefs.HardReset)
	if c.Bus.WRAM[0] != 0 {
		t.Errorf("hard reset preserved WRAM")
	}
	if c.Frames() != 0 {
		t.Errorf("hard reset preserved the frame counter")
	}
	if got := c.Bus.Read8(0x700000); got != 0x77 {
		t.Errorf("SRAM = %02X after reset, want 77", got)
	}
	if c.CPU.PC != 0x8000 || !c.CPU.E {
		t.Errorf("CPU not reset: PC=%04X E=%t", c.CPU.PC, c.CPU.E)
	}
}

func TestConsoleSaveLoadState(t *testing.T) {
	c := powerUp(t, nmiCounter)
	if err := c.Run(1); err != nil {
		t.Fatal(err)
	}
	c.Bus.Write8(0x700010, 0x10)

	state := c.SaveState()
	regs := c.CPU.Regs()

	if err := c.Run(2); err != nil {
		t.Fatal(err)
	}
	c.Bus.Write8(0x700010, 0x20)
	if c.Bus.WRAM[0] != 3 {
		t.Fatalf("NMI count = %d, want 3", c.Bus.WRAM[0])
	}

	if err := c.LoadState(state); err != nil {
		t.Fatal(err)
	}
	if c.Bus.WRAM[0] != 1 {
		t.Errorf("NMI count = %d after load, want 1", c.Bus.WRAM[0])
	}
	if got := c.Bus.Read8(0x700010); got != 0x10 {
		t.Errorf("SRAM = %02X after load, want 10", got)
	}
	if c.CPU.Regs() != regs {
		t.Errorf("registers = %+v after load, want %+v", c.CPU.Regs(), regs)
	}

	// Emulation resumes from the restored state.
	if err := c.Run(1); err != nil {
		t.Fatal(err)
	}
	if c.Bus.WRAM[0] != 2 {
		t.Errorf("NMI count = %d, want 2", c.Bus.WRAM[0])
	}
}

func TestConsoleLoadStateErrors(t *testing.T) {
	c := powerUp(t, nmiCounter)
	state := c.SaveState()

	hirom := &cart.Rom{
		Header: cart.Header{Mapping: cart.HiROM, SRAMSize: 0x800},
		ROM:    make([]byte, 0x10000),
	}
	other, err := PowerUp(hirom, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	other.Bus.WRAM[5] = 0x55
	other.Bus.Write8(0x004201, 0x5A) // WRIO
	if err := other.LoadState(state); err == nil {
		t.Errorf("loading a LoROM state into a HiROM console should fail")
	}
	if other.Bus.WRAM[5] != 0x55 {
		t.Errorf("console modified by a failed LoadState")
	}
	if got := other.CPU.IO.WRIO.Value; got != 0x5A {
		t.Errorf("WRIO = %02X after a failed LoadState, want 5A", got)
	}

	if err := c.LoadState([]byte("{not json")); err == nil {
		t.Errorf("LoadState should fail on garbage")
	}
}

func TestPowerUpBadRom(t *testing.T) {
	rom := testRom(nil)
	rom.ROM = rom.ROM[:0x4000]
	if _, err := PowerUp(rom, DefaultConfig()); err == nil {
		t.Errorf("PowerUp should fail with a 16KB LoROM")
	}
}
