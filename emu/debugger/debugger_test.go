package debugger

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"snestor/hw"
)

// flatCart mirrors a 32KB ROM in the upper half of every bank.
type flatCart struct {
	rom []byte
}

func (c *flatCart) Name() string { return "flat" }

func (c *flatCart) Resolve(addr uint32) hw.Location {
	if off := uint16(addr); off >= 0x8000 {
		return hw.Location{Area: hw.ROM, Offset: int(off - 0x8000)}
	}
	return hw.Location{}
}

func (c *flatCart) Memory(area hw.Area) []byte {
	if area == hw.ROM {
		return c.rom
	}
	return nil
}

// newTestCPU loads prog (keyed by 16-bit address) in ROM and resets the CPU
// with a debugger attached. The reset vector points to $8000, the NMI
// vector to $8100.
func newTestCPU(t *testing.T, prog map[uint16][]byte) (*hw.CPU, *Debugger) {
	t.Helper()

	rom := make([]byte, 0x8000)
	for addr, code := range prog {
		copy(rom[addr-0x8000:], code)
	}
	rom[0x7FFA], rom[0x7FFB] = 0x00, 0x81
	rom[0x7FFC], rom[0x7FFD] = 0x00, 0x80

	bus := hw.NewBus()
	bus.Cart = &flatCart{rom: rom}
	cpu := hw.NewCPU(bus)
	cpu.InitBus(bus)

	dbg := New(cpu, bus)
	cpu.SetDebugger(dbg)
	cpu.Reset(false)
	return cpu, dbg
}

func step(t *testing.T, cpu *hw.CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDebuggerCalls(t *testing.T) {
	cpu, dbg := newTestCPU(t, map[uint16][]byte{
		0x8000: {0x20, 0x10, 0x80},       // JSR $8010
		0x8003: {0xDB},                   // STP
		0x8010: {0x22, 0x20, 0x80, 0x01}, // JSL $018020
		0x8014: {0x60},                   // RTS
		0x8020: {0xEA, 0x6B},             // NOP; RTL (seen in bank $01)
	})

	if got := dbg.ResetPC(); got != 0x008000 {
		t.Fatalf("ResetPC() = %06X, want 008000", got)
	}

	step(t, cpu, 3)
	want := []FrameInfo{
		{"01:8020", "$01:8021"},
		{"00:8010", "$00:8010"},
		{"[bottom of stack]", "$00:8000"},
	}
	if diff := cmp.Diff(want, dbg.CallStack()); diff != "" {
		t.Fatalf("callstack differs (-want +got):\n%s", diff)
	}

	// RTL, then RTS.
	step(t, cpu, 2)
	if dbg.Depth() != 1 {
		t.Fatalf("after RTL: depth = %d, want 1", dbg.Depth())
	}
	if len(dbg.Breaks()) != 0 {
		t.Fatalf("unexpected breaks: %q", dbg.Breaks())
	}

	// Back at the bottom, the CPU executes STP.
	step(t, cpu, 1)
	if dbg.Depth() != 0 {
		t.Fatalf("after RTS: depth = %d, want 0", dbg.Depth())
	}
	if cpu.State() != hw.Stopped {
		t.Fatalf("CPU state = %s, want stopped", cpu.State())
	}
	if diff := cmp.Diff([]string{"STP"}, dbg.Breaks()); diff != "" {
		t.Fatalf("breaks differ (-want +got):\n%s", diff)
	}
}

func TestDebuggerNMI(t *testing.T) {
	cpu, dbg := newTestCPU(t, map[uint16][]byte{
		0x8000: {0xEA, 0xEA}, // NOP; NOP
		0x8100: {0x40},       // RTI
	})

	step(t, cpu, 1)
	cpu.NMI()
	step(t, cpu, 1)

	want := []FrameInfo{
		{"[nmi] $00:8100", "$00:8100"},
		{"[bottom of stack]", "$00:8001"},
	}
	if diff := cmp.Diff(want, dbg.CallStack()); diff != "" {
		t.Fatalf("callstack differs (-want +got):\n%s", diff)
	}

	step(t, cpu, 2)
	if dbg.Depth() != 0 {
		t.Fatalf("after RTI: depth = %d, want 0", dbg.Depth())
	}
	if got := cpu.PC24(); got != 0x008002 {
		t.Fatalf("PC = %06X, want 008002", got)
	}
}

func TestDebuggerNMIAfterCall(t *testing.T) {
	cpu, dbg := newTestCPU(t, map[uint16][]byte{
		0x8000: {0x20, 0x00, 0x90}, // JSR $9000
		0x8003: {0xEA},             // NOP
		0x8100: {0x40},             // RTI
		0x9000: {0xEA, 0x60},       // NOP; RTS
	})

	step(t, cpu, 1)
	cpu.NMI()
	step(t, cpu, 1)
	if dbg.Depth() != 2 {
		t.Fatalf("in NMI handler: depth = %d, want 2", dbg.Depth())
	}
	want := []FrameInfo{
		{"[nmi] $00:8100", "$00:8100"},
		{"00:9000", "$00:9000"},
		{"[bottom of stack]", "$00:8000"},
	}
	if diff := cmp.Diff(want, dbg.CallStack()); diff != "" {
		t.Fatalf("callstack differs (-want +got):\n%s", diff)
	}

	// RTI, then NOP in the subroutine.
	step(t, cpu, 2)
	if dbg.Depth() != 1 {
		t.Fatalf("back in subroutine: depth = %d, want 1", dbg.Depth())
	}
	if got := cpu.PC24(); got != 0x009001 {
		t.Fatalf("PC = %06X, want 009001", got)
	}

	// RTS, then the next instruction.
	step(t, cpu, 2)
	if dbg.Depth() != 0 {
		t.Fatalf("after RTS: depth = %d, want 0", dbg.Depth())
	}
}

func TestDebuggerBRK(t *testing.T) {
	cpu, dbg := newTestCPU(t, map[uint16][]byte{
		0x8000: {0x00, 0x42, 0xEA}, // BRK #$42; NOP
		0x8200: {0x40},             // RTI
		0xFFFE: {0x00, 0x82},       // emulation mode BRK/IRQ vector
	})

	step(t, cpu, 1)
	want := []FrameInfo{
		{"[brk] $00:8200", "$00:8200"},
		{"[bottom of stack]", "$00:8000"},
	}
	if diff := cmp.Diff(want, dbg.CallStack()); diff != "" {
		t.Fatalf("callstack differs (-want +got):\n%s", diff)
	}

	step(t, cpu, 2)
	if dbg.Depth() != 0 {
		t.Fatalf("after RTI: depth = %d, want 0", dbg.Depth())
	}
	if got := cpu.PC24(); got != 0x008003 {
		t.Fatalf("PC = %06X, want 008003", got)
	}
}

func TestDebuggerWatch(t *testing.T) {
	cpu, dbg := newTestCPU(t, map[uint16][]byte{
		0x8000: {0xA9, 0x42}, // LDA #$42
		0x8002: {0x85, 0x10}, // STA $10
		0x8004: {0xA5, 0x10}, // LDA $10
		0x8006: {0xA5, 0x10}, // LDA $10
	})

	if err := dbg.Watch(0x7E0010, OnWrite); err != nil {
		t.Fatal(err)
	}
	if err := dbg.Watch(0x400000, OnRead); err == nil {
		t.Fatal("watching an unmapped address should fail")
	}

	step(t, cpu, 3)
	if got := dbg.Hits(0x7E0010); got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}

	// Through a mirror.
	if err := dbg.Watch(0x800010, OnRead); err != nil {
		t.Fatal(err)
	}
	step(t, cpu, 1)
	if got := dbg.Hits(0x000010); got != 2 {
		t.Fatalf("hits = %d, want 2", got)
	}
}

func TestParseWatch(t *testing.T) {
	tests := []struct {
		s       string
		addr    uint32
		acc     Access
		wantErr bool
	}{
		{s: "7E0010", addr: 0x7E0010, acc: OnRead | OnWrite},
		{s: "$002118:w", addr: 0x002118, acc: OnWrite},
		{s: "0x7f0000:R", addr: 0x7F0000, acc: OnRead},
		{s: "10:rw", addr: 0x000010, acc: OnRead | OnWrite},
		{s: "1000000", wantErr: true},
		{s: "zz", wantErr: true},
		{s: "7E0010:x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			addr, acc, err := ParseWatch(tt.s)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWatch(%q) should fail", tt.s)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if addr != tt.addr || acc != tt.acc {
				t.Errorf("ParseWatch(%q) = %06X, %s; want %06X, %s", tt.s, addr, acc, tt.addr, tt.acc)
			}
		})
	}
}
