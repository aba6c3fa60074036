package hw

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"snestor/hw/hwdefs"
	"snestor/hw/snapshot"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cpu, bus := newTestConsole(t)

	cpu.A, cpu.X, cpu.Y = 0x12, 0x34, 0x56
	cpu.DB = 0x7E
	cpu.Cycles = 1000
	cpu.NMI()
	cpu.SetIRQSource(hwdefs.Timer)
	bus.Write8(0x7E0100, 0xAB)
	bus.Write8(0x702000, 0xCD) // sram
	bus.Write8(0x004202, 3)
	bus.Write8(0x004203, 7)
	bus.Write8(0x002181, 0x44)
	cpu.IO.Pads[1] = 0x8080

	var state snapshot.Console
	state.Version = snapshot.Version
	state.CPU = *cpu.Snapshot()
	state.CPUIO = *cpu.IO.Snapshot()
	bus.SaveState(&state)

	dec, err := snapshot.Unmarshal(snapshot.Marshal(&state))
	if err != nil {
		t.Fatal(err)
	}

	// Restore into a fresh console.
	cpu2, bus2 := newTestConsole(t)
	cpu2.SetSnapshot(&dec.CPU)
	if err := cpu2.IO.SetSnapshot(&dec.CPUIO); err != nil {
		t.Fatal(err)
	}
	if err := bus2.LoadState(dec); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(cpu.Regs(), cpu2.Regs()); diff != "" {
		t.Errorf("registers mismatch (-want +got):\n%s", diff)
	}
	if !cpu2.nmiPending || cpu2.IRQLine() != hwdefs.Timer {
		t.Errorf("interrupt lines not restored")
	}
	wantMem8(t, bus2, 0x7E0100, 0xAB)
	wantMem8(t, bus2, 0x702000, 0xCD)
	wantMem8(t, bus2, 0x004216, 21)
	if got := cpu2.IO.WRAM.Addr(); got != 0x44 {
		t.Errorf("WRAM port address = %05X, want 00044", got)
	}
	if cpu2.IO.Pads[1] != 0x8080 {
		t.Errorf("pads not restored")
	}
	if bus2.OpenBus() != bus.OpenBus() {
		t.Errorf("open bus = %02X, want %02X", bus2.OpenBus(), bus.OpenBus())
	}
}

func TestLoadStateMismatch(t *testing.T) {
	_, bus := newTestConsole(t)

	var state snapshot.Console
	bus.SaveState(&state)

	tests := []struct {
		name   string
		modify func(*snapshot.Console)
		want   string
	}{
		{"wram", func(s *snapshot.Console) { s.WRAM = s.WRAM[:10] }, "wram size"},
		{"regs", func(s *snapshot.Console) { s.Regs = nil }, "register space"},
		{"mapping", func(s *snapshot.Console) { s.Mapping = "HiROM" }, "HiROM cartridge"},
		{"sram", func(s *snapshot.Console) { s.SRAM = append(s.SRAM, 0) }, "sram size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state
			tt.modify(&s)
			bus.WRAM[0] = 0x99

			err := bus.LoadState(&s)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("LoadState() error = %v, want %q", err, tt.want)
			}
			if bus.WRAM[0] != 0x99 {
				t.Errorf("bus modified by a failed LoadState")
			}
		})
	}
}

func TestCPUIOSnapshotMismatch(t *testing.T) {
	cpu, _ := newTestConsole(t)
	if err := cpu.IO.SetSnapshot(&snapshot.CPUIO{Regs: []uint8{1}}); err == nil {
		t.Errorf("SetSnapshot should fail with a short register list")
	}
}
