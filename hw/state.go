package hw

import (
	"fmt"

	"snestor/hw/hwdefs"
	"snestor/hw/hwio"
	"snestor/hw/snapshot"
)

func (c *CPU) Snapshot() *snapshot.CPU {
	return &snapshot.CPU{
		A:            c.A,
		X:            c.X,
		Y:            c.Y,
		S:            c.S,
		D:            c.D,
		PC:           c.PC,
		DB:           c.DB,
		PB:           c.PB,
		P:            uint8(c.P),
		E:            c.E,
		Cycles:       c.Cycles,
		State:        uint8(c.state),
		NMIPending:   c.nmiPending,
		AbortPending: c.abortPending,
		IRQLine:      uint8(c.irqLine),
	}
}

func (c *CPU) SetSnapshot(state *snapshot.CPU) {
	c.A, c.X, c.Y = state.A, state.X, state.Y
	c.S, c.D, c.PC = state.S, state.D, state.PC
	c.DB, c.PB = state.DB, state.PB
	c.E = state.E
	c.setP(P(state.P))
	if c.E {
		c.S = 0x0100 | c.S&0xFF
	}
	c.Cycles = state.Cycles
	c.state = State(state.State)
	c.nmiPending = state.NMIPending
	c.abortPending = state.AbortPending
	c.irqLine = hwdefs.IRQSource(state.IRQLine)
}

// latched returns the registers which values are saved in snapshots.
func (io *CPUIO) latched() []*hwio.Reg8 {
	return []*hwio.Reg8{
		&io.NMITIMEN, &io.WRIO, &io.WRMPYA, &io.WRMPYB,
		&io.WRDIVL, &io.WRDIVH, &io.WRDIVB,
		&io.HTIMEL, &io.HTIMEH, &io.VTIMEL, &io.VTIMEH,
		&io.MEMSEL, &io.HVBJOY,
		&io.RDDIVL, &io.RDDIVH, &io.RDMPYL, &io.RDMPYH,
	}
}

func (io *CPUIO) Snapshot() *snapshot.CPUIO {
	var state snapshot.CPUIO
	for _, r := range io.latched() {
		state.Regs = append(state.Regs, r.Value)
	}
	state.NMIFlag = io.nmiFlag
	state.TimerFlag = io.timerFlag
	state.Pads = io.Pads
	state.WRAMAddr = io.WRAM.addr
	return &state
}

func (io *CPUIO) SetSnapshot(state *snapshot.CPUIO) error {
	regs := io.latched()
	if len(state.Regs) != len(regs) {
		return fmt.Errorf("cpu io: got %d registers, want %d", len(state.Regs), len(regs))
	}
	for i, r := range regs {
		r.Value = state.Regs[i]
	}
	io.nmiFlag = state.NMIFlag
	io.timerFlag = state.TimerFlag
	io.Pads = state.Pads
	io.WRAM.addr = state.WRAMAddr % hwdefs.WRAMSize
	return nil
}

// SaveState fills the bus related part of state: WRAM, register buffer, open
// bus and cartridge SRAM.
func (b *Bus) SaveState(state *snapshot.Console) {
	state.OpenBus = b.openBus
	state.WRAM = append([]byte(nil), b.WRAM...)
	state.Regs = append([]byte(nil), b.Regs[:]...)
	if b.Cart != nil {
		state.Mapping = b.Cart.Name()
		state.SRAM = append([]byte(nil), b.Cart.Memory(SRAM)...)
	}
}

// LoadState restores what SaveState saved. The bus is left untouched if
// state doesn't fit it.
func (b *Bus) LoadState(state *snapshot.Console) error {
	if len(state.WRAM) != len(b.WRAM) {
		return fmt.Errorf("bus: wram size %d, want %d", len(state.WRAM), len(b.WRAM))
	}
	if len(state.Regs) != len(b.Regs) {
		return fmt.Errorf("bus: register space size %d, want %d", len(state.Regs), len(b.Regs))
	}
	var sram []byte
	if b.Cart != nil {
		if state.Mapping != b.Cart.Name() {
			return fmt.Errorf("bus: state is for a %s cartridge, got %s", state.Mapping, b.Cart.Name())
		}
		sram = b.Cart.Memory(SRAM)
		if len(state.SRAM) != len(sram) {
			return fmt.Errorf("bus: sram size %d, want %d", len(state.SRAM), len(sram))
		}
	}

	b.openBus = state.OpenBus
	copy(b.WRAM, state.WRAM)
	copy(b.Regs[:], state.Regs)
	copy(sram, state.SRAM)
	return nil
}
