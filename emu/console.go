package emu

import (
	"fmt"
	"sync/atomic"

	"snestor/cart"
	"snestor/emu/log"
	"snestor/hw"
	"snestor/hw/hwdefs"
	"snestor/hw/mappers"
	"snestor/hw/snapshot"
)

// Console is a headless SNES: the CPU, its bus and the loaded cartridge,
// driven by a coarse scanline clock raising vblank, NMI and timer IRQs.
type Console struct {
	CPU *hw.CPU
	Bus *hw.Bus
	Rom *cart.Rom

	cfg    EmulationConfig
	frames int64
	dbg    hw.Debugger

	quit atomic.Bool
}

// PowerUp builds the console around rom and performs a hard reset.
func PowerUp(rom *cart.Rom, cfg Config) (*Console, error) {
	cfg.Emulation.check()

	bus := hw.NewBus()
	bus.Shared = cfg.Emulation.SharedBus
	if err := mappers.Load(rom, bus); err != nil {
		return nil, err
	}

	cpu := hw.NewCPU(bus)
	cpu.InitBus(bus)
	if cfg.TraceOut != nil {
		cpu.SetTraceOutput(cfg.TraceOut)
	}

	c := &Console{
		CPU: cpu,
		Bus: bus,
		Rom: rom,
		cfg: cfg.Emulation,
	}
	c.Reset(hwdefs.HardReset)
	return c, nil
}

// Reset resets the console. SRAM survives both kinds of reset, WRAM only
// survives a soft reset.
func (c *Console) Reset(soft bool) {
	if !soft {
		c.Bus.Reset()
		c.frames = 0
	}
	c.CPU.Reset(soft)
}

// SetDebugger attaches dbg to the CPU and notifies it of frame ends. A nil
// dbg detaches the current debugger.
func (c *Console) SetDebugger(dbg hw.Debugger) {
	c.dbg = dbg
	c.CPU.SetDebugger(dbg)
}

// Frames returns the number of frames run since power up.
func (c *Console) Frames() int64 { return c.frames }

// Stop makes the frame loop of Run return. Can be called concurrently.
func (c *Console) Stop() { c.quit.Store(true) }

// Run runs nframes frames, or until stopped when nframes is 0.
func (c *Console) Run(nframes int) error {
	c.quit.Store(false)
	for i := 0; nframes == 0 || i < nframes; i++ {
		if err := c.RunOneFrame(); err != nil {
			return err
		}
		if c.quit.Load() || c.CPU.State() == hw.Stopped {
			break
		}
	}
	log.ModEmu.InfoZ("Emulation loop exited").Int64("frames", c.frames).End()
	return nil
}

// RunOneFrame runs the CPU for one frame worth of cycles.
func (c *Console) RunOneFrame() error {
	io := &c.CPU.IO
	perLine := c.cfg.CyclesPerFrame / int64(c.cfg.Scanlines)
	hblank := perLine * 3 / 4

	for line := 0; line < c.cfg.Scanlines; line++ {
		if line == c.cfg.VBlankLine {
			io.SetVBlank(true)
		}
		if c.timerMatch(line) {
			io.TimerFired()
		}

		if err := c.run(hblank); err != nil {
			return err
		}
		io.SetHBlank(true)
		if err := c.run(perLine - hblank); err != nil {
			return err
		}
		io.SetHBlank(false)

		if c.CPU.State() == hw.Stopped {
			break
		}
	}
	io.SetVBlank(false)
	c.frames++
	if c.dbg != nil {
		c.dbg.FrameEnd()
	}
	return nil
}

// timerMatch reports whether the H/V timer fires on line. H positions are
// not modeled: an H-only timer fires once per line.
func (c *Console) timerMatch(line int) bool {
	switch c.CPU.IO.NMITIMEN.Value>>4&3 {
	case 1:
		return true
	case 2, 3:
		return uint16(line) == c.CPU.IO.VTime()
	}
	return false
}

func (c *Console) run(ncycles int64) error {
	if err := c.CPU.Run(ncycles); err != nil {
		return fmt.Errorf("frame %d: %w", c.frames, err)
	}
	return nil
}

// SaveState returns a JSON snapshot of the console.
func (c *Console) SaveState() []byte {
	state := snapshot.Console{
		Version: snapshot.Version,
		CPU:     *c.CPU.Snapshot(),
		CPUIO:   *c.CPU.IO.Snapshot(),
	}
	c.Bus.SaveState(&state)
	return snapshot.Marshal(&state)
}

// LoadState restores a snapshot produced by SaveState. On error the console
// is left untouched.
func (c *Console) LoadState(buf []byte) error {
	state, err := snapshot.Unmarshal(buf)
	if err != nil {
		return err
	}
	prev := c.CPU.IO.Snapshot()
	if err := c.CPU.IO.SetSnapshot(&state.CPUIO); err != nil {
		return err
	}
	if err := c.Bus.LoadState(state); err != nil {
		if rerr := c.CPU.IO.SetSnapshot(prev); rerr != nil {
			return fmt.Errorf("%w (restoring cpu io: %v)", err, rerr)
		}
		return err
	}
	c.CPU.SetSnapshot(&state.CPU)
	return nil
}
