package hw

import (
	"snestor/emu/log"
	"snestor/hw/hwdefs"
	"snestor/hw/hwio"
)

// CPUIO holds the registers at $4200-$421F handled by the CPU chip:
// interrupt control, hardware multiplier and divider, joypad latches.
type CPUIO struct {
	cpu *CPU

	NMITIMEN hwio.Reg8 `hwio:"offset=0x00,writeonly,wcb"`
	WRIO     hwio.Reg8 `hwio:"offset=0x01,writeonly,reset=0xFF"`
	WRMPYA   hwio.Reg8 `hwio:"offset=0x02,writeonly,reset=0xFF"`
	WRMPYB   hwio.Reg8 `hwio:"offset=0x03,writeonly,wcb"`
	WRDIVL   hwio.Reg8 `hwio:"offset=0x04,writeonly,reset=0xFF"`
	WRDIVH   hwio.Reg8 `hwio:"offset=0x05,writeonly,reset=0xFF"`
	WRDIVB   hwio.Reg8 `hwio:"offset=0x06,writeonly,wcb"`
	HTIMEL   hwio.Reg8 `hwio:"offset=0x07,writeonly,reset=0xFF"`
	HTIMEH   hwio.Reg8 `hwio:"offset=0x08,writeonly,rwmask=0x01,reset=0x01"`
	VTIMEL   hwio.Reg8 `hwio:"offset=0x09,writeonly,reset=0xFF"`
	VTIMEH   hwio.Reg8 `hwio:"offset=0x0A,writeonly,rwmask=0x01,reset=0x01"`
	MEMSEL   hwio.Reg8 `hwio:"offset=0x0D,writeonly,rwmask=0x01"`

	RDNMI  hwio.Reg8 `hwio:"offset=0x10,readonly,openbus=0x70,rcb,pcb"`
	TIMEUP hwio.Reg8 `hwio:"offset=0x11,readonly,openbus=0x7F,rcb,pcb"`
	HVBJOY hwio.Reg8 `hwio:"offset=0x12,readonly,openbus=0x3E"`
	RDIO   hwio.Reg8 `hwio:"offset=0x13,readonly,rcb"`
	RDDIVL hwio.Reg8 `hwio:"offset=0x14,readonly"`
	RDDIVH hwio.Reg8 `hwio:"offset=0x15,readonly"`
	RDMPYL hwio.Reg8 `hwio:"offset=0x16,readonly"`
	RDMPYH hwio.Reg8 `hwio:"offset=0x17,readonly"`

	JOY hwio.Device `hwio:"offset=0x18,size=8,readonly,rcb,pcb=ReadJOY"`

	// Pads holds the state of the 4 joypads, as latched by the automatic
	// joypad read. Bit 15 is B, bit 4 is R, as read from JOYxH:JOYxL.
	Pads [4]uint16

	WRAM WRAMPort

	nmiFlag   bool
	timerFlag bool
}

const cpuVersion = 0x02

func (io *CPUIO) initBus(b *Bus) {
	hwio.MustInitRegs(io)
	b.IO.MapBank(0x4200, io, 0)

	io.WRAM.init(b)
	b.IO.MapBank(0x2180, &io.WRAM, 0)
}

func (io *CPUIO) reset() {
	io.NMITIMEN.Value = 0
	io.WRIO.Value = 0xFF
	io.MEMSEL.Value = 0
	io.HVBJOY.Value = 0
	io.nmiFlag = false
	io.timerFlag = false
	if io.cpu != nil {
		io.cpu.ClearIRQSource(hwdefs.Timer)
	}
	io.WRAM.addr = 0
}

// FastROM reports whether the cartridge ROM is accessed at 3.58MHz in banks
// $80-$FF.
func (io *CPUIO) FastROM() bool { return io.MEMSEL.Value&0x01 != 0 }

func (io *CPUIO) nmiEnabled() bool   { return io.NMITIMEN.Value&0x80 != 0 }
func (io *CPUIO) timerEnabled() bool { return io.NMITIMEN.Value&0x30 != 0 }

// SetVBlank is called by the video timing source on vertical blank
// transitions. Entering vblank raises the NMI flag and, if enabled, the CPU
// NMI line.
func (io *CPUIO) SetVBlank(on bool) {
	if on {
		io.HVBJOY.Value |= 0x80
		io.nmiFlag = true
		if io.nmiEnabled() {
			io.cpu.NMI()
		}
		return
	}
	io.HVBJOY.Value &^= 0x80
	io.nmiFlag = false
}

// SetHBlank mirrors the horizontal blank state in HVBJOY.
func (io *CPUIO) SetHBlank(on bool) {
	if on {
		io.HVBJOY.Value |= 0x40
	} else {
		io.HVBJOY.Value &^= 0x40
	}
}

// TimerFired is called when the H/V counters match HTIME/VTIME.
func (io *CPUIO) TimerFired() {
	if !io.timerEnabled() {
		return
	}
	io.timerFlag = true
	io.cpu.SetIRQSource(hwdefs.Timer)
}

// VTime returns the V IRQ trigger line.
func (io *CPUIO) VTime() uint16 { return uint16(io.VTIMEH.Value)<<8 | uint16(io.VTIMEL.Value) }

// $4200
func (io *CPUIO) WriteNMITIMEN(old, val uint8) {
	// Enabling NMI during vblank, while the flag is still set, triggers an
	// NMI right away.
	if old&0x80 == 0 && val&0x80 != 0 && io.nmiFlag {
		io.cpu.NMI()
	}
	if val&0x30 == 0 {
		io.timerFlag = false
		io.cpu.ClearIRQSource(hwdefs.Timer)
	}
	log.ModIRQ.DebugZ("write NMITIMEN").
		Hex8("val", val).
		End()
}

// $4203
func (io *CPUIO) WriteWRMPYB(_, val uint8) {
	prod := uint16(io.WRMPYA.Value) * uint16(val)
	io.RDMPYL.Value = uint8(prod)
	io.RDMPYH.Value = uint8(prod >> 8)
	io.RDDIVL.Value = io.WRMPYA.Value
	io.RDDIVH.Value = val
}

// $4206
func (io *CPUIO) WriteWRDIVB(_, val uint8) {
	dividend := uint16(io.WRDIVH.Value)<<8 | uint16(io.WRDIVL.Value)
	quot, rem := uint16(0xFFFF), dividend
	if val != 0 {
		quot = dividend / uint16(val)
		rem = dividend % uint16(val)
	}
	io.RDDIVL.Value = uint8(quot)
	io.RDDIVH.Value = uint8(quot >> 8)
	io.RDMPYL.Value = uint8(rem)
	io.RDMPYH.Value = uint8(rem >> 8)
}

// $4210
func (io *CPUIO) ReadRDNMI(_ uint8) uint8 {
	val := io.PeekRDNMI(0)
	io.nmiFlag = false
	return val
}

func (io *CPUIO) PeekRDNMI(_ uint8) uint8 {
	val := uint8(cpuVersion)
	if io.nmiFlag {
		val |= 0x80
	}
	return val
}

// $4211
func (io *CPUIO) ReadTIMEUP(_ uint8) uint8 {
	val := io.PeekTIMEUP(0)
	io.timerFlag = false
	io.cpu.ClearIRQSource(hwdefs.Timer)
	return val
}

func (io *CPUIO) PeekTIMEUP(_ uint8) uint8 {
	if io.timerFlag {
		return 0x80
	}
	return 0
}

// $4213
func (io *CPUIO) ReadRDIO(_ uint8) uint8 { return io.WRIO.Value }

// $4218-$421F
func (io *CPUIO) ReadJOY(addr uint16) uint8 {
	off := addr - 0x4218
	pad := io.Pads[off/2]
	if off&1 == 0 {
		return uint8(pad)
	}
	return uint8(pad >> 8)
}
