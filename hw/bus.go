package hw

import (
	"fmt"
	"sync"

	"snestor/emu/log"
	"snestor/hw/hwdefs"
	"snestor/hw/hwio"
)

// Area is a backing store of the 24-bit address space.
type Area uint8

const (
	Unmapped Area = iota
	WRAM
	Registers
	ROM
	SRAM
	ExROM // ExHiROM upper 4MB
)

var areaNames = [...]string{"unmapped", "wram", "regs", "rom", "sram", "exrom"}

func (a Area) String() string {
	if int(a) < len(areaNames) {
		return areaNames[a]
	}
	return fmt.Sprintf("Area(%d)", a)
}

// Writable reports whether CPU writes can modify the area content.
func (a Area) Writable() bool {
	return a == WRAM || a == Registers || a == SRAM
}

// Location is the result of address resolution: an area and a byte offset
// inside it.
type Location struct {
	Area   Area
	Offset int
}

func (l Location) String() string {
	if l.Area == Unmapped {
		return l.Area.String()
	}
	return fmt.Sprintf("%s+%06x", l.Area, l.Offset)
}

// A Cartridge maps the addresses not claimed by the console (WRAM and
// register space) to its ROM and SRAM buffers.
type Cartridge interface {
	Name() string

	// Resolve receives the full 24-bit address as emitted by the CPU,
	// without any bank folding. It must return one of ROM, SRAM, ExROM or
	// Unmapped, with an offset valid for the corresponding Memory buffer.
	Resolve(addr uint32) Location

	Memory(area Area) []byte
}

// Bus is the SNES memory mapper.
type Bus struct {
	WRAM []byte
	Regs [hwdefs.RegSize]byte

	// IO holds the register subsystems claiming parts of $2000-$5FFF.
	// Addresses are absolute ($2000-$5FFF).
	IO *hwio.Table

	Cart Cartridge

	// When Shared is set, register space accesses are serialized, allowing
	// other goroutines to poke at registers while the CPU runs.
	Shared bool
	mu     sync.Mutex

	openBus uint8

	// ROMWrites counts the writes rejected because they targeted ROM.
	ROMWrites  uint64
	OnROMWrite func(addr uint32, val uint8)
}

func NewBus() *Bus {
	b := &Bus{
		WRAM: make([]byte, hwdefs.WRAMSize),
		IO:   hwio.NewTable("regs"),
	}
	b.IO.DataBus = b.OpenBus
	return b
}

// Reset clears WRAM, the register buffer and the open bus latch. Cartridge
// SRAM is preserved.
func (b *Bus) Reset() {
	clear(b.WRAM)
	clear(b.Regs[:])
	b.openBus = 0
	b.ROMWrites = 0
}

// OpenBus returns the last value that went over the data bus.
func (b *Bus) OpenBus() uint8 { return b.openBus }

// Banks $00-$7D mirror $80-$FD for WRAM and registers.
func fold(bank uint8) uint8 {
	if bank < 0x7E {
		return bank | 0x80
	}
	return bank
}

// Resolve maps a 24-bit address to its backing store. It has no side effect.
func (b *Bus) Resolve(addr uint32) Location {
	addr &= 0xFFFFFF
	bank := fold(uint8(addr >> 16))
	off := uint16(addr)

	switch {
	case bank == 0x7E || bank == 0x7F:
		return Location{WRAM, int(bank-0x7E)<<16 | int(off)}
	case bank < 0xC0 && off < hwdefs.RegBase:
		// First 8KB of WRAM, mirrored in system banks.
		return Location{WRAM, int(off)}
	case bank < 0xC0 && off < hwdefs.RegBase+hwdefs.RegSize:
		return Location{Registers, int(off - hwdefs.RegBase)}
	}

	if b.Cart == nil {
		return Location{}
	}
	return b.Cart.Resolve(addr)
}

func (b *Bus) Read8(addr uint32) uint8 {
	loc := b.Resolve(addr)
	switch loc.Area {
	case Unmapped:
		log.ModMem.DebugZ("unmapped read").Addr24("addr", addr).End()
		return b.openBus
	case Registers:
		return b.readReg(loc.Offset, false)
	case WRAM:
		b.openBus = b.WRAM[loc.Offset]
	default:
		b.openBus = b.Cart.Memory(loc.Area)[loc.Offset]
	}
	return b.openBus
}

// Peek8 reads a byte without side effects: the open bus latch is left
// untouched and register subsystems are peeked rather than read.
func (b *Bus) Peek8(addr uint32) uint8 {
	loc := b.Resolve(addr)
	switch loc.Area {
	case Unmapped:
		return b.openBus
	case Registers:
		return b.readReg(loc.Offset, true)
	case WRAM:
		return b.WRAM[loc.Offset]
	}
	return b.Cart.Memory(loc.Area)[loc.Offset]
}

// Write8 leaves the open bus latch untouched, only reads update it.
func (b *Bus) Write8(addr uint32, val uint8) {
	loc := b.Resolve(addr)
	switch loc.Area {
	case WRAM:
		b.WRAM[loc.Offset] = val
	case Registers:
		b.writeReg(loc.Offset, val)
	case SRAM:
		b.Cart.Memory(SRAM)[loc.Offset] = val
	case ROM, ExROM:
		b.romWrite(addr, val)
	case Unmapped:
		log.ModMem.DebugZ("unmapped write").
			Addr24("addr", addr).
			Hex8("val", val).
			End()
	}
}

func (b *Bus) romWrite(addr uint32, val uint8) {
	b.ROMWrites++
	log.ModMem.InfoZ("write to ROM").
		Addr24("addr", addr&0xFFFFFF).
		Hex8("val", val).
		End()
	if b.OnROMWrite != nil {
		b.OnROMWrite(addr&0xFFFFFF, val)
	}
}

// A subsystem claiming a register gets the access. Otherwise the register
// buffer acts as plain memory. Values returned by subsystems are stored
// back in the buffer, so that it always reflects the last value seen on
// each register.
func (b *Bus) readReg(off int, peek bool) uint8 {
	if b.Shared {
		b.mu.Lock()
		defer b.mu.Unlock()
	}

	regaddr := uint16(off + hwdefs.RegBase)
	if peek {
		if val, ok := b.IO.Peek8(regaddr); ok {
			return val
		}
		return b.Regs[off]
	}

	val, ok := b.IO.Read8(regaddr)
	if !ok {
		return b.Regs[off]
	}
	b.Regs[off] = val
	b.openBus = val
	return val
}

func (b *Bus) writeReg(off int, val uint8) {
	if b.Shared {
		b.mu.Lock()
		defer b.mu.Unlock()
	}

	b.Regs[off] = val
	b.IO.Write8(uint16(off+hwdefs.RegBase), val)
}

// Reg returns the raw content of the register buffer at addr ($2000-$5FFF),
// bypassing subsystems.
func (b *Bus) Reg(addr uint16) uint8 {
	if b.Shared {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	return b.Regs[addr-hwdefs.RegBase]
}

// SetReg writes the raw register buffer at addr ($2000-$5FFF), bypassing
// subsystems. This is how collaborators publish values for the CPU to read.
func (b *Bus) SetReg(addr uint16, val uint8) {
	if b.Shared {
		b.mu.Lock()
		defer b.mu.Unlock()
	}
	b.Regs[addr-hwdefs.RegBase] = val
}

// Read16 reads a little-endian word, without bank wrapping.
func (b *Bus) Read16(addr uint32) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Peek16 is Read16 without side effects.
func (b *Bus) Peek16(addr uint32) uint16 {
	lo := b.Peek8(addr)
	hi := b.Peek8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
