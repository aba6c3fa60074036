package hwio

import (
	"fmt"

	"snestor/emu/log"
)

// log unmapped accesses (useful for debugging but very verbose since the
// register space is mostly made of holes)
const logUnmapped = false

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// Table dispatches 8-bit accesses to the registers and devices mapped in a
// 16-bit address window.
type Table struct {
	Name string

	// DataBus returns the value currently on the data bus. It provides the
	// open bus bits of registers having an OpenMask. When nil, these bits
	// read as 0.
	DataBus func() uint8

	table8 radixTree
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.table8 = radixTree{}
}

// Map a register bank (that is, a structure containing mulitple Reg8/Device
// fields). For this function to work, registers must have a struct tag
// "hwio", containing the following fields:
//
//	offset=0x12     Byte-offset within the register bank at which this
//	                register is mapped. There is no default value: if this
//	                option is missing, the register is assumed not to be
//	                part of the bank, and is ignored by this call.
//
//	bank=NN         Ordinal bank number (if not specified, default to zero).
//	                This option allows for a structure to expose multiple
//	                banks, as regs can be grouped by bank by specified the
//	                bank number.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		case *Device:
			t.MapDevice(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Reg8:
			t.Unmap(addr+reg.offset, addr+reg.offset)
		case *Device:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint16(r.Size)-1)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus8(addr, size uint16, io BankIO8) {
	if err := t.table8.InsertRange(addr, addr+size-1, io); err != nil {
		panic(fmt.Errorf("%s: %w", t.Name, err))
	}
}

func (t *Table) MapReg8(addr uint16, io *Reg8) {
	log.ModHwIo.DebugZ("mapping reg").
		Hex16("addr", addr).
		String("reg", io.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, 1, io)
}

func (t *Table) MapDevice(addr uint16, io *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Hex16("size", uint16(io.Size)).
		String("dev", io.Name).
		String("bus", t.Name).
		End()

	if io.Size <= 0 {
		panic(fmt.Errorf("device %s has invalid size %d", io.Name, io.Size))
	}
	t.mapBus8(addr, uint16(io.Size), io)
}

func (t *Table) Unmap(begin, end uint16) {
	t.table8.RemoveRange(begin, end)
}

// Mapped reports whether a register or a device claims addr.
func (t *Table) Mapped(addr uint16) bool {
	return t.table8.Search(addr) != nil
}

// Read8 searches in the table for the device mapped at the given address and
// forward the read to it. ok is false when nothing is mapped at addr.
func (t *Table) Read8(addr uint16) (val uint8, ok bool) {
	io := t.table8.Search(addr)
	if io == nil {
		if logUnmapped {
			log.ModHwIo.ErrorZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return 0, false
	}
	if !readable(io) {
		return 0, false
	}
	return t.openBits(io, io.Read8(addr, false)), true
}

// Peek8 is like Read8 but without side effects.
func (t *Table) Peek8(addr uint16) (val uint8, ok bool) {
	io := t.table8.Search(addr)
	if io == nil || !readable(io) {
		return 0, false
	}
	return t.openBits(io, io.Read8(addr, true)), true
}

func (t *Table) openBits(io BankIO8, val uint8) uint8 {
	r, ok := io.(*Reg8)
	if !ok || r.OpenMask == 0 {
		return val
	}
	val &^= r.OpenMask
	if t.DataBus != nil {
		val |= t.DataBus() & r.OpenMask
	}
	return val
}

// Write-only registers don't drive the data bus on reads, the caller sees
// whatever was there before.
func readable(io BankIO8) bool {
	switch r := io.(type) {
	case *Reg8:
		return r.Flags.readable()
	case *Device:
		return r.Flags.readable()
	}
	return true
}

// Write8 forwards the write to the device mapped at addr. ok is false when
// nothing is mapped there.
func (t *Table) Write8(addr uint16, val uint8) (ok bool) {
	io := t.table8.Search(addr)
	if io == nil {
		if logUnmapped {
			log.ModHwIo.ErrorZ("unmapped Write8").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return false
	}
	io.Write8(addr, val)
	return true
}
