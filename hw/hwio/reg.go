package hwio

import (
	"fmt"

	"snestor/emu/log"
)

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

func (f RWFlags) readable() bool { return f&WriteOnlyFlag == 0 }
func (f RWFlags) writable() bool { return f&ReadOnlyFlag == 0 }

func denied(what, name string, addr uint16) {
	log.ModHwIo.DebugZ(what).
		String("name", name).
		Hex16("addr", addr).
		End()
}

// Reg8 is an 8-bit register. Bits set in RoMask can't be modified by CPU
// writes. Bits set in OpenMask aren't driven by the register on reads: they
// come from the data bus, see Table.DataBus.
type Reg8 struct {
	Name     string
	Value    uint8
	RoMask   uint8
	OpenMask uint8

	Flags   RWFlags
	ReadCb  func(val uint8) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old uint8, val uint8)
}

func (reg Reg8) String() string {
	s := fmt.Sprintf("%s{%02x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.PeekCb != nil {
		s += ",p!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if !reg.Flags.writable() {
		denied("Write8 to readonly reg", reg.Name, addr)
		return
	}
	old := reg.Value
	reg.Value = old&reg.RoMask | val&^reg.RoMask
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Read8(addr uint16, peek bool) uint8 {
	switch {
	case !reg.Flags.readable():
		if !peek {
			denied("Read8 from writeonly reg", reg.Name, addr)
		}
		return 0
	case peek && reg.PeekCb != nil:
		return reg.PeekCb(reg.Value)
	case !peek && reg.ReadCb != nil:
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

// Device handles a whole range of registers through callbacks receiving the
// accessed address.
type Device struct {
	Name  string // name of the register area (for debugging)
	Size  int    // size of the register area
	Flags RWFlags

	ReadCb  func(addr uint16) uint8
	PeekCb  func(addr uint16) uint8
	WriteCb func(addr uint16, val uint8)
}

// Read8 returns 0 for accesses without a matching callback. Peeking a
// device without a peek callback never calls its read callback.
func (d *Device) Read8(addr uint16, peek bool) uint8 {
	switch {
	case !d.Flags.readable():
		if !peek {
			denied("Read8 from writeonly device", d.Name, addr)
		}
	case peek && d.PeekCb != nil:
		return d.PeekCb(addr)
	case !peek && d.ReadCb != nil:
		return d.ReadCb(addr)
	}
	return 0
}

func (d *Device) Write8(addr uint16, val uint8) {
	switch {
	case !d.Flags.writable():
		denied("Write8 to readonly device", d.Name, addr)
	case d.WriteCb != nil:
		d.WriteCb(addr, val)
	}
}
