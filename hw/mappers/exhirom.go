package mappers

import (
	"snestor/hw"
	"snestor/hw/hwdefs"
)

var ExHiROM = MapperDesc{
	Name:       "ExHiROM",
	New:        func(b *base) hw.Cartridge { return &exhirom{b} },
	BankSize:   0x10000,
	MinROMSize: hwdefs.MaxROMSize + 0x10000,
	MaxROMSize: hwdefs.MaxExROMSize,
}

// exhirom is HiROM extended to 8MB. The first 4MB are in the upper banks as
// in HiROM, the rest is split between the lower banks, seen as a single
// extended rom region.
//
//	C0-FF:0000-FFFF        rom
//	80-BF:8000-FFFF        rom (mirror of the upper half)
//	40-7D:0000-FFFF        extended rom
//	00-3F:8000-FFFF        extended rom (mirror of the upper half)
//	20-3F,A0-BF:6000-7FFF  sram
type exhirom struct {
	*base
}

func (m *exhirom) Resolve(addr uint32) hw.Location {
	bank, off := int(addr>>16), int(addr&0xFFFF)

	switch {
	case bank&0x40 != 0 || off >= 0x8000:
		idx := (bank&0x3F)*0x10000 + off
		if bank&0x80 != 0 {
			return m.romAt(idx)
		}
		return m.extAt(idx)
	case bank&0x60 == 0x20 && off >= 0x6000:
		return m.sramAt((bank&0x1F)*0x2000 + off - 0x6000)
	}
	return hw.Location{}
}
