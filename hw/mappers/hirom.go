package mappers

import (
	"snestor/hw"
	"snestor/hw/hwdefs"
)

var HiROM = MapperDesc{
	Name:       "HiROM",
	New:        func(b *base) hw.Cartridge { return &hirom{b} },
	BankSize:   0x10000,
	MinROMSize: 0x10000,
	MaxROMSize: hwdefs.MaxROMSize,
}

// hirom maps full 64KB rom banks.
//
//	40-7D,C0-FF:0000-FFFF  rom
//	00-3F,80-BF:8000-FFFF  rom (mirror of the upper half)
//	20-3F,A0-BF:6000-7FFF  sram
type hirom struct {
	*base
}

func (m *hirom) Resolve(addr uint32) hw.Location {
	bank, off := int(addr>>16), int(addr&0xFFFF)

	switch {
	case bank&0x40 != 0 || off >= 0x8000:
		return m.romAt((bank&0x3F)*0x10000 + off)
	case bank&0x60 == 0x20 && off >= 0x6000:
		return m.sramAt((bank&0x1F)*0x2000 + off - 0x6000)
	}
	return hw.Location{}
}
