package mappers

import (
	"snestor/hw"
	"snestor/hw/hwdefs"
)

var LoROM = MapperDesc{
	Name:       "LoROM",
	New:        func(b *base) hw.Cartridge { return &lorom{b} },
	BankSize:   0x8000,
	MinROMSize: 0x8000,
	MaxROMSize: hwdefs.MaxROMSize,
}

// lorom maps 32KB rom banks in the upper half of each bank.
//
//	00-7D,80-FF:8000-FFFF  rom
//	40-6F,C0-EF:0000-7FFF  rom (mirror of the upper half)
//	70-7D,F0-FF:0000-7FFF  sram
type lorom struct {
	*base
}

func (m *lorom) Resolve(addr uint32) hw.Location {
	bank, off := int(addr>>16)&0x7F, int(addr&0xFFFF)

	switch {
	case off >= 0x8000:
		return m.romAt(bank*0x8000 + off - 0x8000)
	case bank >= 0x70:
		return m.sramAt((bank&0x0F)*0x8000 + off)
	case bank >= 0x40:
		return m.romAt(bank*0x8000 + off)
	}
	return hw.Location{}
}
