package mappers

import (
	"fmt"

	"snestor/cart"
	"snestor/hw"
	"snestor/hw/hwdefs"
)

// base holds the cartridge buffers shared by all layouts.
type base struct {
	desc MapperDesc

	rom  []byte
	ext  []byte // ExHiROM only: everything above the first 4MB.
	sram []byte
}

func newbase(desc MapperDesc, rom *cart.Rom) (*base, error) {
	sz := len(rom.ROM)
	if sz%desc.BankSize != 0 {
		return nil, fmt.Errorf("%w: %s rom size must be a multiple of %dKB, got %d bytes",
			cart.ErrBadSize, desc.Name, desc.BankSize/1024, sz)
	}
	if sz < desc.MinROMSize || sz > desc.MaxROMSize {
		return nil, fmt.Errorf("%w: %s rom size must be in [%d, %d], got %d bytes",
			cart.ErrBadSize, desc.Name, desc.MinROMSize, desc.MaxROMSize, sz)
	}

	b := &base{desc: desc}
	lo := min(sz, hwdefs.MaxROMSize)
	b.rom = make([]byte, lo)
	copy(b.rom, rom.ROM)
	if sz > lo {
		b.ext = make([]byte, sz-lo)
		copy(b.ext, rom.ROM[lo:])
	}
	b.sram = make([]byte, rom.SRAMSize)
	return b, nil
}

func (b *base) Name() string { return b.desc.Name }

func (b *base) Memory(area hw.Area) []byte {
	switch area {
	case hw.ROM:
		return b.rom
	case hw.ExROM:
		return b.ext
	case hw.SRAM:
		return b.sram
	}
	return nil
}

func (b *base) romAt(idx int) hw.Location {
	return hw.Location{Area: hw.ROM, Offset: mirror(idx, len(b.rom))}
}

func (b *base) extAt(idx int) hw.Location {
	if len(b.ext) == 0 {
		return hw.Location{}
	}
	return hw.Location{Area: hw.ExROM, Offset: mirror(idx, len(b.ext))}
}

func (b *base) sramAt(idx int) hw.Location {
	if len(b.sram) == 0 {
		return hw.Location{}
	}
	return hw.Location{Area: hw.SRAM, Offset: mirror(idx, len(b.sram))}
}

// mirror folds idx into a buffer of the given size. For sizes that are not a
// power of 2, the buffer is seen as a sum of power of 2 chunks, each one
// mirrored in turn (a 3MB rom repeats its last MB in the 4th MB).
func mirror(idx, size int) int {
	if size == 0 {
		return 0
	}
	off := 0
	mask := 1 << 23
	for idx >= size {
		for idx&mask == 0 {
			mask >>= 1
		}
		idx -= mask
		if size > mask {
			size -= mask
			off += mask
		}
		mask >>= 1
	}
	return off + idx
}
