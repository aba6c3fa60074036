package mappers

import (
	"fmt"

	"snestor/cart"
	"snestor/emu/log"
	"snestor/hw"
)

// Load builds the memory-map layout for rom and plugs it into the bus.
// Nothing is attached to the bus on error.
func Load(rom *cart.Rom, bus *hw.Bus) error {
	desc, ok := All[rom.Mapping]
	if !ok {
		return fmt.Errorf("unsupported mapping %s", rom.Mapping)
	}
	base, err := newbase(desc, rom)
	if err != nil {
		return fmt.Errorf("mapper initialization failed: %w", err)
	}

	bus.Cart = desc.New(base)

	log.ModCart.InfoZ("cartridge loaded").
		String("mapping", desc.Name).
		String("title", rom.Title).
		Int("rom", len(base.rom)).
		Int("exrom", len(base.ext)).
		Int("sram", len(base.sram)).
		End()
	return nil
}

type MapperDesc struct {
	Name string
	New  func(*base) hw.Cartridge

	// ROM geometry constraints.
	BankSize   int
	MinROMSize int
	MaxROMSize int
}

var All = map[cart.Mapping]MapperDesc{
	cart.LoROM:   LoROM,
	cart.HiROM:   HiROM,
	cart.ExHiROM: ExHiROM,
}
