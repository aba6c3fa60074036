package hwdefs

import "strings"

// IRQSource identifies a device pulling the shared IRQ line low.
type IRQSource uint8

const (
	External IRQSource = 1 << iota
	Timer

	numSources = 2
)

var irqSrcNames = [numSources]string{
	"ext",
	"timer",
}

func (irq IRQSource) String() string {
	var names []string
	for i := 0; i < numSources; i++ {
		if irq&(1<<i) != 0 {
			names = append(names, irqSrcNames[i])
		}
	}
	return strings.Join(names, "|")
}

const (
	SoftReset = true
	HardReset = false
)

// Console memory sizes.
const (
	WRAMSize = 0x20000 // 128KB work RAM at $7E0000-$7FFFFF

	RegBase = 0x2000 // first address of the hardware register space
	RegSize = 0x4000 // $2000-$5FFF

	MaxROMSize   = 0x400000 // LoROM/HiROM
	MaxExROMSize = 0x800000 // ExHiROM
)
