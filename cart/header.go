package cart

import (
	"fmt"
	"strings"
)

// Mapping identifies one of the cartridge memory-map layouts.
type Mapping uint8

const (
	Auto Mapping = iota // Detect from the internal header
	LoROM
	HiROM
	ExHiROM
)

var mappingNames = [...]string{"auto", "lorom", "hirom", "exhirom"}

func (m Mapping) String() string {
	if int(m) < len(mappingNames) {
		return mappingNames[m]
	}
	return fmt.Sprintf("Mapping(%d)", m)
}

// ParseMapping parses a mapping name, case insensitive.
func ParseMapping(s string) (Mapping, error) {
	for i, name := range mappingNames {
		if strings.EqualFold(s, name) {
			return Mapping(i), nil
		}
	}
	return Auto, fmt.Errorf("unknown mapping %q (want one of %s)", s, strings.Join(mappingNames[:], ", "))
}

func (m Mapping) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mapping) UnmarshalText(text []byte) error {
	v, err := ParseMapping(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// HeaderOffset returns the offset of the internal header in the image, or -1
// for Auto.
func (m Mapping) HeaderOffset() int {
	switch m {
	case LoROM:
		return 0x7FC0
	case HiROM:
		return 0xFFC0
	case ExHiROM:
		return 0x40FFC0
	}
	return -1
}

// map mode byte values, bit 4 is the FastROM bit.
const (
	mapModeLoROM   = 0x20
	mapModeHiROM   = 0x21
	mapModeExHiROM = 0x25
	mapModeFast    = 0x10
)

func (m Mapping) mapMode() uint8 {
	switch m {
	case LoROM:
		return mapModeLoROM
	case HiROM:
		return mapModeHiROM
	case ExHiROM:
		return mapModeExHiROM
	}
	return 0
}

// headerSize covers the header proper and the vectors following it.
const headerSize = 0x40

// Header holds the decoded internal cartridge header.
type Header struct {
	Offset  int     // Offset of the header in the image
	Mapping Mapping // Layout the header was found for

	Title      string
	MapMode    uint8
	FastROM    bool
	Chipset    uint8
	ROMSize    int // declared rom size in bytes
	SRAMSize   int // declared sram size in bytes
	Region     uint8
	Developer  uint8
	Version    uint8
	Complement uint16
	Checksum   uint16

	// Emulation mode reset vector.
	ResetVector uint16

	raw [headerSize]byte
}

func (hdr *Header) decode(p []byte, off int) {
	copy(hdr.raw[:], p)
	hdr.Offset = off

	hdr.Title = strings.TrimRight(string(p[0x00:0x15]), " \x00")
	hdr.MapMode = p[0x15]
	hdr.FastROM = p[0x15]&mapModeFast != 0
	hdr.Chipset = p[0x16]
	if p[0x17] != 0 && p[0x17] <= 0x0D {
		hdr.ROMSize = 1024 << p[0x17]
	}
	if p[0x18] != 0 && p[0x18] <= 0x08 {
		hdr.SRAMSize = 1024 << p[0x18]
	}
	hdr.Region = p[0x19]
	hdr.Developer = p[0x1A]
	hdr.Version = p[0x1B]
	hdr.Complement = uint16(p[0x1C]) | uint16(p[0x1D])<<8
	hdr.Checksum = uint16(p[0x1E]) | uint16(p[0x1F])<<8
	hdr.ResetVector = uint16(p[0x3C]) | uint16(p[0x3D])<<8
}

// Raw returns the raw header bytes.
func (hdr *Header) Raw() []byte { return hdr.raw[:] }

// score rates how plausible the header is for its mapping. A score of 0 or
// less means the header is not credible.
func (hdr *Header) score() int {
	score := 0
	if hdr.MapMode&^mapModeFast == hdr.Mapping.mapMode() {
		score += 2
	}
	if hdr.Checksum^hdr.Complement == 0xFFFF {
		score += 4
	}
	if hdr.ResetVector >= 0x8000 {
		score += 2
	} else {
		score -= 4
	}
	if hdr.ROMSize != 0 {
		score++
	}
	if printable(hdr.raw[:0x15]) {
		score++
	}
	return score
}

func printable(p []byte) bool {
	for _, c := range p {
		if c != 0 && (c < 0x20 || c > 0x7E) {
			return false
		}
	}
	return true
}

var regionNames = map[uint8]string{
	0x00: "Japan",
	0x01: "North America",
	0x02: "Europe",
	0x03: "Sweden/Scandinavia",
	0x04: "Finland",
	0x05: "Denmark",
	0x06: "France",
	0x07: "Netherlands",
	0x08: "Spain",
	0x09: "Germany",
	0x0A: "Italy",
	0x0B: "China",
	0x0C: "Indonesia",
	0x0D: "Korea",
	0x0F: "Canada",
	0x10: "Brazil",
	0x11: "Australia",
}

func (hdr *Header) RegionName() string {
	if name, ok := regionNames[hdr.Region]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%02X)", hdr.Region)
}

// PAL reports whether the cartridge targets a 50Hz console.
func (hdr *Header) PAL() bool {
	switch hdr.Region {
	case 0x00, 0x01, 0x0D, 0x0F, 0x10:
		return false
	}
	return hdr.Region <= 0x11
}
