// Package cart reads SNES cartridge images (.sfc/.smc), locates and decodes
// their internal header and decides which memory-map layout they use.
package cart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNoHeader is returned when no plausible internal header can be found
	// in an image.
	ErrNoHeader = errors.New("no valid cartridge header")

	// ErrBadSize is returned when the image size is inconsistent with the
	// cartridge bank geometry.
	ErrBadSize = errors.New("invalid rom size")
)

const (
	copierHeaderSize = 512
	bankSize         = 0x8000
	maxImageSize     = 0x800000
)

type Rom struct {
	Header

	Copier []byte // Copier header, 512 bytes if present, or empty.
	ROM    []byte // ROM image, without copier header.
}

// Open loads a rom from file, detecting its mapping from the internal header.
func Open(path string) (*Rom, error) {
	return OpenAs(path, Auto)
}

// OpenAs loads a rom from file. Unless m is Auto, the internal header is only
// looked for at the location m prescribes and m is used as the rom mapping.
func OpenAs(path string, m Mapping) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Decode(buf, m)
}

// ReadFrom implements io.ReaderFrom interface. The mapping is auto-detected.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	dec, err := Decode(buf, Auto)
	if err != nil {
		return 0, err
	}
	*rom = *dec
	return int64(len(buf)), nil
}

// Decode decodes a full cartridge image. On error no Rom is returned.
func Decode(buf []byte, m Mapping) (*Rom, error) {
	rom := new(Rom)
	if len(buf)%bankSize == copierHeaderSize {
		rom.Copier = buf[:copierHeaderSize]
		buf = buf[copierHeaderSize:]
	}

	if len(buf) == 0 || len(buf)%bankSize != 0 || len(buf) > maxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadSize, len(buf))
	}

	var (
		hdr Header
		err error
	)
	if m == Auto {
		hdr, err = detect(buf)
	} else {
		hdr, err = headerAt(buf, m)
	}
	if err != nil {
		return nil, err
	}

	rom.Header = hdr
	rom.ROM = buf
	return rom, nil
}

// detect scores the header candidates of each layout and picks the best.
func detect(buf []byte) (Header, error) {
	var (
		best      Header
		bestScore = 0
		found     bool
	)
	for _, m := range []Mapping{LoROM, HiROM, ExHiROM} {
		hdr, err := headerAt(buf, m)
		if err != nil {
			continue
		}
		if score := hdr.score(); score > bestScore {
			best, bestScore, found = hdr, score, true
		}
	}
	if !found {
		return Header{}, ErrNoHeader
	}
	return best, nil
}

func headerAt(buf []byte, m Mapping) (Header, error) {
	off := m.HeaderOffset()
	if off < 0 || off+headerSize > len(buf) {
		return Header{}, fmt.Errorf("%w: %s header at 0x%X is outside the image", ErrNoHeader, m, off)
	}
	var hdr Header
	hdr.decode(buf[off:off+headerSize], off)
	hdr.Mapping = m
	return hdr, nil
}

// ComputeChecksum returns the 16-bit sum of all rom bytes. Images which size
// is not a power of 2 have their last part mirrored up to the next power of
// 2, which is what the header checksum covers.
func (rom *Rom) ComputeChecksum() uint16 {
	return checksum(rom.ROM)
}

// ChecksumOK reports whether the header checksum matches the rom contents.
func (rom *Rom) ChecksumOK() bool {
	return rom.Checksum == rom.ComputeChecksum() && rom.Checksum^rom.Complement == 0xFFFF
}

func checksum(buf []byte) uint16 {
	sum := func(p []byte) (s uint16) {
		for _, b := range p {
			s += uint16(b)
		}
		return s
	}

	n := len(buf)
	if n == 0 || ispow2(n) {
		return sum(buf)
	}

	lo := 1
	for lo*2 < n {
		lo *= 2
	}
	rest := buf[lo:]
	if lo%len(rest) != 0 {
		return sum(buf)
	}
	return sum(buf[:lo]) + sum(rest)*uint16(lo/len(rest))
}

func ispow2(n int) bool {
	return n&(n-1) == 0
}

// String returns a short multi-line description of the rom.
func (rom *Rom) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "title:    %q\n", rom.Title)
	fmt.Fprintf(&sb, "mapping:  %s", rom.Mapping)
	if rom.FastROM {
		sb.WriteString(" (FastROM)")
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "rom size: %d KB (header says %d KB)\n", len(rom.ROM)/1024, rom.ROMSize/1024)
	fmt.Fprintf(&sb, "sram:     %d KB\n", rom.SRAMSize/1024)
	fmt.Fprintf(&sb, "region:   %s\n", rom.RegionName())
	fmt.Fprintf(&sb, "version:  1.%d\n", rom.Version)
	ok := "bad"
	if rom.ChecksumOK() {
		ok = "ok"
	}
	fmt.Fprintf(&sb, "checksum: %04X/%04X (%s)\n", rom.Checksum, rom.Complement, ok)
	if len(rom.Copier) != 0 {
		sb.WriteString("copier header present\n")
	}
	return sb.String()
}
