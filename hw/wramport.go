package hw

import (
	"snestor/hw/hwdefs"
	"snestor/hw/hwio"
)

// WRAMPort gives sequential access to the 128KB of WRAM through $2180-$2183,
// the address auto-increments after each data access.
type WRAMPort struct {
	wram []byte
	addr uint32 // 17 bits

	WMDATA hwio.Reg8 `hwio:"offset=0x00,rcb,pcb,wcb"`
	WMADDL hwio.Reg8 `hwio:"offset=0x01,writeonly,wcb"`
	WMADDM hwio.Reg8 `hwio:"offset=0x02,writeonly,wcb"`
	WMADDH hwio.Reg8 `hwio:"offset=0x03,writeonly,wcb"`
}

func (p *WRAMPort) init(b *Bus) {
	hwio.MustInitRegs(p)
	p.wram = b.WRAM
}

// Addr returns the current 17-bit WRAM address.
func (p *WRAMPort) Addr() uint32 { return p.addr }

func (p *WRAMPort) inc() {
	p.addr = (p.addr + 1) % hwdefs.WRAMSize
}

// $2180
func (p *WRAMPort) ReadWMDATA(_ uint8) uint8 {
	val := p.wram[p.addr]
	p.inc()
	return val
}

func (p *WRAMPort) PeekWMDATA(_ uint8) uint8 {
	return p.wram[p.addr]
}

func (p *WRAMPort) WriteWMDATA(_, val uint8) {
	p.wram[p.addr] = val
	p.inc()
}

// $2181-$2183
func (p *WRAMPort) WriteWMADDL(_, val uint8) {
	p.addr = p.addr&0x1FF00 | uint32(val)
}

func (p *WRAMPort) WriteWMADDM(_, val uint8) {
	p.addr = p.addr&0x100FF | uint32(val)<<8
}

func (p *WRAMPort) WriteWMADDH(_, val uint8) {
	p.addr = p.addr&0x0FFFF | uint32(val&1)<<16
}
