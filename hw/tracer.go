package hw

import (
	"fmt"
	"io"
)

type disasmer interface {
	Disasm(pc uint32) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// regField appends "name:value " with the value encoded over 2 or 4 hex
// digits.
func regField(buf []byte, name byte, v uint16, wide bool) []byte {
	var tmp [4]byte
	buf = append(buf, name, ':')
	if wide {
		hexEncode(tmp[0:], byte(v>>8))
		hexEncode(tmp[2:], byte(v))
		buf = append(buf, tmp[:4]...)
	} else {
		hexEncode(tmp[0:], byte(v))
		buf = append(buf, tmp[:2]...)
	}
	return append(buf, ' ')
}

// write the execution trace for the instruction about to be executed.
func (t *tracer) write(r Regs) {
	buf := make([]byte, 0, 128)
	buf = append(buf, t.d.Disasm(uint32(r.PB)<<16|uint32(r.PC)).Bytes()...)

	buf = regField(buf, 'A', r.A, true)
	buf = regField(buf, 'X', r.X, true)
	buf = regField(buf, 'Y', r.Y, true)
	buf = regField(buf, 'S', r.S, true)
	buf = regField(buf, 'D', r.D, true)
	buf = regField(buf, 'B', uint16(r.DB), false)
	buf = append(buf, 'P', ':')
	buf = append(buf, r.P.String()...)
	if r.E {
		buf = append(buf, " E"...)
	} else {
		buf = append(buf, " N"...)
	}
	buf = fmt.Appendf(buf, " CYC:%d\n", r.Cycles)
	t.w.Write(buf)
}
