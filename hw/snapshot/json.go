package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// Marshal encodes the console snapshot as JSON.
func Marshal(s *Console) []byte {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes()
}

// Unmarshal decodes a JSON console snapshot.
func Unmarshal(buf []byte) (*Console, error) {
	var s Console
	if err := s.Decode(jx.DecodeBytes(buf)); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d (want %d)", s.Version, Version)
	}
	return &s, nil
}

func (s *Console) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("mapping", func(e *jx.Encoder) { e.Str(s.Mapping) })
		e.Field("cpu", s.CPU.Encode)
		e.Field("cpuio", s.CPUIO.Encode)
		e.Field("openbus", func(e *jx.Encoder) { e.Int(int(s.OpenBus)) })
		e.Field("wram", func(e *jx.Encoder) { encodeBytes(e, s.WRAM) })
		e.Field("regs", func(e *jx.Encoder) { encodeBytes(e, s.Regs) })
		e.Field("sram", func(e *jx.Encoder) { encodeBytes(e, s.SRAM) })
	})
}

func (s *Console) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "mapping":
			s.Mapping, err = d.Str()
		case "cpu":
			err = s.CPU.Decode(d)
		case "cpuio":
			err = s.CPUIO.Decode(d)
		case "openbus":
			err = decodeUint8(d, &s.OpenBus)
		case "wram":
			s.WRAM, err = d.Base64()
		case "regs":
			s.Regs, err = d.Base64()
		case "sram":
			s.SRAM, err = d.Base64()
		default:
			return d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}

func (c *CPU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		for _, r := range []struct {
			name string
			val  uint16
		}{
			{"a", c.A}, {"x", c.X}, {"y", c.Y},
			{"s", c.S}, {"d", c.D}, {"pc", c.PC},
			{"dbr", uint16(c.DB)}, {"pbr", uint16(c.PB)}, {"p", uint16(c.P)},
			{"state", uint16(c.State)}, {"irq", uint16(c.IRQLine)},
		} {
			e.Field(r.name, func(e *jx.Encoder) { e.Int(int(r.val)) })
		}
		e.Field("e", func(e *jx.Encoder) { e.Bool(c.E) })
		e.Field("cycles", func(e *jx.Encoder) { e.Int64(c.Cycles) })
		e.Field("nmi", func(e *jx.Encoder) { e.Bool(c.NMIPending) })
		e.Field("abort", func(e *jx.Encoder) { e.Bool(c.AbortPending) })
	})
}

func (c *CPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "a":
			return decodeUint16(d, &c.A)
		case "x":
			return decodeUint16(d, &c.X)
		case "y":
			return decodeUint16(d, &c.Y)
		case "s":
			return decodeUint16(d, &c.S)
		case "d":
			return decodeUint16(d, &c.D)
		case "pc":
			return decodeUint16(d, &c.PC)
		case "dbr":
			return decodeUint8(d, &c.DB)
		case "pbr":
			return decodeUint8(d, &c.PB)
		case "p":
			return decodeUint8(d, &c.P)
		case "state":
			return decodeUint8(d, &c.State)
		case "irq":
			return decodeUint8(d, &c.IRQLine)
		case "e":
			return decodeBool(d, &c.E)
		case "nmi":
			return decodeBool(d, &c.NMIPending)
		case "abort":
			return decodeBool(d, &c.AbortPending)
		case "cycles":
			v, err := d.Int64()
			c.Cycles = v
			return err
		}
		return d.Skip()
	})
}

func (io *CPUIO) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("regs", func(e *jx.Encoder) { encodeBytes(e, io.Regs) })
		e.Field("nmiflag", func(e *jx.Encoder) { e.Bool(io.NMIFlag) })
		e.Field("timerflag", func(e *jx.Encoder) { e.Bool(io.TimerFlag) })
		e.Field("pads", func(e *jx.Encoder) {
			e.ArrStart()
			for _, p := range io.Pads {
				e.Int(int(p))
			}
			e.ArrEnd()
		})
		e.Field("wramaddr", func(e *jx.Encoder) { e.Int(int(io.WRAMAddr)) })
	})
}

func (io *CPUIO) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "regs":
			v, err := d.Base64()
			io.Regs = v
			return err
		case "nmiflag":
			return decodeBool(d, &io.NMIFlag)
		case "timerflag":
			return decodeBool(d, &io.TimerFlag)
		case "pads":
			i := 0
			return d.Arr(func(d *jx.Decoder) error {
				if i >= len(io.Pads) {
					return fmt.Errorf("too many pads")
				}
				err := decodeUint16(d, &io.Pads[i])
				i++
				return err
			})
		case "wramaddr":
			v, err := d.Int()
			io.WRAMAddr = uint32(v)
			return err
		}
		return d.Skip()
	})
}

// encodeBytes encodes p as a base64 string, nil included.
func encodeBytes(e *jx.Encoder, p []byte) {
	if p == nil {
		e.Str("")
		return
	}
	e.Base64(p)
}

func decodeBool(d *jx.Decoder, v *bool) error {
	b, err := d.Bool()
	*v = b
	return err
}

func decodeUint8(d *jx.Decoder, v *uint8) error {
	n, err := d.Int()
	if err == nil && (n < 0 || n > 0xFF) {
		err = fmt.Errorf("%d out of 8-bit range", n)
	}
	*v = uint8(n)
	return err
}

func decodeUint16(d *jx.Decoder, v *uint16) error {
	n, err := d.Int()
	if err == nil && (n < 0 || n > 0xFFFF) {
		err = fmt.Errorf("%d out of 16-bit range", n)
	}
	*v = uint16(n)
	return err
}
