package log

import (
	"fmt"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a structured log entry that doesn't allocate when the module it
// belongs to is disabled: every method accepts a nil receiver.
type EntryZ struct {
	lvl   Level
	mod   Module
	msg   string
	zfbuf [maxZFields]ZField
	zfidx int
}

var entryzPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	z := entryzPool.Get().(*EntryZ)
	z.zfidx = 0
	return z
}

func (z *EntryZ) field(key string, typ FieldType) *ZField {
	if z.zfidx == len(z.zfbuf) {
		return nil
	}
	f := &z.zfbuf[z.zfidx]
	*f = ZField{Type: typ, Key: key}
	z.zfidx++
	return f
}

func (z *EntryZ) String(key, val string) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeString); f != nil {
			f.String = val
		}
	}
	return z
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	var v uint64
	if val {
		v = 1
	}
	return z.integer(key, FieldTypeBool, v)
}

func (z *EntryZ) integer(key string, typ FieldType, val uint64) *EntryZ {
	if z != nil {
		if f := z.field(key, typ); f != nil {
			f.Integer = val
		}
	}
	return z
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ   { return z.integer(key, FieldTypeHex8, uint64(val)) }
func (z *EntryZ) Hex16(key string, val uint16) *EntryZ { return z.integer(key, FieldTypeHex16, uint64(val)) }

// Addr24 logs a 24-bit bus address as bank:offset.
func (z *EntryZ) Addr24(key string, val uint32) *EntryZ {
	return z.integer(key, FieldTypeAddr24, uint64(val&0xFFFFFF))
}

func (z *EntryZ) Uint8(key string, val uint8) *EntryZ { return z.integer(key, FieldTypeUint, uint64(val)) }
func (z *EntryZ) Int(key string, val int) *EntryZ     { return z.integer(key, FieldTypeInt, uint64(val)) }
func (z *EntryZ) Int64(key string, val int64) *EntryZ { return z.integer(key, FieldTypeInt, uint64(val)) }

func (z *EntryZ) Error(key string, err error) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeError); f != nil {
			f.Error = err
		}
	}
	return z
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	if z != nil {
		if f := z.field(key, FieldTypeStringer); f != nil {
			f.Interface = s
		}
	}
	return z
}

// End emits the entry. The entry must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}
	for _, c := range contexts {
		c.AddLogContext(z)
	}

	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = z.mod.String()
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	case ErrorLevel:
		entry.Error(z.msg)
	case FatalLevel:
		entry.Fatal(z.msg)
	case PanicLevel:
		entry.Panic(z.msg)
	}

	clear(z.zfbuf[:z.zfidx])
	entryzPool.Put(z)
}
