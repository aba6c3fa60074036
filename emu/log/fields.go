package log

import (
	"fmt"
	"strconv"
)

type FieldType uint8

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeAddr24
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeStringer
)

// ZField is a field of an EntryZ. Only the member matching Type is set.
type ZField struct {
	Type FieldType
	Key  string

	String    string
	Integer   uint64
	Error     error
	Interface fmt.Stringer
}

// Value formats the field value. Hexadecimal values are zero-padded, 24-bit
// addresses are written bank:offset.
func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Integer != 0)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return string(appendHex(nil, f.Integer, 2))
	case FieldTypeHex16:
		return string(appendHex(nil, f.Integer, 4))
	case FieldTypeAddr24:
		buf := make([]byte, 0, 7)
		buf = appendHex(buf, f.Integer>>16, 2)
		buf = append(buf, ':')
		return string(appendHex(buf, f.Integer&0xFFFF, 4))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeStringer:
		if f.Interface == nil {
			return "<nil>"
		}
		return f.Interface.String()
	}
	return ""
}

const hexdigits = "0123456789abcdef"

func appendHex(dst []byte, v uint64, ndigits int) []byte {
	for i := ndigits - 1; i >= 0; i-- {
		dst = append(dst, hexdigits[v>>(4*i)&0xF])
	}
	return dst
}
