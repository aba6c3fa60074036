package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type regInfo struct {
	offset uint16
	regPtr any
}

type tagOpts map[string]string

func parseTag(tag string) tagOpts {
	opts := make(tagOpts)
	for _, kv := range strings.Split(tag, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		k, v, _ := strings.Cut(kv, "=")
		opts[k] = v
	}
	return opts
}

func (o tagOpts) uint(key string, bits int) (uint64, bool, error) {
	s, ok := o[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s=%q: %w", key, s, err)
	}
	return v, true, nil
}

// cbName returns the name of the method to bind for the given callback
// option, or "" if the option isn't present.
func (o tagOpts) cbName(key, prefix, field string) string {
	v, ok := o[key]
	if !ok {
		return ""
	}
	if v != "" {
		return v
	}
	return prefix + strings.ToUpper(field)
}

func structValue(ptr any) (reflect.Value, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("hwio: expected pointer to struct, got %T", ptr)
	}
	return v, nil
}

func method[T any](v reflect.Value, name string) (T, error) {
	var zero T
	m := v.MethodByName(name)
	if !m.IsValid() {
		return zero, fmt.Errorf("hwio: method %s not found on %s", name, v.Type())
	}
	fn, ok := m.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("hwio: method %s has type %s, want %T", name, m.Type(), zero)
	}
	return fn, nil
}

// InitRegs initializes all Reg8 and Device fields of the structure pointed by
// ptr according to their hwio struct tag. Besides offset and bank (see
// Table.MapBank), the tag accepts:
//
//	reset=0x12      Initial register value.
//	rwmask=0xF0     Bits writable by the CPU, all by default.
//	openbus=0x70    Bits left floating on reads, see Reg8.OpenMask.
//	readonly        Writes are ignored.
//	writeonly       Reads don't drive the data bus.
//	size=0x10       Device size, mandatory for devices.
//	rcb, pcb, wcb   Bind the read, peek and write callbacks to the methods
//	                ReadNAME, PeekNAME and WriteNAME, where NAME is the
//	                upper-cased field name. rcb=Method binds Method instead.
func InitRegs(ptr any) error {
	v, err := structValue(ptr)
	if err != nil {
		return err
	}
	s := v.Elem()
	for i := 0; i < s.NumField(); i++ {
		field := s.Type().Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)

		var flags RWFlags
		if _, ok := opts["readonly"]; ok {
			flags |= ReadOnlyFlag
		}
		if _, ok := opts["writeonly"]; ok {
			flags |= WriteOnlyFlag
		}

		switch reg := s.Field(i).Addr().Interface().(type) {
		case *Reg8:
			if err := initReg8(v, field.Name, reg, opts, flags); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
		case *Device:
			if err := initDevice(v, field.Name, reg, opts, flags); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
		default:
			return fmt.Errorf("hwio: unsupported field type %s for %s", field.Type, field.Name)
		}
	}
	return nil
}

func MustInitRegs(ptr any) {
	if err := InitRegs(ptr); err != nil {
		panic(err)
	}
}

func initReg8(v reflect.Value, name string, reg *Reg8, opts tagOpts, flags RWFlags) error {
	reg.Name = name
	reg.Flags = flags

	reset, _, err := opts.uint("reset", 8)
	if err != nil {
		return err
	}
	reg.Value = uint8(reset)

	rwmask, found, err := opts.uint("rwmask", 8)
	if err != nil {
		return err
	}
	if found {
		reg.RoMask = ^uint8(rwmask)
	}

	openbus, _, err := opts.uint("openbus", 8)
	if err != nil {
		return err
	}
	reg.OpenMask = uint8(openbus)

	if n := opts.cbName("rcb", "Read", name); n != "" {
		if reg.ReadCb, err = method[func(uint8) uint8](v, n); err != nil {
			return err
		}
	}
	if n := opts.cbName("pcb", "Peek", name); n != "" {
		if reg.PeekCb, err = method[func(uint8) uint8](v, n); err != nil {
			return err
		}
	}
	if n := opts.cbName("wcb", "Write", name); n != "" {
		if reg.WriteCb, err = method[func(uint8, uint8)](v, n); err != nil {
			return err
		}
	}
	return nil
}

func initDevice(v reflect.Value, name string, dev *Device, opts tagOpts, flags RWFlags) error {
	dev.Name = name
	dev.Flags = flags

	size, found, err := opts.uint("size", 16)
	if err != nil {
		return err
	}
	if !found || size == 0 {
		return fmt.Errorf("hwio: device requires a non-zero size")
	}
	dev.Size = int(size)

	if n := opts.cbName("rcb", "Read", name); n != "" {
		if dev.ReadCb, err = method[func(uint16) uint8](v, n); err != nil {
			return err
		}
	}
	if n := opts.cbName("pcb", "Peek", name); n != "" {
		if dev.PeekCb, err = method[func(uint16) uint8](v, n); err != nil {
			return err
		}
	}
	if n := opts.cbName("wcb", "Write", name); n != "" {
		if dev.WriteCb, err = method[func(uint16, uint8)](v, n); err != nil {
			return err
		}
	}
	return nil
}

// bankGetRegs returns the registers of bank bankNum declared in the structure
// pointed by ptr, along with their offsets.
func bankGetRegs(ptr any, bankNum int) ([]regInfo, error) {
	v, err := structValue(ptr)
	if err != nil {
		return nil, err
	}
	s := v.Elem()

	var regs []regInfo
	for i := 0; i < s.NumField(); i++ {
		field := s.Type().Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)

		off, found, err := opts.uint("offset", 16)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field.Name, err)
		}
		if !found {
			continue
		}
		bank, _, err := opts.uint("bank", 8)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field.Name, err)
		}
		if int(bank) != bankNum {
			continue
		}
		regs = append(regs, regInfo{
			offset: uint16(off),
			regPtr: s.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}
