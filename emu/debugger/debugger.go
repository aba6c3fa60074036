// Package debugger implements a passive hw.Debugger: it follows the call
// stack of the running program, reports watched memory accesses and records
// the reasons the CPU broke into the debugger.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"snestor/emu/log"
	"snestor/hw"
)

// Access selects which memory accesses trigger a watchpoint.
type Access uint8

const (
	OnRead Access = 1 << iota
	OnWrite
)

func (a Access) String() string {
	switch a {
	case OnRead:
		return "r"
	case OnWrite:
		return "w"
	case OnRead | OnWrite:
		return "rw"
	}
	return "-"
}

// maxDepth bounds the call stack, programs discarding their return addresses
// would otherwise make it grow forever.
const maxDepth = 256

// noOpcode is any opcode updateStack does not act upon.
const noOpcode = 0xEA

type Debugger struct {
	cpu *hw.CPU
	bus *hw.Bus

	cstack     callStack
	prevPC     uint32
	prevOpcode uint8
	resetPC    uint32

	watches map[hw.Location]Access
	hits    map[hw.Location]int
	breaks  []string
}

// New returns a debugger for cpu, resolving watched addresses through bus.
// It still has to be attached with (*emu.Console).SetDebugger or
// (*hw.CPU).SetDebugger.
func New(cpu *hw.CPU, bus *hw.Bus) *Debugger {
	return &Debugger{
		cpu:        cpu,
		bus:        bus,
		prevOpcode: noOpcode,
		watches:    make(map[hw.Location]Access),
		hits:       make(map[hw.Location]int),
	}
}

// Watch adds a watchpoint. Since it applies to the memory location addr
// resolves to, accesses through any mirror of addr trigger it.
func (d *Debugger) Watch(addr uint32, acc Access) error {
	loc := d.bus.Resolve(addr)
	if loc.Area == hw.Unmapped {
		return fmt.Errorf("can't watch %s: unmapped address", addr24(addr))
	}
	d.watches[loc] |= acc
	return nil
}

// Hits returns how many accesses triggered the watchpoint set on addr.
func (d *Debugger) Hits(addr uint32) int {
	return d.hits[d.bus.Resolve(addr)]
}

// Breaks returns the reasons the CPU broke into the debugger, oldest first.
func (d *Debugger) Breaks() []string { return d.breaks }

// ResetPC returns the address the CPU started from at last reset.
func (d *Debugger) ResetPC() uint32 { return d.resetPC }

// CallStack returns the frames of the call stack, innermost first.
func (d *Debugger) CallStack() []FrameInfo {
	return d.cstack.build(d.cpu.PC24())
}

// Depth returns the number of calls currently tracked.
func (d *Debugger) Depth() int { return d.cstack.len() }

func (d *Debugger) Reset() {
	// Reads PC at reset vector.
	d.resetPC = d.cpu.PC24()
	d.cstack.reset()
	d.prevOpcode = noOpcode
}

// Trace is called before each opcode is executed.
func (d *Debugger) Trace(pc uint32) {
	d.updateStack(pc)

	d.prevPC = pc
	d.prevOpcode = d.cpu.Bus.Peek8(pc)
}

// updateStack accounts for the instruction at prevPC, now that its
// destination pc is known.
func (d *Debugger) updateStack(pc uint32) {
	switch d.prevOpcode {
	case 0x20, 0xFC: // JSR
		d.cstack.push(d.prevPC, pc, inBank(d.prevPC, 3), sffNone)
	case 0x22: // JSL
		d.cstack.push(d.prevPC, pc, inBank(d.prevPC, 4), sffNone)
	case 0x40, 0x60, 0x6B: // RTI RTS RTL
		d.cstack.unwind(pc)
	}
}

func (d *Debugger) Interrupt(prevpc, curpc uint32, isNMI bool) {
	var flag stackFrameFlag
	src := d.prevPC
	switch {
	case d.prevOpcode == 0x00 || d.prevOpcode == 0x02: // BRK COP
		flag = sffBRK
	default:
		src = prevpc
		// A hardware interrupt may enter right after a call or return,
		// whose destination is prevpc.
		d.updateStack(prevpc)
		flag = sffIRQ
		if isNMI {
			flag = sffNMI
		}
	}
	d.prevOpcode = noOpcode

	d.cstack.push(src, curpc, prevpc, flag)
}

func (d *Debugger) WatchRead(addr uint32) {
	if len(d.watches) != 0 {
		d.watch(addr, 0, OnRead)
	}
}

func (d *Debugger) WatchWrite(addr uint32, val uint8) {
	if len(d.watches) != 0 {
		d.watch(addr, val, OnWrite)
	}
}

func (d *Debugger) watch(addr uint32, val uint8, acc Access) {
	loc := d.bus.Resolve(addr)
	if d.watches[loc]&acc == 0 {
		return
	}
	d.hits[loc]++

	e := log.ModDbg.InfoZ("watchpoint").
		Stringer("access", acc).
		Addr24("addr", addr).
		Stringer("loc", loc)
	if acc == OnWrite {
		e = e.Hex8("val", val)
	}
	e.End()
}

// Break can be called by the CPU core to force breaking into the debugger.
func (d *Debugger) Break(msg string) {
	d.breaks = append(d.breaks, msg)
	log.ModDbg.WarnZ("break").
		String("reason", msg).
		Int("depth", d.cstack.len()).
		End()
}

func (d *Debugger) FrameEnd() {
	if d.cstack.len() > maxDepth {
		log.ModDbg.DebugZ("call stack too deep, trimmed").
			Int("depth", d.cstack.len()).
			End()
		d.cstack.trim(maxDepth)
	}
}

// inBank adds n to the 16-bit part of addr, staying in its bank.
func inBank(addr uint32, n uint16) uint32 {
	return addr&0xFF0000 | uint32(uint16(addr)+n)
}

// ParseWatch parses a watchpoint as given on the command line: a 24-bit hex
// address optionally followed by ":r", ":w" or ":rw" (default).
func ParseWatch(s string) (uint32, Access, error) {
	str, mode, found := strings.Cut(s, ":")
	str = strings.TrimPrefix(strings.TrimPrefix(str, "$"), "0x")
	addr, err := strconv.ParseUint(str, 16, 24)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid watch address %q", s)
	}

	acc := OnRead | OnWrite
	if found {
		switch strings.ToLower(mode) {
		case "r":
			acc = OnRead
		case "w":
			acc = OnWrite
		case "rw", "wr":
		default:
			return 0, 0, fmt.Errorf("invalid watch access %q (want r, w or rw)", mode)
		}
	}
	return uint32(addr), acc, nil
}
