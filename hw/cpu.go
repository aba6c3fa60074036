package hw

import (
	"fmt"
	"io"

	"snestor/emu/log"
	"snestor/hw/hwdefs"
)

// Memory is the 24-bit address space as seen by the CPU.
type Memory interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, val uint8)
	Peek8(addr uint32) uint8
}

// Interrupt vectors. The emulation-mode table is the one of the 6502, with
// the addition of COP. In emulation mode, BRK shares the IRQ vector.
type vector struct{ native, emu uint16 }

var (
	copVector   = vector{0xFFE4, 0xFFF4}
	brkVector   = vector{0xFFE6, 0xFFFE}
	abortVector = vector{0xFFE8, 0xFFF8}
	nmiVector   = vector{0xFFEA, 0xFFFA}
	irqVector   = vector{0xFFEE, 0xFFFE}
)

const ResetVector = uint16(0xFFFC)

// State is the execution state of the CPU.
type State uint8

const (
	Fetching    State = iota // ready to fetch the next opcode
	Dispatching              // opcode fetched, instruction running
	Waiting                  // WAI: waiting for an interrupt
	Stopped                  // STP: halted until reset
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Dispatching:
		return "dispatching"
	case Waiting:
		return "waiting"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", s)
}

// UnknownOpcodeError is returned by Step when the dispatch table has no
// entry for an opcode.
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint32 // address of the opcode
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %02X at %02x:%04x", e.Opcode, e.PC>>16, e.PC&0xFFFF)
}

type CPU struct {
	Bus Memory
	IO  CPUIO

	// Non-nil when execution tracing is enabled.
	tracer *tracer
	dbg    Debugger

	Cycles int64 // bus cycles, internal operations included

	// registers
	A, X, Y uint16
	S, D    uint16
	PC      uint16
	DB, PB  uint8
	P       P
	E       bool // emulation mode

	state State

	// interrupt lines
	nmiPending   bool
	abortPending bool
	irqLine      hwdefs.IRQSource
}

// NewCPU creates a new CPU connected to bus. The CPU is in its power-up
// state but Reset must be called before running it, in order to load the
// reset vector.
func NewCPU(bus Memory) *CPU {
	cpu := &CPU{
		Bus: bus,
		dbg: nopDebugger{},
	}
	cpu.E = true
	cpu.setP(AccMem8 | IndexReg8 | IntDis)
	cpu.S = 0x01FF
	cpu.IO.cpu = cpu
	return cpu
}

// InitBus maps the registers handled by the CPU itself (math unit,
// interrupt control, WRAM port) in the bus register space.
func (c *CPU) InitBus(b *Bus) {
	c.IO.initBus(b)
}

// Reset puts the CPU in emulation mode and loads the reset vector. A soft
// reset preserves A, X, Y and the low byte of S.
func (c *CPU) Reset(soft bool) {
	if !soft {
		c.A, c.X, c.Y = 0, 0, 0
		c.S = 0x01FD
		c.irqLine = 0
	} else {
		c.S = 0x0100 | (c.S-3)&0xFF
	}

	c.E = true
	c.D = 0
	c.DB = 0
	c.PB = 0
	c.P &^= Decimal
	c.setP(c.P | AccMem8 | IndexReg8 | IntDis)

	c.nmiPending = false
	c.abortPending = false
	c.state = Fetching
	c.IO.reset()

	// The vector is read as regular bus accesses.
	lo := c.read8(uint32(ResetVector))
	hi := c.read8(uint32(ResetVector + 1))
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.dbg.Reset()

	log.ModCPU.InfoZ("reset").
		Bool("soft", soft).
		Hex16("pc", c.PC).
		End()
}

func (c *CPU) State() State { return c.state }

// PC24 returns the 24-bit address of the next instruction.
func (c *CPU) PC24() uint32 {
	return uint32(c.PB)<<16 | uint32(c.PC)
}

// AddLogContext implements log.ContextAdder.
func (c *CPU) AddLogContext(entry *log.EntryZ) {
	entry.Addr24("pc", c.PC24())
}

// Step executes a single instruction, or enters an interrupt handler if one
// is pending. A stopped or waiting CPU just burns one cycle.
func (c *CPU) Step() error {
	switch c.state {
	case Stopped:
		c.idle()
		return nil
	case Waiting:
		if !c.nmiPending && !c.abortPending && c.irqLine == 0 {
			c.idle()
			return nil
		}
		c.state = Fetching
		log.ModCPU.DebugZ("wake up").
			Bool("nmi", c.nmiPending).
			Stringer("irq", c.irqLine).
			End()
	}

	if c.abortPending {
		c.abortPending = false
		c.hwInterrupt(abortVector, false)
		return nil
	}
	if c.nmiPending {
		c.nmiPending = false
		c.hwInterrupt(nmiVector, true)
		return nil
	}
	if c.irqLine != 0 && !c.P.I() {
		c.hwInterrupt(irqVector, false)
		return nil
	}

	c.traceOp()

	pc := c.PC24()
	opcode := c.fetch8()
	def := &ops[opcode]
	if def.exec == nil {
		err := &UnknownOpcodeError{Opcode: opcode, PC: pc}
		c.dbg.Break(err.Error())
		return err
	}

	c.state = Dispatching
	oper := c.resolve(def.mode, def.access)
	def.exec(c, oper)
	if c.state == Dispatching {
		c.state = Fetching
	}
	return nil
}

// Run executes instructions until at least ncycles cycles have elapsed. It
// returns early if the CPU is stopped.
func (c *CPU) Run(ncycles int64) error {
	until := c.Cycles + ncycles
	for c.Cycles < until {
		if err := c.Step(); err != nil {
			return err
		}
		if c.state == Stopped {
			log.ModCPU.WarnZ("CPU stopped").
				Addr24("pc", c.PC24()).
				End()
			return nil
		}
	}
	return nil
}

/* interrupt lines */

// NMI latches a non-maskable interrupt, serviced before the next
// instruction.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// Abort latches the ABORT input. The current instruction completes, the
// handler is entered before the next one.
func (c *CPU) Abort() {
	c.abortPending = true
}

// SetIRQSource pulls the IRQ line low on behalf of src.
func (c *CPU) SetIRQSource(src hwdefs.IRQSource) { c.irqLine |= src }

// ClearIRQSource releases the IRQ line for src.
func (c *CPU) ClearIRQSource(src hwdefs.IRQSource) { c.irqLine &^= src }

func (c *CPU) IRQLine() hwdefs.IRQSource { return c.irqLine }

// hwInterrupt enters an NMI or IRQ handler.
func (c *CPU) hwInterrupt(v vector, nmi bool) {
	prevpc := c.PC24()
	c.idle()
	c.idle()
	c.interrupt(v, false)
	c.dbg.Interrupt(prevpc, c.PC24(), nmi)
}

// interrupt pushes the return context and jumps through v. brk selects the
// value of the B flag pushed in emulation mode.
func (c *CPU) interrupt(v vector, brk bool) {
	if !c.E {
		c.push8(c.PB)
	}
	c.push16(c.PC)

	p := c.P
	if c.E {
		if brk {
			p |= Break
		} else {
			p &^= Break
		}
		p |= 0x20 // unused, always reads as 1
	}
	c.push8(uint8(p))

	c.P |= IntDis
	c.P &^= Decimal
	c.PB = 0

	addr := v.native
	if c.E {
		addr = v.emu
	}
	lo := c.read8(uint32(addr))
	hi := c.read8(uint32(addr + 1))
	c.PC = uint16(hi)<<8 | uint16(lo)
}

/* bus access */

func (c *CPU) read8(addr uint32) uint8 {
	addr &= 0xFFFFFF
	c.dbg.WatchRead(addr)
	c.Cycles++
	return c.Bus.Read8(addr)
}

func (c *CPU) write8(addr uint32, val uint8) {
	addr &= 0xFFFFFF
	c.dbg.WatchWrite(addr, val)
	c.Cycles++
	c.Bus.Write8(addr, val)
}

// idle is an internal operation cycle.
func (c *CPU) idle() {
	c.Cycles++
}

func (c *CPU) fetch8() uint8 {
	val := c.read8(c.PC24())
	c.PC++
	return val
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetch24() uint32 {
	lo := c.fetch16()
	hi := c.fetch8()
	return uint32(hi)<<16 | uint32(lo)
}

// load reads a byte or a word at the operand address.
func (c *CPU) load(op operand, wide bool) uint16 {
	lo := c.read8(op.addr)
	if !wide {
		return uint16(lo)
	}
	hi := c.read8(op.at(1))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) store(op operand, val uint16, wide bool) {
	c.write8(op.addr, uint8(val))
	if wide {
		c.write8(op.at(1), uint8(val>>8))
	}
}

/* stack operations */

// In emulation mode the stack is confined to page 1.
func (c *CPU) push8(val uint8) {
	c.write8(uint32(c.S), val)
	if c.E {
		c.S = 0x0100 | uint16(uint8(c.S)-1)
	} else {
		c.S--
	}
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	if c.E {
		c.S = 0x0100 | uint16(uint8(c.S)+1)
	} else {
		c.S++
	}
	return c.read8(uint32(c.S))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// Instructions introduced with the 65816 (PEA, PEI, PER, PHD, PLD, JSL,
// RTL, JSR (a,x)) don't confine S in page 1 while they run. S is put back
// in page 1 once they're done.
func (c *CPU) pushN(val uint8) {
	c.write8(uint32(c.S), val)
	c.S--
}

func (c *CPU) pushN16(val uint16) {
	c.pushN(uint8(val >> 8))
	c.pushN(uint8(val))
}

func (c *CPU) pullN() uint8 {
	c.S++
	return c.read8(uint32(c.S))
}

func (c *CPU) pullN16() uint16 {
	lo := c.pullN()
	hi := c.pullN()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fixS() {
	if c.E {
		c.S = 0x0100 | c.S&0xFF
	}
}

/* tracing / debugging */

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write(c.snapshotRegs())
	}
	c.dbg.Trace(c.PC24())
}

func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	c.dbg = dbg
}
