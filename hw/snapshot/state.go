// Package snapshot defines the serialized state of the console, as saved and
// restored by save states.
package snapshot

// Version is bumped each time the layout of the snapshot changes.
const Version = 1

type Console struct {
	Version int
	Mapping string // cartridge layout name

	CPU     CPU
	CPUIO   CPUIO
	OpenBus uint8
	WRAM    []byte
	Regs    []byte // register space buffer
	SRAM    []byte
}

type CPU struct {
	A, X, Y uint16
	S, D    uint16
	PC      uint16
	DB, PB  uint8
	P       uint8
	E       bool

	Cycles int64
	State  uint8

	NMIPending   bool
	AbortPending bool
	IRQLine      uint8
}

type CPUIO struct {
	Regs      []uint8 // latched $4200-$4217 register values
	NMIFlag   bool
	TimerFlag bool
	Pads      [4]uint16
	WRAMAddr  uint32
}
