package hw

// A Debugger controls and monitors a CPU.
type Debugger interface {
	// Reset is called after the CPU has been reset.
	Reset()

	// Trace must be called before each opcode is executed. This is the main
	// entry point for debugging activity, as the debug can stop the CPU
	// execution by making this function blocking until user interaction
	// finishes.
	Trace(pc uint32)

	// Interrupt is called when an interrupt handler is entered. prevpc is
	// the address of the instruction that was about to be executed, curpc is
	// the address of the interrupt handler, and isNMI is true if the interrupt
	// is a non-maskable interrupt.
	Interrupt(prevpc, curpc uint32, isNMI bool)

	// WatchRead/WatchWrite must be called before each memory access. They can
	// be used by the debugger to implement watchpoints and thus intercept
	// memory accesses
	WatchRead(addr uint32)
	WatchWrite(addr uint32, val uint8)

	// Break can be called by the CPU core to force breaking into the debugger.
	Break(msg string)

	// FrameEnd signals the debugger the end of the current frame.
	FrameEnd()
}

type nopDebugger struct{}

func (nopDebugger) Reset() {}
func (nopDebugger) Trace(pc uint32) {}
func (nopDebugger) Interrupt(prevpc, curpc uint32, isNMI bool) {}
func (nopDebugger) WatchRead(addr uint32) {}
func (nopDebugger) WatchWrite(addr uint32, val uint8) {}
func (nopDebugger) Break(msg string) {}
func (nopDebugger) FrameEnd() {}
