package debugger

import (
	"fmt"
	"slices"
)

type stackFrameFlag uint8

const (
	sffNone stackFrameFlag = iota
	sffNMI
	sffIRQ
	sffBRK
)

type stackFrame struct {
	src    uint32
	target uint32
	ret    uint32
	flag   stackFrameFlag
}

type callStack []stackFrame

func (cs *callStack) push(src, dst, ret uint32, flag stackFrameFlag) {
	*cs = append(*cs, stackFrame{
		src:    src,
		target: dst,
		ret:    ret,
		flag:   flag,
	})
}

func (cs *callStack) len() int {
	return len(*cs)
}

func (cs *callStack) pop() {
	if cs.len() == 0 {
		return
	}
	*cs = (*cs)[:cs.len()-1]
}

// unwind drops the innermost frame returning to pc, and all the frames above
// it. Without such a frame (the program tampered with its return address),
// only the top frame is dropped.
func (cs *callStack) unwind(pc uint32) {
	for i := cs.len() - 1; i >= 0; i-- {
		if (*cs)[i].ret == pc {
			*cs = (*cs)[:i]
			return
		}
	}
	cs.pop()
}

// trim keeps the n outermost frames.
func (cs *callStack) trim(n int) {
	if cs.len() > n {
		*cs = (*cs)[:n]
	}
}

func (cs *callStack) reset() {
	*cs = (*cs)[:0]
}

// FrameInfo describes a call frame: the entry point of the function and the
// address currently executed in it.
type FrameInfo [2]string

func (cs *callStack) build(pc uint32) []FrameInfo {
	nfos := make([]FrameInfo, 0, cs.len()+1)
	var curf *stackFrame
	for i, f := range *cs {
		if i > 0 {
			curf = &((*cs)[i-1])
		}
		nfos = slices.Insert(nfos, 0, FrameInfo{
			cs.entryPoint(curf),
			"$" + addr24(f.src),
		})
	}

	// Current frame
	curf = nil
	if cs.len() > 0 {
		curf = &((*cs)[cs.len()-1])
	}

	return slices.Insert(nfos, 0, FrameInfo{
		cs.entryPoint(curf),
		"$" + addr24(pc),
	})
}

func (callStack) entryPoint(f *stackFrame) string {
	if f == nil {
		return "[bottom of stack]"
	}

	str := addr24(f.target)
	switch f.flag {
	case sffNMI:
		return "[nmi] $" + str
	case sffIRQ:
		return "[irq] $" + str
	case sffBRK:
		return "[brk] $" + str
	default:
		return str
	}
}

func addr24(addr uint32) string {
	return fmt.Sprintf("%02X:%04X", uint8(addr>>16), uint16(addr))
}
