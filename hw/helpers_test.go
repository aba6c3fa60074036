package hw

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// flatMem is a sparse 16MB memory with no mapping at all.
type flatMem map[uint32]uint8

func (m flatMem) Read8(addr uint32) uint8       { return m[addr] }
func (m flatMem) Peek8(addr uint32) uint8       { return m[addr] }
func (m flatMem) Write8(addr uint32, val uint8) { m[addr] = val }

type dumpline struct {
	off   uint32
	bytes []byte
}

// loadDump parses lines of the form "008000: a9 00 8d 34 12". Empty lines
// and lines starting with # are ignored.
func loadDump(tb testing.TB, dump string) []dumpline {
	tb.Helper()

	var lines []dumpline
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			tb.Fatalf("malformed line: %s", line)
		}

		ioff, err := strconv.ParseUint(off, 16, 24)
		if err != nil {
			tb.Fatalf("malformed offset %s: %s", off, err)
		}
		buf, err := hex.DecodeString(strings.ReplaceAll(octets, " ", ""))
		if err != nil {
			tb.Fatalf("hex decode: %s", err)
		}
		lines = append(lines, dumpline{off: uint32(ioff), bytes: buf})
	}
	if scan.Err() != nil {
		tb.Fatalf("scan error: %s", scan.Err())
	}
	return lines
}

// loadCPUWith returns a CPU connected to a flat memory holding dump. The
// reset vector points to $8000, the CPU has been reset and its cycle
// counter cleared.
func loadCPUWith(tb testing.TB, dump string) (*CPU, flatMem) {
	tb.Helper()

	mem := flatMem{0xFFFC: 0x00, 0xFFFD: 0x80}
	for _, line := range loadDump(tb, dump) {
		for i, b := range line.bytes {
			mem[line.off+uint32(i)] = b
		}
	}

	cpu := NewCPU(mem)
	cpu.Reset(false)
	cpu.Cycles = 0
	if testing.Verbose() {
		cpu.SetTraceOutput(tbwriter{tb})
	}
	return cpu, mem
}

// native switches the CPU to native mode with 16-bit registers.
func native(cpu *CPU) {
	cpu.SetE(false)
	cpu.SetP(cpu.P &^ (AccMem8 | IndexReg8))
}

func stepN(tb testing.TB, cpu *CPU, n int) {
	tb.Helper()
	for i := 0; i < n; i++ {
		if err := cpu.Step(); err != nil {
			tb.Fatalf("step: %s", err)
		}
	}
}

// wantRegs compares the registers with want, cycles excluded.
func wantRegs(tb testing.TB, cpu *CPU, want Regs) {
	tb.Helper()
	if diff := cmp.Diff(want, cpu.Regs(), cmpopts.IgnoreFields(Regs{}, "Cycles")); diff != "" {
		tb.Errorf("registers mismatch (-want +got):\n%s", diff)
	}
}

func wantMem8(tb testing.TB, mem Memory, addr uint32, want uint8) {
	tb.Helper()
	if got := mem.Peek8(addr); got != want {
		tb.Errorf("$%06X = %02X want %02X", addr, got, want)
	}
}

type tbwriter struct {
	testing.TB
}

func (t tbwriter) Write(p []byte) (int, error) {
	t.TB.Helper()
	t.TB.Log(string(bytes.TrimSpace(p)))
	return len(p), nil
}

func TestLoadDump(t *testing.T) {
	got := loadDump(t, `
# comment
008000: a9 00 8d
7e1234: ff
`)
	want := []dumpline{
		{0x008000, []byte{0xa9, 0x00, 0x8d}},
		{0x7e1234, []byte{0xff}},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(dumpline{})); diff != "" {
		t.Errorf("loadDump mismatch (-want +got):\n%s", diff)
	}
}
