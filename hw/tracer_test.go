package hw

import (
	"bytes"
	"strings"
	"testing"
)

func BenchmarkDisasmOpString(b *testing.B) {
	const want = `00C000  5C F5 C5 01  JML $01C5F5        `

	op := DisasmOp{
		Opcode: "JML",
		Oper:   "$01C5F5",
		Buf:    []byte{0x5c, 0xf5, 0xc5, 0x01},
		PC:     0x00C000,
	}

	var opbytes []byte
	for i := 0; i < b.N; i++ {
		opbytes = op.Bytes()
	}

	if string(opbytes) != want {
		b.Fatalf("\ngot:  \"%s\"\nwant: \"%s\"\n", string(opbytes), want)
	}
}

func TestDisasm(t *testing.T) {
	tests := []struct {
		dump   string
		native bool
		want   string
	}{
		{`008000: a9 34 12`, false, "LDA #$34"},
		{`008000: a9 34 12`, true, "LDA #$1234"},
		{`008000: a2 34 12`, true, "LDX #$1234"},
		{`008000: e2 30`, false, "SEP #$30"},
		{`008000: f4 34 12`, false, "PEA #$1234"},
		{`008000: 54 7f 7e`, false, "MVN $7E,$7F"},
		{`008000: 80 fe`, false, "BRA $8000"},
		{`008000: 82 fd ff`, false, "BRL $8000"},
		{`008000: dc 34 12`, false, "JML [$1234]"},
		{`008000: 7c 34 12`, false, "JMP ($1234,X)"},
		{`008000: bf 56 34 12`, false, "LDA $123456,X"},
		{`008000: b7 10`, false, "LDA [$10],Y"},
		{`008000: b3 03`, false, "LDA ($03,S),Y"},
		{`008000: 0a`, false, "ASL A"},
		{`008000: ea`, false, "NOP"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cpu, _ := loadCPUWith(t, tt.dump)
			if tt.native {
				native(cpu)
			}
			op := cpu.Disasm(0x008000)
			got := strings.TrimSpace(op.Opcode + " " + op.Oper)
			if got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestTraceFormat(t *testing.T) {
	want := []string{
		`008000  A9 32        LDA #$32           A:0000 X:0000 Y:0000 S:01FD D:0000 B:00 P:nvMXdIzc E CYC:0`,
		`008002  8D 00 20     STA $2000          A:0032 X:0000 Y:0000 S:01FD D:0000 B:00 P:nvMXdIzc E CYC:2`,
	}

	var out bytes.Buffer
	cpu, _ := loadCPUWith(t, `008000: a9 32 8d 00 20`)
	cpu.SetTraceOutput(&out)

	stepN(t, cpu, 2)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}
	for i := range lines {
		if strings.TrimSpace(lines[i]) != want[i] {
			t.Errorf("line %d:\ngot:  %q\nwant: %q", i, lines[i], want[i])
		}
	}
}
