package log

import (
	"bytes"
	"strings"
	"testing"
)

type pcContext struct{ pc uint32 }

func (c *pcContext) AddLogContext(z *EntryZ) { z.Addr24("pc", c.pc) }

func TestEntryZ(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)

	ctx := &pcContext{pc: 0x808123}
	AddContext(ctx)
	defer RemoveContext(ctx)

	ModMem.WarnZ("write to ROM").Addr24("addr", 0x00C000).Hex8("val", 0x5a).End()

	out := buf.String()
	for _, want := range []string{"write to ROM", "00:c000", "val=5a", "80:8123", "_mod=mem"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q doesn't contain %q", out, want)
		}
	}
}

func TestModuleMask(t *testing.T) {
	if ModCPU.Enabled(DebugLevel) {
		t.Fatalf("cpu debug logs should be disabled by default")
	}
	EnableDebugModules(ModCPU.Mask())
	defer DisableDebugModules(ModCPU.Mask())

	if !ModCPU.Enabled(DebugLevel) {
		t.Errorf("cpu debug logs should be enabled")
	}
	if ModMem.Enabled(DebugLevel) {
		t.Errorf("mem debug logs should be disabled")
	}
	if z := ModMem.DebugZ("nope"); z != nil {
		t.Errorf("disabled module returned non-nil entry")
	}

	// A nil entry accepts all calls.
	var z *EntryZ
	z.String("k", "v").Hex16("h", 1).End()
}

func TestDisable(t *testing.T) {
	Disable()
	defer Enable()

	if ModEmu.Enabled(ErrorLevel) {
		t.Errorf("errors should not be logged when logging is disabled")
	}
}

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("cart")
	if !ok || mod != ModCart {
		t.Errorf("ModuleByName(cart) = %v, %t", mod, ok)
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName should not find the placeholder module")
	}
}
