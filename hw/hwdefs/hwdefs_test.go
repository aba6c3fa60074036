package hwdefs

import "testing"

func TestIRQSourceString(t *testing.T) {
	tests := []struct {
		irq  IRQSource
		want string
	}{
		{0, ""},
		{External, "ext"},
		{Timer, "timer"},
		{External | Timer, "ext|timer"},
	}
	for _, tt := range tests {
		if got := tt.irq.String(); got != tt.want {
			t.Errorf("IRQSource(%d).String() = %q, want %q", tt.irq, got, tt.want)
		}
	}
}
