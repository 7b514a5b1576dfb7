package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/cpu6502core/memory"
	"github.com/jmchacon/cpu6502core/status"
)

func newCPU(t *testing.T, variant Variant) (*CPU, *memory.Flat) {
	t.Helper()
	c, err := New(variant)
	if err != nil {
		t.Fatalf("New(%v): %v", variant, err)
	}
	m := memory.NewFlat()
	return c, m
}

func TestLoadImmediateFlags(t *testing.T) {
	tests := []struct {
		name     string
		operand  uint8
		wantZero bool
		wantNeg  bool
	}{
		{"zero", 0x00, true, false},
		{"positive", 0x01, false, false},
		{"negative", 0x80, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, m := newCPU(t, Variant6502)
			m.LoadAt(0x0200, []uint8{0xA9, test.operand})
			m.SetResetVector(0x0200)
			c.Reset(m)

			if err := c.ExecuteNextInstruction(m); err != nil {
				t.Fatalf("ExecuteNextInstruction: %v\n%s", err, spew.Sdump(c))
			}
			if c.A != test.operand {
				t.Errorf("LDA #0x%.2X: A got 0x%.2X want 0x%.2X", test.operand, c.A, test.operand)
			}
			if got := c.P.Test(status.Zero); got != test.wantZero {
				t.Errorf("LDA #0x%.2X: Zero got %v want %v\n%s", test.operand, got, test.wantZero, spew.Sdump(c))
			}
			if got := c.P.Test(status.Negative); got != test.wantNeg {
				t.Errorf("LDA #0x%.2X: Negative got %v want %v\n%s", test.operand, got, test.wantNeg, spew.Sdump(c))
			}
			if got, want := c.Cycle, uint64(2); got != want {
				t.Errorf("LDA #0x%.2X: Cycle got %d want %d", test.operand, got, want)
			}
		})
	}
}

func TestAbsoluteIndexedXPageCross(t *testing.T) {
	tests := []struct {
		name       string
		lo, hi     uint8
		x          uint8
		wantAddr   uint16
		wantCycles uint64
	}{
		{"no cross", 0x00, 0x03, 0x02, 0x0302, 4},
		{"cross", 0xFF, 0x00, 0x02, 0x0101, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, m := newCPU(t, Variant6502)
			m.LoadAt(0x0200, []uint8{0xBD, test.lo, test.hi})
			m.Write(test.wantAddr, 0x42)
			m.SetResetVector(0x0200)
			c.Reset(m)
			c.X = test.x

			if err := c.ExecuteNextInstruction(m); err != nil {
				t.Fatalf("ExecuteNextInstruction: %v", err)
			}
			if c.A != 0x42 {
				t.Errorf("LDA abs,X: A got 0x%.2X want 0x42", c.A)
			}
			if got := c.Cycle; got != test.wantCycles {
				t.Errorf("LDA abs,X: Cycle got %d want %d\n%s", got, test.wantCycles, spew.Sdump(c))
			}
		})
	}
}

func TestSubroutineRoundTrip(t *testing.T) {
	c, m := newCPU(t, Variant6502)
	// JSR $0610; BRK
	m.LoadAt(0x0600, []uint8{0x20, 0x10, 0x06, 0x00})
	// RTS
	m.LoadAt(0x0610, []uint8{0x60})
	m.SetResetVector(0x0600)
	c.Reset(m)

	if err := c.ExecuteNextInstruction(m); err != nil {
		t.Fatalf("JSR: %v", err)
	}
	if c.PC != 0x0610 {
		t.Fatalf("after JSR: PC got 0x%.4X want 0x0610", c.PC)
	}
	if err := c.ExecuteNextInstruction(m); err != nil {
		t.Fatalf("RTS: %v", err)
	}
	if c.PC != 0x0603 {
		t.Fatalf("after RTS: PC got 0x%.4X want 0x0603", c.PC)
	}

	if _, err := c.ExecuteUntilBreak(m); err != nil {
		t.Fatalf("ExecuteUntilBreak: %v", err)
	}
	if got, want := c.Cycle, uint64(6+6+7); got != want {
		t.Errorf("JSR+RTS+BRK total Cycle got %d want %d\n%s", got, want, spew.Sdump(c))
	}
}

func TestBranchTakenPageCross(t *testing.T) {
	c, m := newCPU(t, Variant6502)
	m.LoadAt(0x00FD, []uint8{0xF0, 0x7F}) // BEQ +127
	m.SetResetVector(0x00FD)
	c.Reset(m)
	c.P.Assign(status.Zero, true)

	if err := c.ExecuteNextInstruction(m); err != nil {
		t.Fatalf("ExecuteNextInstruction: %v", err)
	}
	if want := uint16(0x017E); c.PC != want {
		t.Errorf("BEQ taken crossing page: PC got 0x%.4X want 0x%.4X", c.PC, want)
	}
	if got, want := c.Cycle, uint64(4); got != want {
		t.Errorf("BEQ taken crossing page: Cycle got %d want %d\n%s", got, want, spew.Sdump(c))
	}
}

func TestIndirectJMPBug(t *testing.T) {
	// JMP ($04FF), placed at 0x0300 so the NMOS wrap target (0x0400, the
	// start of the pointer's own page) never aliases the instruction bytes.
	prog := []uint8{0x6C, 0xFF, 0x04}
	setup := func(m *memory.Flat) {
		m.LoadAt(0x0300, prog)
		m.Write(0x04FF, 0x34) // target low byte
		m.Write(0x0500, 0x12) // correct target high byte
		m.Write(0x0400, 0x99) // what NMOS wrongly reads instead
		m.SetResetVector(0x0300)
	}

	t.Run("NMOS wraps within page", func(t *testing.T) {
		c, m := newCPU(t, Variant6502)
		setup(m)
		c.Reset(m)
		if err := c.ExecuteNextInstruction(m); err != nil {
			t.Fatalf("ExecuteNextInstruction: %v", err)
		}
		if want := uint16(0x9934); c.PC != want {
			t.Errorf("NMOS JMP (ind): PC got 0x%.4X want 0x%.4X", c.PC, want)
		}
		if got, want := c.Cycle, uint64(5); got != want {
			t.Errorf("NMOS JMP (ind): Cycle got %d want %d", got, want)
		}
	})

	t.Run("CMOS fetches correctly", func(t *testing.T) {
		c, m := newCPU(t, VariantWDC65C02)
		setup(m)
		c.Reset(m)
		if err := c.ExecuteNextInstruction(m); err != nil {
			t.Fatalf("ExecuteNextInstruction: %v", err)
		}
		if want := uint16(0x1234); c.PC != want {
			t.Errorf("CMOS JMP (ind): PC got 0x%.4X want 0x%.4X", c.PC, want)
		}
		if got, want := c.Cycle, uint64(6); got != want {
			t.Errorf("CMOS JMP (ind): Cycle got %d want %d", got, want)
		}
	})
}

func TestADCSignedOverflow(t *testing.T) {
	c, m := newCPU(t, Variant6502)
	m.LoadAt(0x0200, []uint8{0x69, 0x50}) // ADC #$50
	m.SetResetVector(0x0200)
	c.Reset(m)
	c.A = 0x50

	if err := c.ExecuteNextInstruction(m); err != nil {
		t.Fatalf("ExecuteNextInstruction: %v", err)
	}

	if got, want := c.A, uint8(0xA0); got != want {
		t.Errorf("ADC #$50 with A=0x50: A got 0x%.2X want 0x%.2X\n%s", got, want, spew.Sdump(c))
	}
	if got := c.P.Test(status.Overflow); !got {
		t.Errorf("ADC #$50 with A=0x50: Overflow got false want true")
	}
	if got := c.P.Test(status.Carry); got {
		t.Errorf("ADC #$50 with A=0x50: Carry got true want false")
	}
	if got := c.P.Test(status.Negative); !got {
		t.Errorf("ADC #$50 with A=0x50: Negative got false want true")
	}
}

func TestPHPPLPRoundTrip(t *testing.T) {
	c, m := newCPU(t, Variant6502)
	// SEC; PHP; CLC; PLP
	m.LoadAt(0x0200, []uint8{0x38, 0x08, 0x18, 0x28})
	m.SetResetVector(0x0200)
	c.Reset(m)

	for i := 0; i < 2; i++ {
		if err := c.ExecuteNextInstruction(m); err != nil {
			t.Fatalf("ExecuteNextInstruction %d: %v", i, err)
		}
	}
	pushed := status.Flags(m.Read(0x0100 | uint16(c.S+1)))

	for i := 0; i < 2; i++ {
		if err := c.ExecuteNextInstruction(m); err != nil {
			t.Fatalf("ExecuteNextInstruction %d: %v", i, err)
		}
	}
	restored := c.P.Get()

	if diff := deep.Equal(restored, pushed); diff != nil {
		t.Errorf("PLP did not restore the flags PHP pushed: %v\n%s", diff, spew.Sdump(c))
	}
	if restored&status.Carry == 0 {
		t.Errorf("PLP: Carry got false want true (SEC ran before PHP)")
	}
}
