// Package cpu implements a cycle-accurate 6502 family core: NMOS 6502,
// Rockwell 65C02 and WDC 65C02. The core owns only its registers and its
// per-cycle Task scheduler; it reads and writes through the memory.Bus
// given to it each Tick and never holds a reference to it between calls.
package cpu

import (
	"fmt"

	"github.com/jmchacon/cpu6502core/memory"
	"github.com/jmchacon/cpu6502core/status"
)

// Variant selects which member of the family a CPU emulates. The three
// variants share one opcode table and differ only in the handful of
// documented behavioral quirks this core models: JMP's indirect-addressing
// page-wrap bug is present on Variant6502 and fixed (at the cost of one
// extra cycle) on both CMOS variants.
type Variant int

const (
	// Variant6502 is the original NMOS part.
	Variant6502 Variant = iota
	// VariantRockwell65C02 is Rockwell's CMOS second-source part.
	VariantRockwell65C02
	// VariantWDC65C02 is the WDC CMOS part.
	VariantWDC65C02
)

// VariantNMOS is an alias for Variant6502, used where the distinction being
// drawn is NMOS-vs-CMOS rather than which CMOS vendor.
const VariantNMOS = Variant6502

func (v Variant) String() string {
	switch v {
	case Variant6502:
		return "6502"
	case VariantRockwell65C02:
		return "65C02 (Rockwell)"
	case VariantWDC65C02:
		return "65C02 (WDC)"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func (v Variant) valid() bool {
	switch v {
	case Variant6502, VariantRockwell65C02, VariantWDC65C02:
		return true
	default:
		return false
	}
}

// ErrIllegalOpcode is returned from Tick/ExecuteNextInstruction/
// ExecuteUntilBreak when the fetched opcode byte has no entry in the
// dispatch table. Illegal and undocumented opcodes are out of scope for this
// core, so hitting one is always treated as a hard stop rather than
// guessed at.
type ErrIllegalOpcode struct {
	Opcode uint8
	At     uint16
}

func (e *ErrIllegalOpcode) Error() string {
	return fmt.Sprintf("illegal opcode 0x%.2X at 0x%.4X", e.Opcode, e.At)
}

// ErrTaskMisuse reports a violation of the Task contract, such as an opcode
// builder producing an empty Chain. It should never surface from correct
// use of this package; its presence here is a defensive boundary, not an
// expected runtime condition.
type ErrTaskMisuse struct {
	Reason string
}

func (e *ErrTaskMisuse) Error() string {
	return "cpu: task misuse: " + e.Reason
}

// CPU is one 6502 family core. The zero value is not usable; construct with
// New.
type CPU struct {
	// Data model: the six architectural registers.
	PC uint16
	S  uint8
	A  uint8
	X  uint8
	Y  uint8
	P  status.Register

	// Cycle counts every bus cycle this core has spent since the last Reset,
	// incremented exactly once per Tick call regardless of how many Task
	// sub-steps that call advances through.
	Cycle uint64

	// Variant fixes which documented quirks this core exhibits; see Variant.
	Variant Variant

	// AddressOutput is the effective address the most recently run
	// addressing Task resolved. Exported so tests and callers can observe
	// what address a Tick is about to touch.
	AddressOutput uint16

	// fixup is set by an indexed addressing Task when adding the index
	// register carried into the high byte of AddressOutput; access.go reads
	// it, and Tick clears it at every opcode fetch.
	fixup bool

	// current is the in-flight instruction's Task, or nil between
	// instructions (the next Tick will fetch a new opcode).
	current Task

	// halted is set by BRK; ExecuteUntilBreak stops once it sees this set.
	halted bool
}

// New constructs a CPU of the given variant with all registers zeroed. Real
// hardware powers up with indeterminate register contents; this core
// deliberately starts deterministic instead, so callers get repeatable runs
// without needing a PowerOn/randomize step. Reset still must be called
// before running instructions, exactly as on real hardware.
func New(variant Variant) (*CPU, error) {
	if !variant.valid() {
		return nil, fmt.Errorf("cpu: invalid variant %d", int(variant))
	}
	return &CPU{Variant: variant}, nil
}

// Reset performs the documented reset procedure: load PC from the reset
// vector at 0xFFFC/0xFFFD, zero S/A/X/Y and the cycle counter, and set
// InterruptDisable with the always-one Unused bit. It does not consume any
// Cycle itself; real reset timing is driven by the host system's reset
// line, which is outside this core's scope.
func (c *CPU) Reset(m memory.Bus) {
	lo := m.Read(0xFFFC)
	hi := m.Read(0xFFFD)
	c.PC = (uint16(hi) << 8) | uint16(lo)
	c.S = 0
	c.A = 0
	c.X = 0
	c.Y = 0
	c.Cycle = 0
	c.P.Set(status.Unused | status.InterruptDisable)
	c.current = nil
	c.halted = false
}

// Tick advances the core by exactly one bus cycle: either fetching the next
// opcode and starting its Chain, or running the next step of the
// already-in-flight instruction. It returns ErrIllegalOpcode if the fetched
// opcode has no dispatch entry; the core is left unable to proceed and
// should not be Ticked again without a Reset.
func (c *CPU) Tick(m memory.Bus) error {
	c.Cycle++
	if c.current == nil {
		at := c.PC
		opcode := m.Read(c.PC)
		c.PC++
		c.fixup = false
		build := opcodeTable[opcode]
		if build == nil {
			return &ErrIllegalOpcode{Opcode: opcode, At: at}
		}
		chain := build(c)
		if chain.Done() {
			return &ErrTaskMisuse{Reason: "opcode builder produced an empty chain"}
		}
		c.current = chain
		return nil
	}
	if c.current.Tick(c, m) {
		c.current = nil
	}
	return nil
}

// ExecuteNextInstruction Ticks until the in-flight instruction (including
// the opcode fetch that starts it) has fully completed.
func (c *CPU) ExecuteNextInstruction(m memory.Bus) error {
	if err := c.Tick(m); err != nil {
		return err
	}
	for c.current != nil {
		if err := c.Tick(m); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteUntilBreak runs whole instructions until a BRK executes or an error
// occurs, and returns the total Cycle count at that point.
func (c *CPU) ExecuteUntilBreak(m memory.Bus) (uint64, error) {
	for !c.halted {
		if err := c.ExecuteNextInstruction(m); err != nil {
			return c.Cycle, err
		}
	}
	return c.Cycle, nil
}
