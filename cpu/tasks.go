package cpu

import "github.com/jmchacon/cpu6502core/memory"

// Task is a single state machine advancing one bus cycle per Tick call. Every
// addressing mode, every read/write/RMW access, and every multi-cycle
// instruction (branches, JSR, RTS, RTI, BRK) is a Task. Tasks are tagged
// variants (plain structs with an explicit step field) rather than closures,
// so the per-instruction cycle budget is statically inspectable by reading
// the type's Tick switch.
type Task interface {
	// Done reports whether this Task has completed all its steps. Must be
	// idempotent and safe to call before the first Tick.
	Done() bool
	// Tick advances this Task by one step, given the CPU and the memory bus
	// for this cycle only (never retained past the call). It returns
	// consumed=true if this call performed a real bus access — the caller
	// must stop and let the outer CPU.Tick return. It returns consumed=false
	// for a free sub-step (no bus access) that the caller should immediately
	// follow with another call, either to this same Task (if not yet Done)
	// or to the next Task in a Chain. Must not be called once Done.
	Tick(c *CPU, m memory.Bus) (consumed bool)
}

// Chain is the sequential composite: an ordered list of child Tasks plus a
// cursor. A full instruction compiles to one Chain.
type Chain struct {
	tasks []Task
	cur   int
}

// NewChain builds a Chain from its ordered children.
func NewChain(tasks ...Task) *Chain {
	return &Chain{tasks: tasks}
}

// Done reports whether every child Task has completed.
func (ch *Chain) Done() bool {
	return ch.cur >= len(ch.tasks)
}

// Tick advances the current child. If the child finishes without consuming a
// bus cycle (the immediate-addressing fusion case from spec section 4.2) the
// cursor advances immediately and the next child runs within this same call,
// repeating until some child's Tick performs a real bus access. Returns true
// once the whole chain has completed.
func (ch *Chain) Tick(c *CPU, m memory.Bus) bool {
	for {
		if ch.Done() {
			return true
		}
		t := ch.tasks[ch.cur]
		consumed := t.Tick(c, m)
		if t.Done() {
			ch.cur++
		}
		if consumed {
			return ch.Done()
		}
	}
}
