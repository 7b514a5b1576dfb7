package cpu

import (
	"github.com/jmchacon/cpu6502core/memory"
	"github.com/jmchacon/cpu6502core/status"
)

// Control-flow and stack instructions don't fit the addressing/access split:
// each has its own fixed, documented cycle sequence, so each gets its own
// Task grounded directly on that sequence rather than being assembled from
// the generic pieces in addressing.go and access.go.

func pushByte(c *CPU, m memory.Bus, v uint8) {
	m.Write(0x0100|uint16(c.S), v)
	c.S--
}

func pullByte(c *CPU, m memory.Bus) uint8 {
	c.S++
	return m.Read(0x0100 | uint16(c.S))
}

// branchTask implements the eight conditional branches. Not taken costs
// nothing beyond the operand fetch; taken costs one more cycle, plus a
// second if the branch crosses a page.
type branchTask struct {
	cond   func(c *CPU) bool
	step   int
	done   bool
	target uint16
}

func (t *branchTask) Done() bool { return t.done }

func (t *branchTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		op := m.Read(c.PC)
		c.PC++
		if !t.cond(c) {
			t.done = true
			return true
		}
		t.target = uint16(int32(c.PC) + int32(int8(op)))
		return true
	case 2:
		_ = m.Read(c.PC)
		if t.target&0xFF00 == c.PC&0xFF00 {
			c.PC = t.target
			t.done = true
		} else {
			c.PC = (c.PC & 0xFF00) | (t.target & 0x00FF)
		}
		return true
	default:
		_ = m.Read(c.PC)
		c.PC = t.target
		t.done = true
		return true
	}
}

// jsrTask implements JSR a: pushes the address of the last byte of the JSR
// instruction (the operand's high byte), then jumps.
type jsrTask struct {
	step int
	done bool
	lo   uint8
	ret  uint16
}

func (t *jsrTask) Done() bool { return t.done }

func (t *jsrTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.lo = m.Read(c.PC)
		c.PC++
		return true
	case 2:
		_ = m.Read(0x0100 | uint16(c.S))
		t.ret = c.PC
		return true
	case 3:
		pushByte(c, m, uint8(t.ret>>8))
		return true
	case 4:
		pushByte(c, m, uint8(t.ret&0xFF))
		return true
	default:
		hi := m.Read(c.PC)
		c.PC = (uint16(hi) << 8) | uint16(t.lo)
		t.done = true
		return true
	}
}

// rtsTask implements RTS: pulls the return address pushed by JSR and adds
// one, landing back on the instruction after the call.
type rtsTask struct {
	step int
	done bool
	lo   uint8
}

func (t *rtsTask) Done() bool { return t.done }

func (t *rtsTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		_ = m.Read(c.PC)
		return true
	case 2:
		_ = m.Read(0x0100 | uint16(c.S))
		return true
	case 3:
		t.lo = pullByte(c, m)
		return true
	case 4:
		hi := pullByte(c, m)
		c.PC = (uint16(hi) << 8) | uint16(t.lo)
		return true
	default:
		_ = m.Read(c.PC)
		c.PC++
		t.done = true
		return true
	}
}

// rtiTask implements RTI: pulls status then the return address pushed by
// the interrupt sequence, with no adjustment to the pulled PC.
type rtiTask struct {
	step int
	done bool
	lo   uint8
}

func (t *rtiTask) Done() bool { return t.done }

func (t *rtiTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		_ = m.Read(c.PC)
		return true
	case 2:
		_ = m.Read(0x0100 | uint16(c.S))
		return true
	case 3:
		p := pullByte(c, m)
		c.P.Set(status.Flags(p) | status.Unused)
		return true
	case 4:
		t.lo = pullByte(c, m)
		return true
	default:
		hi := pullByte(c, m)
		c.PC = (uint16(hi) << 8) | uint16(t.lo)
		t.done = true
		return true
	}
}

// brkTask implements BRK: pushes PC+2 (the address after BRK's padding
// byte), pushes status with Break set, sets InterruptDisable, and loads PC
// from the IRQ/BRK vector at 0xFFFE/0xFFFF. IRQ and NMI lines are out of
// scope for this core, so BRK is the only way this sequence runs, and it
// halts the core rather than resuming at the vector - there's no interrupt
// source left to service once it gets there.
type brkTask struct {
	step int
	done bool
	lo   uint8
}

func (t *brkTask) Done() bool { return t.done }

func (t *brkTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		_ = m.Read(c.PC)
		c.PC++
		return true
	case 2:
		pushByte(c, m, uint8(c.PC>>8))
		return true
	case 3:
		pushByte(c, m, uint8(c.PC&0xFF))
		return true
	case 4:
		pushByte(c, m, uint8(c.P.PushValue(true)))
		c.P.Assign(status.InterruptDisable, true)
		return true
	case 5:
		t.lo = m.Read(0xFFFE)
		return true
	default:
		hi := m.Read(0xFFFF)
		c.PC = (uint16(hi) << 8) | uint16(t.lo)
		c.halted = true
		t.done = true
		return true
	}
}

// phTask implements PHA/PHP: one dummy read of the next byte, then the push.
type phTask struct {
	value func(c *CPU) uint8
	step  int
	done  bool
}

func (t *phTask) Done() bool { return t.done }

func (t *phTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	if t.step == 1 {
		_ = m.Read(c.PC)
		return true
	}
	pushByte(c, m, t.value(c))
	t.done = true
	return true
}

// plTask implements PLA/PLP: a dummy operand read, a dummy pre-increment
// stack read, then the pull.
type plTask struct {
	apply func(c *CPU, v uint8)
	step  int
	done  bool
}

func (t *plTask) Done() bool { return t.done }

func (t *plTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		_ = m.Read(c.PC)
		return true
	case 2:
		_ = m.Read(0x0100 | uint16(c.S))
		return true
	default:
		t.apply(c, pullByte(c, m))
		t.done = true
		return true
	}
}
