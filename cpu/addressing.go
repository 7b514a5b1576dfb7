package cpu

import "github.com/jmchacon/cpu6502core/memory"

// Addressing-mode Tasks resolve an effective address into c.AddressOutput
// (or, for Implicit, do nothing address-related) and leave c.PC past their
// operand bytes. They never read or write the data value at the effective
// address themselves: that is access.go's job, kept deliberately separate so
// every addressing mode plugs into the same read/write/RMW helpers.
//
// Indexed modes additionally set c.fixup to report whether adding the index
// register carried into the high byte. For loads this toggles whether the
// access needs a second, corrected read; for stores/RMW the access always
// pays that cycle regardless (see access.go).

// impliedTask implements Implicit and Accumulator addressing: no operand
// bytes, just the mandatory dummy read of the byte after the opcode that
// every 6502 instruction performs whether or not it uses it. fn, if set,
// performs the instruction's register mutation during that same dummy-read
// cycle - exactly when real hardware does it, since there's no separate
// cycle to spend on it.
type impliedTask struct {
	fn   func(c *CPU)
	done bool
}

func (t *impliedTask) Done() bool { return t.done }

func (t *impliedTask) Tick(c *CPU, m memory.Bus) bool {
	_ = m.Read(c.PC)
	if t.fn != nil {
		t.fn(c)
	}
	t.done = true
	return true
}

// immediateTask implements Immediate addressing - #i. The effective address
// is the operand byte itself; the byte is not read here; the wrapping access
// Task performs that read as its own first cycle (fused with this step, so
// no extra cycle is spent).
type immediateTask struct {
	done bool
}

func (t *immediateTask) Done() bool { return t.done }

func (t *immediateTask) Tick(c *CPU, m memory.Bus) bool {
	c.AddressOutput = c.PC
	c.PC++
	t.done = true
	return false
}

// zeroPageTask implements Zero page addressing - d. One operand byte forms
// the effective address directly.
type zeroPageTask struct {
	done bool
}

func (t *zeroPageTask) Done() bool { return t.done }

func (t *zeroPageTask) Tick(c *CPU, m memory.Bus) bool {
	z := m.Read(c.PC)
	c.PC++
	c.AddressOutput = uint16(z)
	t.done = true
	return true
}

// zeroPageIndexedTask implements Zero page plus X or Y - d,x / d,y. Fetches
// the base, then spends a dummy-read cycle on the unindexed address while
// computing the (wrapping) indexed address.
type zeroPageIndexedTask struct {
	reg  *uint8
	step int
	done bool
	base uint8
}

func (t *zeroPageIndexedTask) Done() bool { return t.done }

func (t *zeroPageIndexedTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.base = m.Read(c.PC)
		c.PC++
		c.AddressOutput = uint16(t.base)
		return true
	default:
		_ = m.Read(c.AddressOutput)
		c.AddressOutput = uint16(t.base + *t.reg)
		t.done = true
		return true
	}
}

// absoluteTask implements Absolute addressing - a. Two little-endian operand
// bytes form the effective address directly. after, if set, runs on the
// final (already-consuming) step - JMP uses it to latch AddressOutput into
// PC in the same cycle as the high-byte fetch, rather than spending a
// separate cycle it never costs on real hardware.
type absoluteTask struct {
	after func(c *CPU)
	step  int
	done  bool
	lo    uint8
}

func (t *absoluteTask) Done() bool { return t.done }

func (t *absoluteTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.lo = m.Read(c.PC)
		c.PC++
		return true
	default:
		hi := m.Read(c.PC)
		c.PC++
		c.AddressOutput = (uint16(hi) << 8) | uint16(t.lo)
		t.done = true
		if t.after != nil {
			t.after(c)
		}
		return true
	}
}

// absoluteIndexedTask implements Absolute plus X or Y - a,x / a,y. Fetches
// the base address, then adds the index register to the low byte, detecting
// whether that addition carries into the high byte (c.fixup).
type absoluteIndexedTask struct {
	reg  *uint8
	step int
	done bool
	lo   uint8
	hi   uint8
}

func (t *absoluteIndexedTask) Done() bool { return t.done }

func (t *absoluteIndexedTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.lo = m.Read(c.PC)
		c.PC++
		return true
	default:
		t.hi = m.Read(c.PC)
		c.PC++
		sum := uint16(t.lo) + uint16(*t.reg)
		c.fixup = sum > 0xFF
		c.AddressOutput = (uint16(t.hi) << 8) | (sum & 0xFF)
		t.done = true
		return true
	}
}

// indexedIndirectTask implements Zero page indirect plus X - (d,x). The
// pointer is always built within the zero page, so it never crosses a page.
type indexedIndirectTask struct {
	step int
	done bool
	ptr  uint8
	lo   uint8
}

func (t *indexedIndirectTask) Done() bool { return t.done }

func (t *indexedIndirectTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.ptr = m.Read(c.PC)
		c.PC++
		return true
	case 2:
		_ = m.Read(uint16(t.ptr))
		t.ptr += c.X
		return true
	case 3:
		t.lo = m.Read(uint16(t.ptr))
		return true
	default:
		hi := m.Read(uint16(t.ptr + 1))
		c.AddressOutput = (uint16(hi) << 8) | uint16(t.lo)
		t.done = true
		return true
	}
}

// indirectIndexedTask implements Zero page indirect plus Y - (d),y. The base
// pointer is read from the zero page, then Y is added to it; adding Y can
// carry into the high byte, so c.fixup is set exactly as in
// absoluteIndexedTask.
type indirectIndexedTask struct {
	step int
	done bool
	ptr  uint8
	lo   uint8
	hi   uint8
}

func (t *indirectIndexedTask) Done() bool { return t.done }

func (t *indirectIndexedTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.ptr = m.Read(c.PC)
		c.PC++
		return true
	case 2:
		t.lo = m.Read(uint16(t.ptr))
		return true
	default:
		t.hi = m.Read(uint16(t.ptr + 1))
		sum := uint16(t.lo) + uint16(c.Y)
		c.fixup = sum > 0xFF
		c.AddressOutput = (uint16(t.hi) << 8) | (sum & 0xFF)
		t.done = true
		return true
	}
}

// indirectJMPTask implements JMP's Indirect addressing - (a). On NMOS chips,
// a pointer whose low byte is 0xFF wraps within the page when fetching the
// target's high byte instead of crossing into the next page - the
// historical 6502 indirect-JMP bug. CMOS variants fetch correctly and spend
// one additional cycle doing so.
type indirectJMPTask struct {
	variant Variant
	after   func(c *CPU)
	step    int
	done    bool
	ptrLo   uint8
	ptrHi   uint8
}

func (t *indirectJMPTask) Done() bool { return t.done }

func (t *indirectJMPTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	switch t.step {
	case 1:
		t.ptrLo = m.Read(c.PC)
		c.PC++
		return true
	case 2:
		t.ptrHi = m.Read(c.PC)
		c.PC++
		return true
	case 3:
		ptr := (uint16(t.ptrHi) << 8) | uint16(t.ptrLo)
		c.AddressOutput = uint16(m.Read(ptr))
		return true
	case 4:
		ptr := (uint16(t.ptrHi) << 8) | uint16(t.ptrLo)
		var hiAddr uint16
		if t.variant == VariantNMOS {
			hiAddr = (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		} else {
			hiAddr = ptr + 1
		}
		hi := m.Read(hiAddr)
		c.AddressOutput |= uint16(hi) << 8
		t.done = t.variant == VariantNMOS
		if t.done && t.after != nil {
			t.after(c)
		}
		return true
	default:
		// CMOS only: the extra internal cycle it spends fetching correctly
		// across a page boundary instead of wrapping within the page.
		_ = m.Read(c.AddressOutput)
		t.done = true
		if t.after != nil {
			t.after(c)
		}
		return true
	}
}
