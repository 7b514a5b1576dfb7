package cpu

import "github.com/jmchacon/cpu6502core/memory"

// Access Tasks perform the actual bus traffic at an address an addressing
// Task already resolved into c.AddressOutput. Splitting addressing from
// access keeps every combination of (10 addressing modes) x (load, store,
// read-modify-write) expressible as one addressing Task followed by one of
// these three, rather than 30-odd bespoke per-opcode cycle sequences.
//
// Indexed addressing sets c.fixup when the index addition carried into the
// high byte, leaving c.AddressOutput pointing at the wrong (unwrapped) byte
// until corrected. A load only pays the correction cycle when the carry
// actually happened; a store or read-modify-write always spends it; on real
// hardware that cycle is a dummy read/write at the uncorrected address
// whether or not the carry occurred, since the chip can't know in advance.

// loadTask reads the byte at the effective address and hands it to consume.
// It costs one bus cycle, plus one more if c.fixup is set.
type loadTask struct {
	consume func(v uint8)
	step    int
	done    bool
}

func (t *loadTask) Done() bool { return t.done }

func (t *loadTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	if t.step == 1 {
		v := m.Read(c.AddressOutput)
		if c.fixup {
			c.AddressOutput += 0x0100
			return true
		}
		t.consume(v)
		t.done = true
		return true
	}
	v := m.Read(c.AddressOutput)
	t.consume(v)
	t.done = true
	return true
}

// storeTask writes produce()'s result to the effective address. indexed
// marks an addressing mode capable of a page-crossing index, which always
// spends a dummy-read cycle before the write regardless of whether this
// particular access actually crossed a page.
type storeTask struct {
	produce func() uint8
	indexed bool
	step    int
	done    bool
}

func (t *storeTask) Done() bool { return t.done }

func (t *storeTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	if t.indexed && t.step == 1 {
		_ = m.Read(c.AddressOutput)
		if c.fixup {
			c.AddressOutput += 0x0100
		}
		return true
	}
	m.Write(c.AddressOutput, t.produce())
	t.done = true
	return true
}

// rmwTask reads the byte at the effective address, writes it back unchanged
// (the dummy write-back every real read-modify-write instruction performs),
// then writes transform's result. indexed behaves as in storeTask.
type rmwTask struct {
	transform func(v uint8) uint8
	indexed   bool
	step      int
	done      bool
	val       uint8
}

func (t *rmwTask) Done() bool { return t.done }

func (t *rmwTask) Tick(c *CPU, m memory.Bus) bool {
	t.step++
	base := 0
	if t.indexed {
		base = 1
		if t.step == 1 {
			_ = m.Read(c.AddressOutput)
			if c.fixup {
				c.AddressOutput += 0x0100
			}
			return true
		}
	}
	switch t.step - base {
	case 1:
		t.val = m.Read(c.AddressOutput)
		return true
	case 2:
		m.Write(c.AddressOutput, t.val)
		return true
	default:
		m.Write(c.AddressOutput, t.transform(t.val))
		t.done = true
		return true
	}
}
