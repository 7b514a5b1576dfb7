package cpu

import "github.com/jmchacon/cpu6502core/status"

// opcodeTable dispatches a fetched opcode byte to the Chain that implements
// it. It is a plain 256-entry array indexed directly by the opcode byte,
// never a map: every slot's cost is one array load, and an unpopulated slot
// (illegal or undocumented opcode, always out of scope here) is simply nil.
var opcodeTable [256]func(c *CPU) *Chain

// Each of these small builders wires one addressing Task to one access Task
// and closes over the CPU instance at build time, so the resulting Chain
// needs no further arguments at Tick time.

func immediate(op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&immediateTask{}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func zp(op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageTask{}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func zpIndexed(reg func(c *CPU) *uint8, op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageIndexedTask{reg: reg(c)}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func abs(op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteTask{}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func absIndexed(reg func(c *CPU) *uint8, op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteIndexedTask{reg: reg(c)}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func indexedIndirect(op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&indexedIndirectTask{}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func indirectIndexed(op func(c *CPU, v uint8)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&indirectIndexedTask{}, &loadTask{consume: func(v uint8) { op(c, v) }})
	}
}

func zpStore(produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageTask{}, &storeTask{produce: func() uint8 { return produce(c) }})
	}
}

func zpIndexedStore(reg func(c *CPU) *uint8, produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageIndexedTask{reg: reg(c)}, &storeTask{produce: func() uint8 { return produce(c) }})
	}
}

func absStore(produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteTask{}, &storeTask{produce: func() uint8 { return produce(c) }})
	}
}

func absIndexedStore(reg func(c *CPU) *uint8, produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteIndexedTask{reg: reg(c)}, &storeTask{produce: func() uint8 { return produce(c) }, indexed: true})
	}
}

func indexedIndirectStore(produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&indexedIndirectTask{}, &storeTask{produce: func() uint8 { return produce(c) }})
	}
}

func indirectIndexedStore(produce func(c *CPU) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&indirectIndexedTask{}, &storeTask{produce: func() uint8 { return produce(c) }, indexed: true})
	}
}

func zpRMW(transform func(c *CPU, v uint8) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageTask{}, &rmwTask{transform: func(v uint8) uint8 { return transform(c, v) }})
	}
}

func zpIndexedRMW(reg func(c *CPU) *uint8, transform func(c *CPU, v uint8) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&zeroPageIndexedTask{reg: reg(c)}, &rmwTask{transform: func(v uint8) uint8 { return transform(c, v) }})
	}
}

func absRMW(transform func(c *CPU, v uint8) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteTask{}, &rmwTask{transform: func(v uint8) uint8 { return transform(c, v) }})
	}
}

func absIndexedRMW(reg func(c *CPU) *uint8, transform func(c *CPU, v uint8) uint8) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&absoluteIndexedTask{reg: reg(c)}, &rmwTask{transform: func(v uint8) uint8 { return transform(c, v) }, indexed: true})
	}
}

func implied(fn func(c *CPU)) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&impliedTask{fn: fn})
	}
}

func branch(cond func(c *CPU) bool) func(c *CPU) *Chain {
	return func(c *CPU) *Chain {
		return NewChain(&branchTask{cond: cond})
	}
}

func xReg(c *CPU) *uint8 { return &c.X }
func yReg(c *CPU) *uint8 { return &c.Y }

func init() {
	// Loads.
	opcodeTable[0xA9] = immediate(lda)
	opcodeTable[0xA5] = zp(lda)
	opcodeTable[0xB5] = zpIndexed(xReg, lda)
	opcodeTable[0xAD] = abs(lda)
	opcodeTable[0xBD] = absIndexed(xReg, lda)
	opcodeTable[0xB9] = absIndexed(yReg, lda)
	opcodeTable[0xA1] = indexedIndirect(lda)
	opcodeTable[0xB1] = indirectIndexed(lda)

	opcodeTable[0xA2] = immediate(ldx)
	opcodeTable[0xA6] = zp(ldx)
	opcodeTable[0xB6] = zpIndexed(yReg, ldx)
	opcodeTable[0xAE] = abs(ldx)
	opcodeTable[0xBE] = absIndexed(yReg, ldx)

	opcodeTable[0xA0] = immediate(ldy)
	opcodeTable[0xA4] = zp(ldy)
	opcodeTable[0xB4] = zpIndexed(xReg, ldy)
	opcodeTable[0xAC] = abs(ldy)
	opcodeTable[0xBC] = absIndexed(xReg, ldy)

	// Stores.
	storeA := func(c *CPU) uint8 { return c.A }
	storeX := func(c *CPU) uint8 { return c.X }
	storeY := func(c *CPU) uint8 { return c.Y }
	opcodeTable[0x85] = zpStore(storeA)
	opcodeTable[0x95] = zpIndexedStore(xReg, storeA)
	opcodeTable[0x8D] = absStore(storeA)
	opcodeTable[0x9D] = absIndexedStore(xReg, storeA)
	opcodeTable[0x99] = absIndexedStore(yReg, storeA)
	opcodeTable[0x81] = indexedIndirectStore(storeA)
	opcodeTable[0x91] = indirectIndexedStore(storeA)

	opcodeTable[0x86] = zpStore(storeX)
	opcodeTable[0x96] = zpIndexedStore(yReg, storeX)
	opcodeTable[0x8E] = absStore(storeX)

	opcodeTable[0x84] = zpStore(storeY)
	opcodeTable[0x94] = zpIndexedStore(xReg, storeY)
	opcodeTable[0x8C] = absStore(storeY)

	// Arithmetic and logic.
	opcodeTable[0x69] = immediate(adc)
	opcodeTable[0x65] = zp(adc)
	opcodeTable[0x75] = zpIndexed(xReg, adc)
	opcodeTable[0x6D] = abs(adc)
	opcodeTable[0x7D] = absIndexed(xReg, adc)
	opcodeTable[0x79] = absIndexed(yReg, adc)
	opcodeTable[0x61] = indexedIndirect(adc)
	opcodeTable[0x71] = indirectIndexed(adc)

	opcodeTable[0xE9] = immediate(sbc)
	opcodeTable[0xE5] = zp(sbc)
	opcodeTable[0xF5] = zpIndexed(xReg, sbc)
	opcodeTable[0xED] = abs(sbc)
	opcodeTable[0xFD] = absIndexed(xReg, sbc)
	opcodeTable[0xF9] = absIndexed(yReg, sbc)
	opcodeTable[0xE1] = indexedIndirect(sbc)
	opcodeTable[0xF1] = indirectIndexed(sbc)

	opcodeTable[0x29] = immediate(and)
	opcodeTable[0x25] = zp(and)
	opcodeTable[0x35] = zpIndexed(xReg, and)
	opcodeTable[0x2D] = abs(and)
	opcodeTable[0x3D] = absIndexed(xReg, and)
	opcodeTable[0x39] = absIndexed(yReg, and)
	opcodeTable[0x21] = indexedIndirect(and)
	opcodeTable[0x31] = indirectIndexed(and)

	opcodeTable[0x09] = immediate(ora)
	opcodeTable[0x05] = zp(ora)
	opcodeTable[0x15] = zpIndexed(xReg, ora)
	opcodeTable[0x0D] = abs(ora)
	opcodeTable[0x1D] = absIndexed(xReg, ora)
	opcodeTable[0x19] = absIndexed(yReg, ora)
	opcodeTable[0x01] = indexedIndirect(ora)
	opcodeTable[0x11] = indirectIndexed(ora)

	opcodeTable[0x49] = immediate(eor)
	opcodeTable[0x45] = zp(eor)
	opcodeTable[0x55] = zpIndexed(xReg, eor)
	opcodeTable[0x4D] = abs(eor)
	opcodeTable[0x5D] = absIndexed(xReg, eor)
	opcodeTable[0x59] = absIndexed(yReg, eor)
	opcodeTable[0x41] = indexedIndirect(eor)
	opcodeTable[0x51] = indirectIndexed(eor)

	opcodeTable[0xC9] = immediate(cmp)
	opcodeTable[0xC5] = zp(cmp)
	opcodeTable[0xD5] = zpIndexed(xReg, cmp)
	opcodeTable[0xCD] = abs(cmp)
	opcodeTable[0xDD] = absIndexed(xReg, cmp)
	opcodeTable[0xD9] = absIndexed(yReg, cmp)
	opcodeTable[0xC1] = indexedIndirect(cmp)
	opcodeTable[0xD1] = indirectIndexed(cmp)

	opcodeTable[0xE0] = immediate(cpx)
	opcodeTable[0xE4] = zp(cpx)
	opcodeTable[0xEC] = abs(cpx)

	opcodeTable[0xC0] = immediate(cpy)
	opcodeTable[0xC4] = zp(cpy)
	opcodeTable[0xCC] = abs(cpy)

	opcodeTable[0x24] = zp(bit)
	opcodeTable[0x2C] = abs(bit)

	// Shifts and rotates, accumulator and memory forms.
	opcodeTable[0x0A] = implied(func(c *CPU) { c.A = asl(c, c.A) })
	opcodeTable[0x06] = zpRMW(asl)
	opcodeTable[0x16] = zpIndexedRMW(xReg, asl)
	opcodeTable[0x0E] = absRMW(asl)
	opcodeTable[0x1E] = absIndexedRMW(xReg, asl)

	opcodeTable[0x4A] = implied(func(c *CPU) { c.A = lsr(c, c.A) })
	opcodeTable[0x46] = zpRMW(lsr)
	opcodeTable[0x56] = zpIndexedRMW(xReg, lsr)
	opcodeTable[0x4E] = absRMW(lsr)
	opcodeTable[0x5E] = absIndexedRMW(xReg, lsr)

	opcodeTable[0x2A] = implied(func(c *CPU) { c.A = rol(c, c.A) })
	opcodeTable[0x26] = zpRMW(rol)
	opcodeTable[0x36] = zpIndexedRMW(xReg, rol)
	opcodeTable[0x2E] = absRMW(rol)
	opcodeTable[0x3E] = absIndexedRMW(xReg, rol)

	opcodeTable[0x6A] = implied(func(c *CPU) { c.A = ror(c, c.A) })
	opcodeTable[0x66] = zpRMW(ror)
	opcodeTable[0x76] = zpIndexedRMW(xReg, ror)
	opcodeTable[0x6E] = absRMW(ror)
	opcodeTable[0x7E] = absIndexedRMW(xReg, ror)

	opcodeTable[0xE6] = zpRMW(inc)
	opcodeTable[0xF6] = zpIndexedRMW(xReg, inc)
	opcodeTable[0xEE] = absRMW(inc)
	opcodeTable[0xFE] = absIndexedRMW(xReg, inc)

	opcodeTable[0xC6] = zpRMW(dec)
	opcodeTable[0xD6] = zpIndexedRMW(xReg, dec)
	opcodeTable[0xCE] = absRMW(dec)
	opcodeTable[0xDE] = absIndexedRMW(xReg, dec)

	// Register transfers and increments.
	opcodeTable[0xE8] = implied(func(c *CPU) { c.X++; c.P.SetZeroNegative(c.X) })
	opcodeTable[0xC8] = implied(func(c *CPU) { c.Y++; c.P.SetZeroNegative(c.Y) })
	opcodeTable[0xCA] = implied(func(c *CPU) { c.X--; c.P.SetZeroNegative(c.X) })
	opcodeTable[0x88] = implied(func(c *CPU) { c.Y--; c.P.SetZeroNegative(c.Y) })
	opcodeTable[0xAA] = implied(func(c *CPU) { c.X = c.A; c.P.SetZeroNegative(c.X) })
	opcodeTable[0xA8] = implied(func(c *CPU) { c.Y = c.A; c.P.SetZeroNegative(c.Y) })
	opcodeTable[0x8A] = implied(func(c *CPU) { c.A = c.X; c.P.SetZeroNegative(c.A) })
	opcodeTable[0x98] = implied(func(c *CPU) { c.A = c.Y; c.P.SetZeroNegative(c.A) })
	opcodeTable[0xBA] = implied(func(c *CPU) { c.X = c.S; c.P.SetZeroNegative(c.X) })
	opcodeTable[0x9A] = implied(func(c *CPU) { c.S = c.X }) // TXS never touches the flags.

	// Flag instructions.
	opcodeTable[0x18] = implied(func(c *CPU) { c.P.Assign(status.Carry, false) })
	opcodeTable[0x38] = implied(func(c *CPU) { c.P.Assign(status.Carry, true) })
	opcodeTable[0x58] = implied(func(c *CPU) { c.P.Assign(status.InterruptDisable, false) })
	opcodeTable[0x78] = implied(func(c *CPU) { c.P.Assign(status.InterruptDisable, true) })
	opcodeTable[0xB8] = implied(func(c *CPU) { c.P.Assign(status.Overflow, false) })
	opcodeTable[0xD8] = implied(func(c *CPU) { c.P.Assign(status.DecimalMode, false) })
	opcodeTable[0xF8] = implied(func(c *CPU) { c.P.Assign(status.DecimalMode, true) })

	opcodeTable[0xEA] = implied(nil)

	// Stack instructions.
	opcodeTable[0x48] = func(c *CPU) *Chain {
		return NewChain(&phTask{value: func(c *CPU) uint8 { return c.A }})
	}
	opcodeTable[0x08] = func(c *CPU) *Chain {
		return NewChain(&phTask{value: func(c *CPU) uint8 { return uint8(c.P.PushValue(true)) }})
	}
	opcodeTable[0x68] = func(c *CPU) *Chain {
		return NewChain(&plTask{apply: func(c *CPU, v uint8) { c.A = v; c.P.SetZeroNegative(v) }})
	}
	opcodeTable[0x28] = func(c *CPU) *Chain {
		return NewChain(&plTask{apply: func(c *CPU, v uint8) { c.P.Set(status.Flags(v) | status.Unused) }})
	}

	// Unconditional jumps and subroutine linkage.
	jmpToAddressOutput := func(c *CPU) { c.PC = c.AddressOutput }
	opcodeTable[0x4C] = func(c *CPU) *Chain {
		return NewChain(&absoluteTask{after: jmpToAddressOutput})
	}
	opcodeTable[0x6C] = func(c *CPU) *Chain {
		return NewChain(&indirectJMPTask{variant: c.Variant, after: jmpToAddressOutput})
	}
	opcodeTable[0x20] = func(c *CPU) *Chain { return NewChain(&jsrTask{}) }
	opcodeTable[0x60] = func(c *CPU) *Chain { return NewChain(&rtsTask{}) }
	opcodeTable[0x40] = func(c *CPU) *Chain { return NewChain(&rtiTask{}) }
	opcodeTable[0x00] = func(c *CPU) *Chain { return NewChain(&brkTask{}) }

	// Conditional branches.
	opcodeTable[0x10] = branch(func(c *CPU) bool { return !c.P.Test(status.Negative) })
	opcodeTable[0x30] = branch(func(c *CPU) bool { return c.P.Test(status.Negative) })
	opcodeTable[0x50] = branch(func(c *CPU) bool { return !c.P.Test(status.Overflow) })
	opcodeTable[0x70] = branch(func(c *CPU) bool { return c.P.Test(status.Overflow) })
	opcodeTable[0x90] = branch(func(c *CPU) bool { return !c.P.Test(status.Carry) })
	opcodeTable[0xB0] = branch(func(c *CPU) bool { return c.P.Test(status.Carry) })
	opcodeTable[0xD0] = branch(func(c *CPU) bool { return !c.P.Test(status.Zero) })
	opcodeTable[0xF0] = branch(func(c *CPU) bool { return c.P.Test(status.Zero) })
}
