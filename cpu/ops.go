package cpu

import "github.com/jmchacon/cpu6502core/status"

// Operation bodies: pure functions of a CPU and (for read-based and
// read-modify-write instructions) the byte an access Task already fetched.
// They never touch the bus themselves - instructions.go wires each one into
// a loadTask, storeTask or rmwTask closure, keeping the cycle bookkeeping
// entirely in access.go and the arithmetic entirely here.
//
// Decimal mode is out of scope for this core, so ADC and SBC only implement
// binary addition/subtraction; DecimalMode can be set and read like any
// other status bit but never changes how ADC/SBC compute.

func adc(c *CPU, v uint8) {
	carryIn := uint16(0)
	if c.P.Test(status.Carry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(v) + carryIn
	result := uint8(sum)
	overflow := (^(c.A ^ v) & (c.A ^ result) & 0x80) != 0
	c.A = result
	c.P.SetZeroNegative(result)
	c.P.SetCarry(sum > 0xFF)
	c.P.SetOverflow(overflow)
}

// sbc adds the one's complement of v, but does not mirror adc's flag
// assignment: Carry is cleared (never set) when the byte-level addition
// overflows and left unchanged otherwise, and Overflow is set when the
// signed result overflows and left unchanged otherwise. This asymmetry
// comes from the grounding original, whose sbc() reports its carry/overflow
// results as Clear/Set/Unchanged rather than a plain bool.
func sbc(c *CPU, v uint8) {
	carryIn := uint16(0)
	if c.P.Test(status.Carry) {
		carryIn = 1
	}
	comp := ^v
	sum := uint16(c.A) + uint16(comp) + carryIn
	result := uint8(sum)
	overflow := (^(c.A ^ comp) & (c.A ^ result) & 0x80) != 0
	c.A = result
	c.P.SetZeroNegative(result)
	if sum > 0xFF {
		c.P.SetCarry(false)
	}
	if overflow {
		c.P.SetOverflow(true)
	}
}

func and(c *CPU, v uint8) {
	c.A &= v
	c.P.SetZeroNegative(c.A)
}

func ora(c *CPU, v uint8) {
	c.A |= v
	c.P.SetZeroNegative(c.A)
}

func eor(c *CPU, v uint8) {
	c.A ^= v
	c.P.SetZeroNegative(c.A)
}

func bit(c *CPU, v uint8) {
	c.P.SetBit(c.A, v)
}

func lda(c *CPU, v uint8) {
	c.A = v
	c.P.SetZeroNegative(c.A)
}

func ldx(c *CPU, v uint8) {
	c.X = v
	c.P.SetZeroNegative(c.X)
}

func ldy(c *CPU, v uint8) {
	c.Y = v
	c.P.SetZeroNegative(c.Y)
}

func cmp(c *CPU, v uint8) {
	c.P.SetCompare(c.A, v)
}

func cpx(c *CPU, v uint8) {
	c.P.SetCompare(c.X, v)
}

func cpy(c *CPU, v uint8) {
	c.P.SetCompare(c.Y, v)
}

// asl, lsr, rol and ror implement the shift/rotate family shared by the
// accumulator and memory forms of each instruction.

func asl(c *CPU, v uint8) uint8 {
	c.P.SetCarry(v&0x80 != 0)
	r := v << 1
	c.P.SetZeroNegative(r)
	return r
}

func lsr(c *CPU, v uint8) uint8 {
	c.P.SetCarry(v&0x01 != 0)
	r := v >> 1
	c.P.SetZeroNegative(r)
	return r
}

func rol(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Test(status.Carry) {
		carryIn = 1
	}
	c.P.SetCarry(v&0x80 != 0)
	r := (v << 1) | carryIn
	c.P.SetZeroNegative(r)
	return r
}

func ror(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Test(status.Carry) {
		carryIn = 0x80
	}
	c.P.SetCarry(v&0x01 != 0)
	r := (v >> 1) | carryIn
	c.P.SetZeroNegative(r)
	return r
}

func inc(c *CPU, v uint8) uint8 {
	r := v + 1
	c.P.SetZeroNegative(r)
	return r
}

func dec(c *CPU, v uint8) uint8 {
	r := v - 1
	c.P.SetZeroNegative(r)
	return r
}
