package cpu

// Addressing modes. https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	modeImplicit = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX // indexed indirect, (zp,X)
	modeIndirectY // indirect indexed, (zp),Y
)

// resolveAddr advances PC past the instruction's operand bytes and returns
// the effective address plus whether indexing crossed a page boundary
// (relevant only for the modes that charge an extra cycle for it).
func (c *CPU) resolveAddr(mode int) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeImmediate:
		addr = c.PC
		c.PC++
	case modeZeroPage:
		addr = uint16(c.read(c.PC))
		c.PC++
	case modeZeroPageX:
		addr = uint16(c.read(c.PC) + c.X)
		c.PC++
	case modeZeroPageY:
		addr = uint16(c.read(c.PC) + c.Y)
		c.PC++
	case modeRelative:
		off := int8(c.read(c.PC))
		c.PC++
		addr = uint16(int32(c.PC) + int32(off))
		pageCrossed = (addr & 0xff00) != (c.PC & 0xff00)
	case modeAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
	case modeAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		pageCrossed = (base & 0xff00) != (addr & 0xff00)
	case modeAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		pageCrossed = (base & 0xff00) != (addr & 0xff00)
	case modeIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		addr = c.read16Bug(ptr)
	case modeIndirectX:
		zp := c.read(c.PC) + c.X
		c.PC++
		addr = c.read16Bug(uint16(zp))
	case modeIndirectY:
		zp := c.read(c.PC)
		c.PC++
		base := c.read16Bug(uint16(zp))
		addr = base + uint16(c.Y)
		pageCrossed = (base & 0xff00) != (addr & 0xff00)
	}
	return addr, pageCrossed
}
