package cpu

// opcodeEntry describes one of the 256 possible opcode bytes: which
// instruction it executes, the addressing mode that selects its operand,
// its base cycle cost, and whether crossing a page boundary while forming
// the address costs one extra cycle. Built once at package init into a
// dense array, replacing a name-keyed dispatch with a direct indexed call
// on the hot instruction-fetch path.
type opcodeEntry struct {
	name         string
	exec         func(c *CPU, addr uint16, mode int)
	mode         int
	cycles       uint8
	pageBoundary bool
}

var dispatch [256]opcodeEntry

func op(code uint8, name string, exec func(*CPU, uint16, int), mode int, cycles uint8, pageBoundary bool) {
	dispatch[code] = opcodeEntry{name, exec, mode, cycles, pageBoundary}
}

func init() {
	op(0x69, "ADC", opADC, modeImmediate, 2, false)
	op(0x65, "ADC", opADC, modeZeroPage, 3, false)
	op(0x75, "ADC", opADC, modeZeroPageX, 4, false)
	op(0x6d, "ADC", opADC, modeAbsolute, 4, false)
	op(0x7d, "ADC", opADC, modeAbsoluteX, 4, true)
	op(0x79, "ADC", opADC, modeAbsoluteY, 4, true)
	op(0x61, "ADC", opADC, modeIndirectX, 6, false)
	op(0x71, "ADC", opADC, modeIndirectY, 5, true)

	op(0x29, "AND", opAND, modeImmediate, 2, false)
	op(0x25, "AND", opAND, modeZeroPage, 3, false)
	op(0x35, "AND", opAND, modeZeroPageX, 4, false)
	op(0x2d, "AND", opAND, modeAbsolute, 4, false)
	op(0x3d, "AND", opAND, modeAbsoluteX, 4, true)
	op(0x39, "AND", opAND, modeAbsoluteY, 4, true)
	op(0x21, "AND", opAND, modeIndirectX, 6, false)
	op(0x31, "AND", opAND, modeIndirectY, 5, true)

	op(0x0a, "ASL", opASL, modeAccumulator, 2, false)
	op(0x06, "ASL", opASL, modeZeroPage, 5, false)
	op(0x16, "ASL", opASL, modeZeroPageX, 6, false)
	op(0x0e, "ASL", opASL, modeAbsolute, 6, false)
	op(0x1e, "ASL", opASL, modeAbsoluteX, 7, false)

	op(0x90, "BCC", opBCC, modeRelative, 2, false)
	op(0xb0, "BCS", opBCS, modeRelative, 2, false)
	op(0xf0, "BEQ", opBEQ, modeRelative, 2, false)
	op(0x30, "BMI", opBMI, modeRelative, 2, false)
	op(0xd0, "BNE", opBNE, modeRelative, 2, false)
	op(0x10, "BPL", opBPL, modeRelative, 2, false)
	op(0x50, "BVC", opBVC, modeRelative, 2, false)
	op(0x70, "BVS", opBVS, modeRelative, 2, false)

	op(0x24, "BIT", opBIT, modeZeroPage, 3, false)
	op(0x2c, "BIT", opBIT, modeAbsolute, 4, false)

	op(0x00, "BRK", opBRK, modeImplicit, 7, false)

	op(0x18, "CLC", opCLC, modeImplicit, 2, false)
	op(0xd8, "CLD", opCLD, modeImplicit, 2, false)
	op(0x58, "CLI", opCLI, modeImplicit, 2, false)
	op(0xb8, "CLV", opCLV, modeImplicit, 2, false)
	op(0x38, "SEC", opSEC, modeImplicit, 2, false)
	op(0xf8, "SED", opSED, modeImplicit, 2, false)
	op(0x78, "SEI", opSEI, modeImplicit, 2, false)

	op(0xc9, "CMP", opCMP, modeImmediate, 2, false)
	op(0xc5, "CMP", opCMP, modeZeroPage, 3, false)
	op(0xd5, "CMP", opCMP, modeZeroPageX, 4, false)
	op(0xcd, "CMP", opCMP, modeAbsolute, 4, false)
	op(0xdd, "CMP", opCMP, modeAbsoluteX, 4, true)
	op(0xd9, "CMP", opCMP, modeAbsoluteY, 4, true)
	op(0xc1, "CMP", opCMP, modeIndirectX, 6, false)
	op(0xd1, "CMP", opCMP, modeIndirectY, 5, true)

	op(0xe0, "CPX", opCPX, modeImmediate, 2, false)
	op(0xe4, "CPX", opCPX, modeZeroPage, 3, false)
	op(0xec, "CPX", opCPX, modeAbsolute, 4, false)
	op(0xc0, "CPY", opCPY, modeImmediate, 2, false)
	op(0xc4, "CPY", opCPY, modeZeroPage, 3, false)
	op(0xcc, "CPY", opCPY, modeAbsolute, 4, false)

	op(0xc6, "DEC", opDEC, modeZeroPage, 5, false)
	op(0xd6, "DEC", opDEC, modeZeroPageX, 6, false)
	op(0xce, "DEC", opDEC, modeAbsolute, 6, false)
	op(0xde, "DEC", opDEC, modeAbsoluteX, 7, false)
	op(0xca, "DEX", opDEX, modeImplicit, 2, false)
	op(0x88, "DEY", opDEY, modeImplicit, 2, false)

	op(0x49, "EOR", opEOR, modeImmediate, 2, false)
	op(0x45, "EOR", opEOR, modeZeroPage, 3, false)
	op(0x55, "EOR", opEOR, modeZeroPageX, 4, false)
	op(0x4d, "EOR", opEOR, modeAbsolute, 4, false)
	op(0x5d, "EOR", opEOR, modeAbsoluteX, 4, true)
	op(0x59, "EOR", opEOR, modeAbsoluteY, 4, true)
	op(0x41, "EOR", opEOR, modeIndirectX, 6, false)
	op(0x51, "EOR", opEOR, modeIndirectY, 5, true)

	op(0xe6, "INC", opINC, modeZeroPage, 5, false)
	op(0xf6, "INC", opINC, modeZeroPageX, 6, false)
	op(0xee, "INC", opINC, modeAbsolute, 6, false)
	op(0xfe, "INC", opINC, modeAbsoluteX, 7, false)
	op(0xe8, "INX", opINX, modeImplicit, 2, false)
	op(0xc8, "INY", opINY, modeImplicit, 2, false)

	op(0x4c, "JMP", opJMP, modeAbsolute, 3, false)
	op(0x6c, "JMP", opJMP, modeIndirect, 5, false)
	op(0x20, "JSR", opJSR, modeAbsolute, 6, false)

	op(0xa9, "LDA", opLDA, modeImmediate, 2, false)
	op(0xa5, "LDA", opLDA, modeZeroPage, 3, false)
	op(0xb5, "LDA", opLDA, modeZeroPageX, 4, false)
	op(0xad, "LDA", opLDA, modeAbsolute, 4, false)
	op(0xbd, "LDA", opLDA, modeAbsoluteX, 4, true)
	op(0xb9, "LDA", opLDA, modeAbsoluteY, 4, true)
	op(0xa1, "LDA", opLDA, modeIndirectX, 6, false)
	op(0xb1, "LDA", opLDA, modeIndirectY, 5, true)

	op(0xa2, "LDX", opLDX, modeImmediate, 2, false)
	op(0xa6, "LDX", opLDX, modeZeroPage, 3, false)
	op(0xb6, "LDX", opLDX, modeZeroPageY, 4, false)
	op(0xae, "LDX", opLDX, modeAbsolute, 4, false)
	op(0xbe, "LDX", opLDX, modeAbsoluteY, 4, true)

	op(0xa0, "LDY", opLDY, modeImmediate, 2, false)
	op(0xa4, "LDY", opLDY, modeZeroPage, 3, false)
	op(0xb4, "LDY", opLDY, modeZeroPageX, 4, false)
	op(0xac, "LDY", opLDY, modeAbsolute, 4, false)
	op(0xbc, "LDY", opLDY, modeAbsoluteX, 4, true)

	op(0x4a, "LSR", opLSR, modeAccumulator, 2, false)
	op(0x46, "LSR", opLSR, modeZeroPage, 5, false)
	op(0x56, "LSR", opLSR, modeZeroPageX, 6, false)
	op(0x4e, "LSR", opLSR, modeAbsolute, 6, false)
	op(0x5e, "LSR", opLSR, modeAbsoluteX, 7, false)

	op(0xea, "NOP", opNOP, modeImplicit, 2, false)

	op(0x09, "ORA", opORA, modeImmediate, 2, false)
	op(0x05, "ORA", opORA, modeZeroPage, 3, false)
	op(0x15, "ORA", opORA, modeZeroPageX, 4, false)
	op(0x0d, "ORA", opORA, modeAbsolute, 4, false)
	op(0x1d, "ORA", opORA, modeAbsoluteX, 4, true)
	op(0x19, "ORA", opORA, modeAbsoluteY, 4, true)
	op(0x01, "ORA", opORA, modeIndirectX, 6, false)
	op(0x11, "ORA", opORA, modeIndirectY, 5, true)

	op(0x48, "PHA", opPHA, modeImplicit, 3, false)
	op(0x08, "PHP", opPHP, modeImplicit, 3, false)
	op(0x68, "PLA", opPLA, modeImplicit, 4, false)
	op(0x28, "PLP", opPLP, modeImplicit, 4, false)

	op(0x2a, "ROL", opROL, modeAccumulator, 2, false)
	op(0x26, "ROL", opROL, modeZeroPage, 5, false)
	op(0x36, "ROL", opROL, modeZeroPageX, 6, false)
	op(0x2e, "ROL", opROL, modeAbsolute, 6, false)
	op(0x3e, "ROL", opROL, modeAbsoluteX, 7, false)

	op(0x6a, "ROR", opROR, modeAccumulator, 2, false)
	op(0x66, "ROR", opROR, modeZeroPage, 5, false)
	op(0x76, "ROR", opROR, modeZeroPageX, 6, false)
	op(0x6e, "ROR", opROR, modeAbsolute, 6, false)
	op(0x7e, "ROR", opROR, modeAbsoluteX, 7, false)

	op(0x40, "RTI", opRTI, modeImplicit, 6, false)
	op(0x60, "RTS", opRTS, modeImplicit, 6, false)

	op(0xe9, "SBC", opSBC, modeImmediate, 2, false)
	op(0xe5, "SBC", opSBC, modeZeroPage, 3, false)
	op(0xf5, "SBC", opSBC, modeZeroPageX, 4, false)
	op(0xed, "SBC", opSBC, modeAbsolute, 4, false)
	op(0xfd, "SBC", opSBC, modeAbsoluteX, 4, true)
	op(0xf9, "SBC", opSBC, modeAbsoluteY, 4, true)
	op(0xe1, "SBC", opSBC, modeIndirectX, 6, false)
	op(0xf1, "SBC", opSBC, modeIndirectY, 5, true)

	op(0x85, "STA", opSTA, modeZeroPage, 3, false)
	op(0x95, "STA", opSTA, modeZeroPageX, 4, false)
	op(0x8d, "STA", opSTA, modeAbsolute, 4, false)
	op(0x9d, "STA", opSTA, modeAbsoluteX, 5, false)
	op(0x99, "STA", opSTA, modeAbsoluteY, 5, false)
	op(0x81, "STA", opSTA, modeIndirectX, 6, false)
	op(0x91, "STA", opSTA, modeIndirectY, 6, false)

	op(0x86, "STX", opSTX, modeZeroPage, 3, false)
	op(0x96, "STX", opSTX, modeZeroPageY, 4, false)
	op(0x8e, "STX", opSTX, modeAbsolute, 4, false)
	op(0x84, "STY", opSTY, modeZeroPage, 3, false)
	op(0x94, "STY", opSTY, modeZeroPageX, 4, false)
	op(0x8c, "STY", opSTY, modeAbsolute, 4, false)

	op(0xaa, "TAX", opTAX, modeImplicit, 2, false)
	op(0xa8, "TAY", opTAY, modeImplicit, 2, false)
	op(0xba, "TSX", opTSX, modeImplicit, 2, false)
	op(0x8a, "TXA", opTXA, modeImplicit, 2, false)
	op(0x9a, "TXS", opTXS, modeImplicit, 2, false)
	op(0x98, "TYA", opTYA, modeImplicit, 2, false)

	// Unofficial opcodes relied on by common test ROMs.
	op(0xa7, "LAX", opLAX, modeZeroPage, 3, false)
	op(0xb7, "LAX", opLAX, modeZeroPageY, 4, false)
	op(0xaf, "LAX", opLAX, modeAbsolute, 4, false)
	op(0xbf, "LAX", opLAX, modeAbsoluteY, 4, true)
	op(0xa3, "LAX", opLAX, modeIndirectX, 6, false)
	op(0xb3, "LAX", opLAX, modeIndirectY, 5, true)

	op(0x87, "SAX", opSAX, modeZeroPage, 3, false)
	op(0x97, "SAX", opSAX, modeZeroPageY, 4, false)
	op(0x8f, "SAX", opSAX, modeAbsolute, 4, false)
	op(0x83, "SAX", opSAX, modeIndirectX, 6, false)

	op(0xc7, "DCP", opDCP, modeZeroPage, 5, false)
	op(0xd7, "DCP", opDCP, modeZeroPageX, 6, false)
	op(0xcf, "DCP", opDCP, modeAbsolute, 6, false)
	op(0xdf, "DCP", opDCP, modeAbsoluteX, 7, false)
	op(0xdb, "DCP", opDCP, modeAbsoluteY, 7, false)
	op(0xc3, "DCP", opDCP, modeIndirectX, 8, false)
	op(0xd3, "DCP", opDCP, modeIndirectY, 8, false)

	op(0xe7, "ISC", opISC, modeZeroPage, 5, false)
	op(0xf7, "ISC", opISC, modeZeroPageX, 6, false)
	op(0xef, "ISC", opISC, modeAbsolute, 6, false)
	op(0xff, "ISC", opISC, modeAbsoluteX, 7, false)
	op(0xfb, "ISC", opISC, modeAbsoluteY, 7, false)
	op(0xe3, "ISC", opISC, modeIndirectX, 8, false)
	op(0xf3, "ISC", opISC, modeIndirectY, 8, false)

	op(0x07, "SLO", opSLO, modeZeroPage, 5, false)
	op(0x17, "SLO", opSLO, modeZeroPageX, 6, false)
	op(0x0f, "SLO", opSLO, modeAbsolute, 6, false)
	op(0x1f, "SLO", opSLO, modeAbsoluteX, 7, false)
	op(0x1b, "SLO", opSLO, modeAbsoluteY, 7, false)
	op(0x03, "SLO", opSLO, modeIndirectX, 8, false)
	op(0x13, "SLO", opSLO, modeIndirectY, 8, false)

	op(0x27, "RLA", opRLA, modeZeroPage, 5, false)
	op(0x37, "RLA", opRLA, modeZeroPageX, 6, false)
	op(0x2f, "RLA", opRLA, modeAbsolute, 6, false)
	op(0x3f, "RLA", opRLA, modeAbsoluteX, 7, false)
	op(0x3b, "RLA", opRLA, modeAbsoluteY, 7, false)
	op(0x23, "RLA", opRLA, modeIndirectX, 8, false)
	op(0x33, "RLA", opRLA, modeIndirectY, 8, false)

	op(0x47, "SRE", opSRE, modeZeroPage, 5, false)
	op(0x57, "SRE", opSRE, modeZeroPageX, 6, false)
	op(0x4f, "SRE", opSRE, modeAbsolute, 6, false)
	op(0x5f, "SRE", opSRE, modeAbsoluteX, 7, false)
	op(0x5b, "SRE", opSRE, modeAbsoluteY, 7, false)
	op(0x43, "SRE", opSRE, modeIndirectX, 8, false)
	op(0x53, "SRE", opSRE, modeIndirectY, 8, false)

	op(0x67, "RRA", opRRA, modeZeroPage, 5, false)
	op(0x77, "RRA", opRRA, modeZeroPageX, 6, false)
	op(0x6f, "RRA", opRRA, modeAbsolute, 6, false)
	op(0x7f, "RRA", opRRA, modeAbsoluteX, 7, false)
	op(0x7b, "RRA", opRRA, modeAbsoluteY, 7, false)
	op(0x63, "RRA", opRRA, modeIndirectX, 8, false)
	op(0x73, "RRA", opRRA, modeIndirectY, 8, false)

	op(0x0b, "ANC", opANC, modeImmediate, 2, false)
	op(0x2b, "ANC", opANC, modeImmediate, 2, false)
	op(0x4b, "ALR", opALR, modeImmediate, 2, false)
	op(0x6b, "ARR", opARR, modeImmediate, 2, false)
	op(0xcb, "AXS", opAXS, modeImmediate, 2, false)

	// Unofficial NOP variants, with their documented addressing modes and
	// cycle counts (used by some mapper-detection/compatibility ROMs).
	for _, c := range []uint8{0x1a, 0x3a, 0x5a, 0x7a, 0xda, 0xfa} {
		op(c, "NOP", opNOP, modeImplicit, 2, false)
	}
	op(0x80, "NOP", opNOP, modeImmediate, 2, false)
	for _, c := range []uint8{0x04, 0x44, 0x64} {
		op(c, "NOP", opNOP, modeZeroPage, 3, false)
	}
	for _, c := range []uint8{0x14, 0x34, 0x54, 0x74, 0xd4, 0xf4} {
		op(c, "NOP", opNOP, modeZeroPageX, 4, false)
	}
	op(0x0c, "NOP", opNOP, modeAbsolute, 4, false)
	for _, c := range []uint8{0x1c, 0x3c, 0x5c, 0x7c, 0xdc, 0xfc} {
		op(c, "NOP", opNOP, modeAbsoluteX, 4, true)
	}
}
