package mappers

import "github.com/bdwalton/gintendo/cartridge"

func init() {
	register(1, newMMC1)
}

// MMC1 PRG banking modes, loaded from control register bits 2-3.
const (
	mmc1PRG32K = iota
	mmc1PRG32K2
	mmc1PRGFixFirst
	mmc1PRGFixLast
)

// mmc1 implements Mapper 1 (MMC1/SxROM): a serial port loaded by five
// consecutive writes to 0x8000-0xFFFF. On the fifth write, bits 13-14 of
// the last written address select which internal register (control, CHR0,
// CHR1, PRG) receives the accumulated 5-bit value.
type mmc1 struct {
	c *cartridge.Cartridge

	shift      uint8
	shiftCount uint8

	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8

	curCycle       uint64
	lastWriteCycle uint64
	haveWritten    bool

	numPRGBanks uint8 // 16 KiB banks
	numCHRBanks uint8 // 4 KiB banks (0 if CHR-RAM and not bank-granular)
}

func newMMC1(c *cartridge.Cartridge) Mapper {
	m := &mmc1{
		c:           c,
		control:     0x0c, // power-on: PRG fix-last, 8 KiB CHR mode
		numPRGBanks: uint8(len(c.PRG) / 0x4000),
	}
	if !c.ChrIsRAM() {
		m.numCHRBanks = uint8(len(c.CHR) / 0x1000)
	}
	return m
}

func (m *mmc1) Name() string { return "MMC1" }

// SetCycle lets the bus tell the mapper which CPU cycle the next CPUWrite
// belongs to, so the second write of a read-modify-write instruction's
// back-to-back pair (arriving within one cycle of the first) is dropped.
func (m *mmc1) SetCycle(cycle uint64) {
	m.curCycle = cycle
}

func (m *mmc1) prgMode() uint8  { return (m.control >> 2) & 0x03 }
func (m *mmc1) chr4KMode() bool { return m.control&0x10 != 0 }

func (m *mmc1) Mirroring() cartridge.Mirroring {
	switch m.control & 0x03 {
	case 0:
		return cartridge.MirrorSingleScreenLo
	case 1:
		return cartridge.MirrorSingleScreenHi
	case 2:
		return cartridge.MirrorVertical
	default:
		return cartridge.MirrorHorizontal
	}
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.c.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		bank, off := m.prgBankFor(addr)
		idx := int(bank)*0x4000 + int(off)
		if idx < 0 || idx >= len(m.c.PRG) {
			return 0
		}
		return m.c.PRG[idx]
	}
	return 0
}

func (m *mmc1) prgBankFor(addr uint16) (bank uint8, off uint16) {
	switch m.prgMode() {
	case mmc1PRG32K, mmc1PRG32K2:
		bank = (m.prg &^ 1) >> 1 // bits 4-1 select a 32 KiB bank pair
		// Express as a 16 KiB bank index into the low half; offset covers
		// the full 32 KiB window.
		return bank * 2, addr - 0x8000
	case mmc1PRGFixFirst:
		if addr < 0xc000 {
			return 0, addr - 0x8000
		}
		return m.prg & 0x0f, addr - 0xc000
	default: // mmc1PRGFixLast
		if addr < 0xc000 {
			return m.prg & 0x0f, addr - 0x8000
		}
		return m.numPRGBanks - 1, addr - 0xc000
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.c.PRGRAM[addr-0x6000] = val
		return
	}
	if addr < 0x8000 {
		return
	}

	// A read-modify-write instruction (e.g. INC/DEC absolute,X targeting
	// 0x8000+) issues a dummy write of the original value followed by the
	// real write one cycle later; real MMC1 hardware can't tell these
	// apart from a single write and drops the second.
	if m.haveWritten && m.curCycle-m.lastWriteCycle <= 1 {
		return
	}
	m.lastWriteCycle = m.curCycle
	m.haveWritten = true

	if val&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0c // force PRG fix-last mode
		return
	}

	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	switch {
	case addr <= 0x9fff:
		m.control = m.shift
	case addr <= 0xbfff:
		m.chr0 = m.shift
	case addr <= 0xdfff:
		m.chr1 = m.shift
	default:
		m.prg = m.shift
	}
	m.shift = 0
	m.shiftCount = 0
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	idx := m.chrIndex(addr)
	if idx >= len(m.c.CHR) {
		return 0
	}
	return m.c.CHR[idx]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if !m.c.ChrIsRAM() {
		return
	}
	idx := m.chrIndex(addr)
	if idx < len(m.c.CHR) {
		m.c.CHR[idx] = val
	}
}

func (m *mmc1) chrIndex(addr uint16) int {
	if m.chr4KMode() {
		if addr < 0x1000 {
			return int(m.chr0)*0x1000 + int(addr)
		}
		return int(m.chr1)*0x1000 + int(addr-0x1000)
	}
	bank := m.chr0 &^ 1 // 8 KiB mode selects an even 4 KiB pair
	return int(bank)*0x1000 + int(addr)
}
