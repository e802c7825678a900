package mappers

import "github.com/bdwalton/gintendo/cartridge"

func init() {
	register(4, newMMC3)
}

// mmc3 implements Mapper 4 (MMC3/TxROM): six switchable CHR banks (two of
// 2 KiB, four of 1 KiB) and
// two switchable 8 KiB PRG banks (plus two fixed banks), selected through a
// bank-select/bank-data register pair at 0x8000/0x8001, and a scanline IRQ
// counter clocked by PPU address-line A12 rising edges.
type mmc3 struct {
	c *cartridge.Cartridge

	bankSelect uint8
	bankReg    [8]uint8

	mirroring  cartridge.Mirroring
	prgRAMProt uint8

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqPending bool
	irqReload  bool

	a12Low int // NotifyA12 calls seen with A12 low since the last high one

	numPRGBanks8K uint8
	numCHRBanks1K uint8
}

func newMMC3(c *cartridge.Cartridge) Mapper {
	m := &mmc3{
		c:             c,
		mirroring:     c.Mirroring(),
		numPRGBanks8K: uint8(len(c.PRG) / 0x2000),
	}
	if !c.ChrIsRAM() {
		m.numCHRBanks1K = uint8(len(c.CHR) / 0x0400)
	}
	return m
}

func (m *mmc3) Name() string { return "MMC3" }

func (m *mmc3) Mirroring() cartridge.Mirroring { return m.mirroring }

func (m *mmc3) prgMode() uint8 { return (m.bankSelect >> 6) & 1 }
func (m *mmc3) chrMode() uint8 { return (m.bankSelect >> 7) & 1 }

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.c.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		bank := m.prgBankFor(addr)
		idx := int(bank)*0x2000 + int((addr-0x8000)%0x2000)
		if idx < 0 || idx >= len(m.c.PRG) {
			return 0
		}
		return m.c.PRG[idx]
	}
	return 0
}

// prgBankFor resolves which 8 KiB PRG bank backs the given CPU address.
// R6/R7 (bankReg[6], bankReg[7]) are switchable; the other two 8 KiB
// windows are fixed, with the 0x8000-0x9FFF and 0xC000-0xDFFF windows
// swapping between R6 and the second-last bank depending on the PRG mode bit.
func (m *mmc3) prgBankFor(addr uint16) uint8 {
	last := m.numPRGBanks8K - 1
	secondLast := last - 1
	switch {
	case addr < 0xa000:
		if m.prgMode() == 0 {
			return m.bankReg[6] % m.numPRGBanks8K
		}
		return secondLast
	case addr < 0xc000:
		return m.bankReg[7] % m.numPRGBanks8K
	case addr < 0xe000:
		if m.prgMode() == 0 {
			return secondLast
		}
		return m.bankReg[6] % m.numPRGBanks8K
	default:
		return last
	}
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMProt&0x40 == 0 || m.prgRAMProt&0x80 == 0 {
			m.c.PRGRAM[addr-0x6000] = val
		}
	case addr >= 0x8000 && addr <= 0x9fff:
		if addr&1 == 0 {
			m.bankSelect = val
		} else {
			m.bankReg[m.bankSelect&0x07] = val
		}
	case addr >= 0xa000 && addr <= 0xbfff:
		if addr&1 == 0 {
			if val&1 == 0 {
				m.mirroring = cartridge.MirrorVertical
			} else {
				m.mirroring = cartridge.MirrorHorizontal
			}
		} else {
			m.prgRAMProt = val
		}
	case addr >= 0xc000 && addr <= 0xdfff:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	default: // 0xe000-0xffff
		if addr&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	idx := m.chrIndex(addr)
	if idx < 0 || idx >= len(m.c.CHR) {
		return 0
	}
	return m.c.CHR[idx]
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if !m.c.ChrIsRAM() {
		return
	}
	idx := m.chrIndex(addr)
	if idx >= 0 && idx < len(m.c.CHR) {
		m.c.CHR[idx] = val
	}
}

// chrIndex maps a PPU pattern-table address to a byte offset in CHR. The
// 8 KiB window splits into a 2x2KiB half (R0, R1) and a 4x1KiB half (R2-R5);
// chrMode swaps which 4 KiB half of the address space each occupies.
func (m *mmc3) chrIndex(addr uint16) int {
	addr &= 0x1fff
	if m.chrMode() == 1 {
		addr ^= 0x1000
	}

	var bank1K uint8
	var offset uint16
	switch {
	case addr < 0x0800:
		bank1K = (m.bankReg[0] &^ 1) + uint8(addr/0x0400)
		offset = addr % 0x0400
	case addr < 0x1000:
		bank1K = (m.bankReg[1] &^ 1) + uint8((addr-0x0800)/0x0400)
		offset = addr % 0x0400
	default:
		bank1K = m.bankReg[2+(addr-0x1000)/0x0400]
		offset = addr % 0x0400
	}
	return int(bank1K)*0x0400 + int(offset)
}

// NotifyA12 implements A12Notifier: the PPU calls this when a PPUADDR write
// or a PPUDATA access changes v, so the mapper can detect A12's rising edge;
// rendering fetches do not call it. A real MMC3 requires the line to have
// been low for several PPU cycles before counting the edge; we approximate
// the filter by counting low-A12 notifications.
func (m *mmc3) NotifyA12(addr uint16, renderingEnabled bool) {
	high := addr&0x1000 != 0
	if !high {
		m.a12Low++
		return
	}
	if m.a12Low < 8 {
		m.a12Low = 0
		return
	}
	m.a12Low = 0
	if !renderingEnabled {
		return
	}
	m.clockIRQCounter()
}

func (m *mmc3) clockIRQCounter() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) IRQPending() bool { return m.irqPending }
func (m *mmc3) ClearIRQ()        { m.irqPending = false }
