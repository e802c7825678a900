package mappers

import "github.com/bdwalton/gintendo/cartridge"

func init() {
	register(2, newUxROM)
}

// uxrom implements Mapper 2 (UxROM): a single 16 KiB switchable PRG bank at
// 0x8000-0xBFFF, with the last bank fixed at 0xC000-0xFFFF. CHR is always
// RAM (no CHR banking).
type uxrom struct {
	c        *cartridge.Cartridge
	prgBank  uint8
	numBanks uint8
}

func newUxROM(c *cartridge.Cartridge) Mapper {
	return &uxrom{c: c, numBanks: uint8(len(c.PRG) / 0x4000)}
}

func (m *uxrom) Name() string { return "UxROM" }

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.c.PRGRAM[addr-0x6000]
	case addr >= 0x8000 && addr < 0xc000:
		return m.c.PRG[int(m.prgBank)*0x4000+int(addr-0x8000)]
	case addr >= 0xc000:
		last := m.numBanks - 1
		return m.c.PRG[int(last)*0x4000+int(addr-0xc000)]
	}
	return 0
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.c.PRGRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.prgBank = val % m.numBanks
	}
}

func (m *uxrom) PPURead(addr uint16) uint8 {
	return m.c.CHR[int(addr)%len(m.c.CHR)]
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) {
	if m.c.ChrIsRAM() {
		m.c.CHR[int(addr)%len(m.c.CHR)] = val
	}
}

func (m *uxrom) Mirroring() cartridge.Mirroring {
	return m.c.Mirroring()
}
