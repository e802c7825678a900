package mappers

import "github.com/bdwalton/gintendo/cartridge"

func init() {
	register(0, newNROM)
}

// nrom implements Mapper 0 (NROM): no bank switching. A 16 KiB PRG image is
// mirrored into both halves of 0x8000-0xFFFF; a 32 KiB image maps directly.
type nrom struct {
	c *cartridge.Cartridge
}

func newNROM(c *cartridge.Cartridge) Mapper {
	return &nrom{c: c}
}

func (m *nrom) Name() string { return "NROM" }

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.c.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		return m.c.PRG[int(addr-0x8000)%len(m.c.PRG)]
	}
	return 0
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.c.PRGRAM[addr-0x6000] = val
	}
	// PRG-ROM writes are ignored; NROM has no registers.
}

func (m *nrom) PPURead(addr uint16) uint8 {
	return m.c.CHR[int(addr)%len(m.c.CHR)]
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.c.ChrIsRAM() {
		m.c.CHR[int(addr)%len(m.c.CHR)] = val
	}
}

func (m *nrom) Mirroring() cartridge.Mirroring {
	return m.c.Mirroring()
}
