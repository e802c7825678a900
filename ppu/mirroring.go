package ppu

import "github.com/bdwalton/gintendo/cartridge"

// nametableIndex folds a nametable address (0x2000-0x3EFF, pre-masked to
// its primary 0x2000-0x2FFF range by the caller being irrelevant here
// since we mask again) down to an offset into the PPU's 2 KiB of physical
// nametable RAM, according to the cartridge's current mirroring mode.
// Four-screen cartridges are expected to supply their own extra RAM
// through the mapper's CHR window; lacking that hardware, it degrades to
// vertical mirroring.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	a := (addr - 0x2000) % 0x1000
	table := a / 0x0400 // which of the 4 logical 1 KiB nametables
	offset := a % 0x0400

	switch p.mapper.Mirroring() {
	case cartridge.MirrorVertical:
		return (table%2)*0x0400 + offset
	case cartridge.MirrorHorizontal:
		return (table/2)*0x0400 + offset
	case cartridge.MirrorSingleScreenLo:
		return offset
	case cartridge.MirrorSingleScreenHi:
		return 0x0400 + offset
	default: // four-screen / unsupported: fall back to vertical
		return (table%2)*0x0400 + offset
	}
}
