package ppu

// ReadRegister services a CPU read of one of the eight PPU registers
// mirrored across 0x2000-0x3FFF. Reads of write-only registers return the
// last value latched onto the internal data bus (the PPU's own open-bus
// behavior), mirroring real hardware.
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg {
	case RegPPUSTATUS:
		v := (p.status & 0xe0) | (p.openBus & 0x1f)
		p.status &^= statusVBlank
		p.writeToggle = false
		p.openBus = v
		return v
	case RegOAMDATA:
		v := p.oam[p.oamAddr]
		p.openBus = v
		return v
	case RegPPUDATA:
		addr := p.v.get() & 0x3fff
		var v uint8
		if addr >= 0x3f00 {
			v = p.readPalette(addr)
			p.readBuffer = p.readVRAM(addr - 0x1000)
		} else {
			v = p.readBuffer
			p.readBuffer = p.readVRAM(addr)
		}
		p.incrementV()
		p.openBus = v
		return v
	default:
		return p.openBus
	}
}

// WriteRegister services a CPU write to one of the eight PPU registers.
func (p *PPU) WriteRegister(reg uint16, val uint8) {
	p.openBus = val
	switch reg {
	case RegPPUCTRL:
		prevNMI := p.ctrl&ctrlGenerateNMI != 0
		p.ctrl = val
		p.t.data = (p.t.data &^ 0x0c00) | (uint16(val&ctrlNametableMask) << 10)
		// A 0-to-1 transition of the NMI-enable bit while the PPU is
		// already in vblank fires an immediate NMI.
		if !prevNMI && val&ctrlGenerateNMI != 0 && p.status&statusVBlank != 0 {
			p.nmiPending = true
		}
	case RegPPUMASK:
		p.mask = val
	case RegOAMADDR:
		p.oamAddr = val
	case RegOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case RegPPUSCROLL:
		if !p.writeToggle {
			p.t.setCoarseX(uint16(val >> 3))
			p.fineX = val & 0x07
		} else {
			p.t.setCoarseY(uint16(val >> 3))
			p.t.setFineY(uint16(val & 0x07))
		}
		p.writeToggle = !p.writeToggle
	case RegPPUADDR:
		if !p.writeToggle {
			p.t.data = (p.t.data & 0x00ff) | (uint16(val&0x3f) << 8)
		} else {
			p.t.data = (p.t.data & 0xff00) | uint16(val)
			p.v.set(p.t.data)
			p.notifyA12()
		}
		p.writeToggle = !p.writeToggle
	case RegPPUDATA:
		addr := p.v.get() & 0x3fff
		if addr >= 0x3f00 {
			p.writePalette(addr, val)
		} else {
			p.writeVRAM(addr, val)
		}
		p.incrementV()
	}
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlIncrementDown != 0 {
		p.v.set(p.v.get() + 32)
	} else {
		p.v.set(p.v.get() + 1)
	}
	p.notifyA12()
}

// WriteOAMDMA is called by the bus for the OAM DMA write at $4014: 256
// consecutive bytes starting at oamAddr.
func (p *PPU) WriteOAMDMA(data []uint8) {
	for _, b := range data {
		p.oam[p.oamAddr] = b
		p.oamAddr++
	}
}

func (p *PPU) notifyA12() {
	if n, ok := p.mapper.(mappersA12Notifier); ok {
		n.NotifyA12(p.v.get(), p.renderingEnabled())
	}
}

// mappersA12Notifier mirrors mappers.A12Notifier; declared locally so this
// file doesn't need to import the mappers package twice for one method
// set check (ppu.go already imports it for the Mapper type).
type mappersA12Notifier interface {
	NotifyA12(addr uint16, renderingEnabled bool)
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.palette[paletteIndex(addr)]
}

func (p *PPU) writePalette(addr uint16, val uint8) {
	p.palette[paletteIndex(addr)] = val & 0x3f
}

// paletteIndex folds the $3F00-$3FFF mirror space down to the 32-byte
// palette RAM, including the $10/$14/$18/$1C -> $00/$04/$08/$0C
// background-color mirroring.
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1f
	if idx >= 0x10 && idx%4 == 0 {
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	if addr < 0x2000 {
		return p.mapper.PPURead(addr)
	}
	return p.nametables[p.nametableIndex(addr)]
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	if addr < 0x2000 {
		p.mapper.PPUWrite(addr, val)
		return
	}
	p.nametables[p.nametableIndex(addr)] = val
}
