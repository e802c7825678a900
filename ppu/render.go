package ppu

// runDot executes the work for a single PPU dot at the current
// scanline/dot position. It follows the well-documented 2C02 timing
// diagram closely enough to produce correct frame output and NMI/sprite-0
// timing, batching the eight-dot tile fetch sequence into a single reload
// at the tile boundary rather than modeling each of its four sub-fetches
// as a separate dot.
func (p *PPU) runDot() {
	visible := p.scanline < 240
	prerender := p.scanline == 261

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if visible || prerender {
		p.updateShiftersAndScroll()
	}

	if prerender && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}
	if prerender && p.dot >= 280 && p.dot <= 304 {
		p.v.transferY(&p.t)
	}

	if visible && p.dot == 257 {
		p.evaluateSprites()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlGenerateNMI != 0 {
			p.nmiPending = true
		}
		p.frameReady = true
	}
}

// updateShiftersAndScroll handles the background tile-fetch pipeline and
// the coarse-X/coarse-Y scroll increments that accompany it.
func (p *PPU) updateShiftersAndScroll() {
	if !p.renderingEnabled() {
		return
	}

	fetchPhase := p.dot >= 1 && p.dot <= 256 || p.dot >= 321 && p.dot <= 336
	if fetchPhase && p.dot%8 == 0 {
		p.reloadShifters()
		p.v.incrementCoarseX()
	}
	if p.dot == 256 {
		p.v.incrementCoarseYWrapping()
	}
	if p.dot == 257 {
		p.v.transferX(&p.t)
	}

	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
}

// reloadShifters fetches the next background tile's pattern and attribute
// bytes and loads them into the low byte of each shift register.
func (p *PPU) reloadShifters() {
	coarseX, coarseY := p.v.coarseX(), p.v.coarseY()
	nametableBase := uint16(0x2000) | (p.v.get() & 0x0c00)

	tileAddr := nametableBase | (coarseY << 5) | coarseX
	tileID := p.readVRAM(tileAddr)

	attrAddr := nametableBase | 0x03c0 | ((coarseY >> 2) << 3) | (coarseX >> 2)
	attrByte := p.readVRAM(attrAddr)
	shift := uint(0)
	if coarseY&2 != 0 {
		shift += 4
	}
	if coarseX&2 != 0 {
		shift += 2
	}
	attrBits := (attrByte >> shift) & 0x03

	patternBase := uint16(0)
	if p.ctrl&ctrlBGPattern != 0 {
		patternBase = 0x1000
	}
	fineY := p.v.fineY()
	lo := p.mapper.PPURead(patternBase + uint16(tileID)*16 + fineY)
	hi := p.mapper.PPURead(patternBase + uint16(tileID)*16 + fineY + 8)

	p.bgPatternLo = (p.bgPatternLo &^ 0xff) | uint16(lo)
	p.bgPatternHi = (p.bgPatternHi &^ 0xff) | uint16(hi)
	if attrBits&1 != 0 {
		p.bgAttrLo |= 0xff
	} else {
		p.bgAttrLo &^= 0xff
	}
	if attrBits&2 != 0 {
		p.bgAttrHi |= 0xff
	} else {
		p.bgAttrHi &^= 0xff
	}
}

// renderPixel computes the final color for the current (dot-1, scanline)
// pixel from the background shifters and the sprite line buffer, applying
// sprite priority and sprite-0-hit detection, and writes it to the
// framebuffer.
func (p *PPU) renderPixel() {
	x, y := p.dot-1, p.scanline

	bgPixel, bgPalette := uint8(0), uint8(0)
	if p.mask&maskShowBG != 0 && (x >= 8 || p.mask&maskShowBGLeft != 0) {
		bit := uint(15 - p.fineX)
		lo := (p.bgPatternLo >> bit) & 1
		hi := (p.bgPatternHi >> bit) & 1
		bgPixel = uint8(hi<<1 | lo)
		palLo := (p.bgAttrLo >> bit) & 1
		palHi := (p.bgAttrHi >> bit) & 1
		bgPalette = uint8(palHi<<1 | palLo)
	}

	sprPixel, sprPalette, sprBehind, sprIsZero := p.spritePixelAt(x)
	if !(p.mask&maskShowSprites != 0 && (x >= 8 || p.mask&maskShowSpritesLeft != 0)) {
		sprPixel = 0
	}

	if sprIsZero && sprPixel != 0 && bgPixel != 0 && x != 255 {
		p.status |= statusSprite0Hit
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && sprPixel == 0:
		paletteAddr = 0x3f00
	case bgPixel == 0:
		paletteAddr = 0x3f10 + uint16(sprPalette)*4 + uint16(sprPixel)
	case sprPixel == 0:
		paletteAddr = 0x3f00 + uint16(bgPalette)*4 + uint16(bgPixel)
	case sprBehind:
		paletteAddr = 0x3f00 + uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		paletteAddr = 0x3f10 + uint16(sprPalette)*4 + uint16(sprPixel)
	}

	p.pixels[y*Width+x] = p.readPalette(paletteAddr) & 0x3f
}
