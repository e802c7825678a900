package ppu

// evaluateSprites scans primary OAM for the up to 8 sprites visible on the
// next scanline and pre-fetches their pattern data, mirroring the real
// PPU's dots 65-256 sprite evaluation and dots 257-320 pattern fetch,
// batched into one pass for simplicity.
//
// Once 8 sprites are found, hardware doesn't cleanly stop looking: it keeps
// reading OAM to decide the overflow flag, but a wiring bug increments the
// in-sprite byte offset (m) right alongside the sprite index (n) instead of
// resetting it between sprites. That "diagonal" scan is reproduced below
// rather than a simple 9th-sprite check, since it causes real games'
// overflow flag to both trigger on non-Y bytes that happen to fall in
// range and miss genuine 9th-sprite overflows.
// https://www.nesdev.org/wiki/PPU_sprite_evaluation
func (p *PPU) evaluateSprites() {
	height := 8
	if p.ctrl&ctrlSpriteSize8x16 != 0 {
		height = 16
	}
	targetLine := p.scanline + 1

	count := 0
	n := 0
	for n < 64 && count < 8 {
		base := n * 4
		row := targetLine - int(p.oam[base]) - 1
		if row < 0 || row >= height {
			n++
			continue
		}
		p.loadSpriteSlot(count, n, base, row, height)
		count++
		n++
	}

	if n < 64 {
		m := 0
		for n < 64 {
			row := targetLine - int(p.oam[n*4+m]) - 1
			if row >= 0 && row < height {
				p.status |= statusSpriteOverflow
				break
			}
			n++
			m = (m + 1) % 4
		}
	}

	p.secondaryCount = count
}

// loadSpriteSlot fetches sprite n's pattern data (already known to cover
// row on the upcoming scanline) into secondary-OAM slot slot.
func (p *PPU) loadSpriteSlot(slot, n, base, row, height int) {
	tileID := p.oam[base+1]
	attr := p.oam[base+2]
	x := p.oam[base+3]

	flipV := attr&0x80 != 0
	flipH := attr&0x40 != 0
	if flipV {
		row = height - 1 - row
	}

	var patternBase uint16
	var tileIndex uint8
	if height == 16 {
		if tileID&1 != 0 {
			patternBase = 0x1000
		}
		tileIndex = tileID &^ 1
		if row >= 8 {
			tileIndex++
			row -= 8
		}
	} else {
		if p.ctrl&ctrlSpritePattern != 0 {
			patternBase = 0x1000
		}
		tileIndex = tileID
	}

	lo := p.mapper.PPURead(patternBase + uint16(tileIndex)*16 + uint16(row))
	hi := p.mapper.PPURead(patternBase + uint16(tileIndex)*16 + uint16(row) + 8)
	if flipH {
		lo, hi = reverseBits(lo), reverseBits(hi)
	}

	p.spritePatternsLo[slot] = lo
	p.spritePatternsHi[slot] = hi
	p.spriteAttrs[slot] = attr & 0x23 // palette (bits 0-1) + priority (bit 5)
	p.spriteX[slot] = x
	p.spriteIsZero[slot] = n == 0
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixelAt returns the sprite-layer pixel (0 = transparent) at
// column x of the current scanline, along with its palette index, whether
// it renders behind the background, and whether it came from OAM slot 0
// (for sprite-0-hit detection). Sprites are checked in OAM order, so the
// first opaque match is the highest-priority sprite.
func (p *PPU) spritePixelAt(x int) (pixel, palette uint8, behind, isZero bool) {
	for i := 0; i < p.secondaryCount; i++ {
		sx := int(p.spriteX[i])
		if x < sx || x >= sx+8 {
			continue
		}
		bit := uint(7 - (x - sx))
		lo := (p.spritePatternsLo[i] >> bit) & 1
		hi := (p.spritePatternsHi[i] >> bit) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		attr := p.spriteAttrs[i]
		return px, attr & 0x03, attr&0x20 != 0, p.spriteIsZero[i]
	}
	return 0, 0, false, false
}
