// Package ppu implements the NES's 2C02 Picture Processing Unit: the
// background/sprite rendering pipeline, its CPU-visible register file, and
// the VRAM address generator that drives CHR fetches.
// https://www.nesdev.org/wiki/PPU
package ppu

import "github.com/bdwalton/gintendo/mappers"

const (
	vramSize    = 2048
	oamSize     = 256
	paletteSize = 32
)

// Display constants.
const (
	Width  = 256
	Height = 240
)

// CPU-visible register addresses, as mapped into 0x2000-0x2007 (mirrored
// every 8 bytes through 0x3FFF) by the bus.
const (
	RegPPUCTRL   = 0
	RegPPUMASK   = 1
	RegPPUSTATUS = 2
	RegOAMADDR   = 3
	RegOAMDATA   = 4
	RegPPUSCROLL = 5
	RegPPUADDR   = 6
	RegPPUDATA   = 7
)

// PPUCTRL bit flags. https://www.nesdev.org/wiki/PPU_registers#PPUCTRL
const (
	ctrlNametableMask  = 0x03
	ctrlIncrementDown  = 1 << 2
	ctrlSpritePattern  = 1 << 3
	ctrlBGPattern      = 1 << 4
	ctrlSpriteSize8x16 = 1 << 5
	ctrlGenerateNMI    = 1 << 7
)

// PPUMASK bit flags.
const (
	maskGrayscale       = 1 << 0
	maskShowBGLeft      = 1 << 1
	maskShowSpritesLeft = 1 << 2
	maskShowBG          = 1 << 3
	maskShowSprites     = 1 << 4
)

// PPUSTATUS bit flags.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// PPU holds all 2C02 state: the register file, VRAM address generator,
// nametable/palette/OAM memories, and the current position in the
// 341x262 dot/scanline grid.
type PPU struct {
	mapper mappers.Mapper

	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	oam     [oamSize]uint8

	nametables [vramSize]uint8
	palette    [paletteSize]uint8

	v, t        loopy
	fineX       uint8
	writeToggle bool

	readBuffer uint8
	openBus    uint8

	scanline int // 0-261; 261 is the pre-render line
	dot      int // 0-340
	frame    uint64
	oddFrame bool

	frameReady bool
	pixels     [Width * Height]uint8 // index into systemPalette per pixel

	nmiPending bool

	// background shift registers, reloaded every 8 dots
	bgPatternLo, bgPatternHi uint16
	bgAttrLo, bgAttrHi       uint16

	// sprite evaluation, populated once per scanline at dot 257
	secondaryCount   int
	spritePatternsLo [8]uint8
	spritePatternsHi [8]uint8
	spriteAttrs      [8]uint8
	spriteX          [8]uint8
	spriteIsZero     [8]bool
}

// New constructs a PPU wired to the cartridge's mapper, which supplies
// both CHR data and the nametable mirroring mode.
func New(m mappers.Mapper) *PPU {
	return &PPU{mapper: m, scanline: 261}
}

// Frame returns the rendered framebuffer (one palette index per pixel,
// row-major) for the most recently completed frame.
func (p *PPU) Frame() *[Width * Height]uint8 { return &p.pixels }

// FrameReady reports whether a new frame completed since the last call to
// ConsumeFrame, and ConsumeFrame clears the flag.
func (p *PPU) FrameReady() bool { return p.frameReady }
func (p *PPU) ConsumeFrame()    { p.frameReady = false }

// NMIPending reports (and clears) whether the PPU has asserted NMI.
func (p *PPU) NMIPending() bool {
	if p.nmiPending {
		p.nmiPending = false
		return true
	}
	return false
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// Step advances the PPU by one dot. Frame completion is reported through
// FrameReady, which the console polls to know when to deliver the
// framebuffer.
func (p *PPU) Step() {
	p.runDot()

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
		}
	}

	// The pre-render line's last dot is skipped on odd frames when
	// rendering is enabled, keeping the PPU/CPU/APU clocks in their
	// well-known relative phase.
	if p.scanline == 261 && p.dot == 340 && p.oddFrame && p.renderingEnabled() {
		p.dot = 0
		p.scanline = 0
		p.frame++
		p.oddFrame = false
	}
}
