package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gintendo/cartridge"
)

// fakeMapper is a trivial NROM-like stand-in for PPU tests: CHR is a flat
// writable 8 KiB array and mirroring is fixed.
type fakeMapper struct {
	chr  [0x2000]uint8
	mirr cartridge.Mirroring
}

func (m *fakeMapper) CPURead(addr uint16) uint8     { return 0 }
func (m *fakeMapper) CPUWrite(addr uint16, v uint8) {}
func (m *fakeMapper) PPURead(addr uint16) uint8     { return m.chr[addr%0x2000] }
func (m *fakeMapper) PPUWrite(addr uint16, v uint8) { m.chr[addr%0x2000] = v }
func (m *fakeMapper) Mirroring() cartridge.Mirroring { return m.mirr }
func (m *fakeMapper) Name() string                  { return "fake" }

func newTestPPU(mirr cartridge.Mirroring) *PPU {
	return New(&fakeMapper{mirr: mirr})
}

func TestPPUSTATUSReadClearsVBlankAndToggle(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.status |= statusVBlank
	p.writeToggle = true

	v := p.ReadRegister(RegPPUSTATUS)
	assert.NotZero(t, v&statusVBlank)
	assert.Zero(t, p.status&statusVBlank)
	assert.False(t, p.writeToggle)
}

func TestPPUADDRPPUDATAWriteRoundTrip(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)

	p.WriteRegister(RegPPUADDR, 0x23)
	p.WriteRegister(RegPPUADDR, 0x05)
	require.EqualValues(t, 0x2305, p.v.get())

	p.WriteRegister(RegPPUDATA, 0x42)
	assert.EqualValues(t, 0x2306, p.v.get()) // incremented by 1 (PPUCTRL bit2 clear)
	assert.EqualValues(t, 0x42, p.nametables[p.nametableIndex(0x2305)])
}

func TestPaletteMirroring(t *testing.T) {
	p := newTestPPU(cartridge.MirrorVertical)
	p.writePalette(0x3f10, 0x0a)
	assert.EqualValues(t, 0x0a, p.readPalette(0x3f00))
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.mapper.(*fakeMapper).chr[0x0010] = 0x55

	p.v.set(0x0010)
	first := p.ReadRegister(RegPPUDATA)
	assert.Zero(t, first) // buffered read returns the stale (zero) value first
	second := p.ReadRegister(RegPPUDATA)
	assert.EqualValues(t, 0x55, second)

	p.writePalette(0x3f01, 0x21)
	p.v.set(0x3f01)
	assert.EqualValues(t, 0x21, p.ReadRegister(RegPPUDATA)) // palette reads bypass the buffer
}

func TestNMIAssertedAtScanline241Dot1(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.ctrl |= ctrlGenerateNMI
	p.scanline, p.dot = 241, 1

	p.Step() // runs the dot-1 work for (241,1) before advancing position

	assert.True(t, p.NMIPending())
	assert.NotZero(t, p.status&statusVBlank)
}

func TestPrerenderClearsStatusFlags(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.status = statusVBlank | statusSprite0Hit | statusSpriteOverflow
	p.scanline, p.dot = 261, 1

	p.Step() // runs the dot-1 work for (261,1) before advancing position

	assert.Zero(t, p.status)
}

func TestHorizontalMirroringNametableIndex(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	// Nametables 0 and 1 (top row) share physical page 0; 2 and 3 share page 1.
	assert.EqualValues(t, p.nametableIndex(0x2000), p.nametableIndex(0x2400))
	assert.NotEqualValues(t, p.nametableIndex(0x2000), p.nametableIndex(0x2800))
}

func TestVerticalMirroringNametableIndex(t *testing.T) {
	p := newTestPPU(cartridge.MirrorVertical)
	assert.EqualValues(t, p.nametableIndex(0x2000), p.nametableIndex(0x2800))
	assert.NotEqualValues(t, p.nametableIndex(0x2000), p.nametableIndex(0x2400))
}

func TestOAMDMAWritesSequentialBytes(t *testing.T) {
	p := newTestPPU(cartridge.MirrorHorizontal)
	p.oamAddr = 0

	data := make([]uint8, 256)
	for i := range data {
		data[i] = uint8(i)
	}
	p.WriteOAMDMA(data)

	assert.EqualValues(t, 0, p.oam[0])
	assert.EqualValues(t, 255, p.oam[255])
}
