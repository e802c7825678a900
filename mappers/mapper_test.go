package mappers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gintendo/cartridge"
)

// buildCart constructs a minimal well-formed iNES image for the given
// mapper number with prgBanks * 16KiB PRG and chrBanks * 8KiB CHR, each
// filled with a distinct recognizable pattern so bank-switch tests can tell
// banks apart.
func buildCart(t *testing.T, mapperNum uint8, prgBanks, chrBanks uint8) *cartridge.Cartridge {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("NES\x1a")
	b.WriteByte(prgBanks)
	b.WriteByte(chrBanks)
	b.WriteByte((mapperNum & 0x0f) << 4)
	b.WriteByte(mapperNum & 0xf0)
	b.Write(make([]byte, 8))

	for bank := uint8(0); bank < prgBanks; bank++ {
		page := make([]byte, 0x4000)
		for i := range page {
			page[i] = bank
		}
		b.Write(page)
	}
	for bank := uint8(0); bank < chrBanks; bank++ {
		page := make([]byte, 0x2000)
		for i := range page {
			page[i] = bank
		}
		b.Write(page)
	}

	c, err := cartridge.LoadBytes(b.Bytes())
	require.NoError(t, err)
	return c
}

func TestNROMMirrorsSmallPRG(t *testing.T) {
	c := buildCart(t, 0, 1, 1)
	m, err := Get(c)
	require.NoError(t, err)

	assert.Equal(t, m.CPURead(0x8000), m.CPURead(0xc000))
	assert.Equal(t, "NROM", m.Name())
}

func TestUxROMBankSwitch(t *testing.T) {
	c := buildCart(t, 2, 4, 0)
	c.CHR = make([]byte, 0x2000) // CHR-RAM
	m, err := Get(c)
	require.NoError(t, err)

	m.CPUWrite(0x8000, 2)
	assert.EqualValues(t, 2, m.CPURead(0x8000))
	// Last bank is always fixed at 0xC000 regardless of the select register.
	assert.EqualValues(t, 3, m.CPURead(0xc000))
}

func TestCNROMChrBankSwitch(t *testing.T) {
	c := buildCart(t, 3, 1, 4)
	m, err := Get(c)
	require.NoError(t, err)

	m.CPUWrite(0x8000, 3)
	assert.EqualValues(t, 3, m.PPURead(0x0000))
}

func TestMMC1PowerOnIsFixLast(t *testing.T) {
	c := buildCart(t, 1, 4, 0)
	c.CHR = make([]byte, 0x2000)
	m, err := Get(c)
	require.NoError(t, err)

	assert.EqualValues(t, 3, m.CPURead(0xc000))
}

func TestMMC1SerialLoadSelectsPRGBank(t *testing.T) {
	c := buildCart(t, 1, 4, 0)
	c.CHR = make([]byte, 0x2000)
	m, err := Get(c)
	require.NoError(t, err)
	cs, ok := m.(CycleSetter)
	require.True(t, ok)

	// Write control = 0x0c (fix-last PRG, 8KiB CHR): bits LSB-first 0,0,1,1,0.
	writeMMC1Serial(cs, m, 0x8000, 0x0c)
	// Then PRG register = 2, selecting bank 2 at 0x8000-0xBFFF with the
	// last bank still fixed at 0xC000-0xFFFF.
	writeMMC1Serial(cs, m, 0xe000, 2)

	assert.EqualValues(t, 2, m.CPURead(0x8000))
	assert.EqualValues(t, 3, m.CPURead(0xc000))
}

func TestMMC1DropsSameCycleWrite(t *testing.T) {
	c := buildCart(t, 1, 2, 0)
	c.CHR = make([]byte, 0x2000)
	m, err := Get(c)
	require.NoError(t, err)
	cs := m.(CycleSetter)

	cs.SetCycle(100)
	m.CPUWrite(0x8000, 1) // bit 0 of the shift register
	cs.SetCycle(101)      // one cycle later: second write of an RMW pair, dropped
	m.CPUWrite(0x8000, 0)

	cs.SetCycle(105)
	m.CPUWrite(0x8000, 0)
	cs.SetCycle(109)
	m.CPUWrite(0x8000, 0)
	// Writes at 100, 105 and 109 were shifted in; the one at 101 was not.
	assert.EqualValues(t, 3, m.(*mmc1).shiftCount)
	cs.SetCycle(113)
	m.CPUWrite(0x8000, 0x80) // reset: abandons the in-progress load

	// The reset forces fix-last mode regardless of what was loading.
	assert.EqualValues(t, 1, m.CPURead(0xc000))
}

func TestMMC3BankSelectAndData(t *testing.T) {
	c := buildCart(t, 4, 8, 0)
	c.CHR = make([]byte, 0x4000)
	fill8KiBBanks(c.PRG)
	m, err := Get(c)
	require.NoError(t, err)

	// Select R6 (PRG, 0x8000-0x9FFF in mode 0), set it to bank 5.
	m.CPUWrite(0x8000, 6)
	m.CPUWrite(0x8001, 5)
	assert.EqualValues(t, 5, m.CPURead(0x8000))
	// Last bank is always fixed at 0xE000-0xFFFF.
	last := uint8(len(c.PRG)/0x2000) - 1
	assert.EqualValues(t, last, m.CPURead(0xe000))
}

// fill8KiBBanks overwrites buf so that every 8 KiB bank is filled with its
// own bank index, letting MMC3 tests (which bank-switch at 8 KiB
// granularity) tell banks apart; buildCart only fills at 16 KiB
// granularity, which is too coarse for that.
func fill8KiBBanks(buf []byte) {
	for bank := 0; bank*0x2000 < len(buf); bank++ {
		start := bank * 0x2000
		end := start + 0x2000
		for i := start; i < end; i++ {
			buf[i] = byte(bank)
		}
	}
}

func TestMMC3IRQFiresAfterReload(t *testing.T) {
	c := buildCart(t, 4, 8, 0)
	c.CHR = make([]byte, 0x4000)
	m, err := Get(c)
	require.NoError(t, err)
	irq := m.(IRQSource)
	a12 := m.(A12Notifier)

	m.CPUWrite(0xc000, 4) // IRQ latch = 4
	m.CPUWrite(0xc001, 0) // force reload on next clock
	m.CPUWrite(0xe001, 0) // enable IRQ

	for i := 0; i < 5; i++ {
		for j := 0; j < 10; j++ {
			a12.NotifyA12(0x0000, true)
		}
		a12.NotifyA12(0x1000, true)
	}

	assert.True(t, irq.IRQPending())
	irq.ClearIRQ()
	assert.False(t, irq.IRQPending())
}

func TestMMC3MirroringToggle(t *testing.T) {
	c := buildCart(t, 4, 2, 0)
	m, err := Get(c)
	require.NoError(t, err)

	m.CPUWrite(0xa000, 0)
	assert.Equal(t, cartridge.MirrorVertical, m.Mirroring())
	m.CPUWrite(0xa000, 1)
	assert.Equal(t, cartridge.MirrorHorizontal, m.Mirroring())
}

// writeMMC1Serial feeds val's five low bits LSB-first through the MMC1
// serial port, as a real CPU would across five separate instructions
// (hence five distinct cycle numbers).
func writeMMC1Serial(cs CycleSetter, m Mapper, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		cs.SetCycle(uint64(1000 + i*4))
		bit := (val >> i) & 1
		m.CPUWrite(addr, bit)
	}
}
