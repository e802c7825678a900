package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdwalton/gintendo/cartridge"
)

// buildNROM constructs a minimal 32 KiB-PRG/8 KiB-CHR NROM (mapper 0) image
// whose reset vector points at a tight infinite loop, so Step/StepFrame can
// run indefinitely without the CPU running off into unmapped opcodes.
func buildNROM(t *testing.T) *cartridge.Cartridge {
	t.Helper()

	data := make([]byte, 16+32768+8192)
	copy(data[0:4], []byte("NES\x1a"))
	data[4] = 2 // 32 KiB PRG
	data[5] = 1 // 8 KiB CHR

	prg := data[16 : 16+32768]
	// JMP $8000 (loop forever) at the reset vector target.
	prg[0] = 0x4c
	prg[1] = 0x00
	prg[2] = 0x80
	// Reset vector -> 0x8000.
	prg[len(prg)-4] = 0x00               // 0xfffc low
	prg[len(prg)-3] = 0x80               // 0xfffd high
	prg[len(prg)-2] = 0x00               // 0xfffe (IRQ) low
	prg[len(prg)-1] = 0x80               // 0xffff (IRQ) high

	c, err := cartridge.LoadBytes(data)
	require.NoError(t, err)
	return c
}

func TestNewWiresAllComponents(t *testing.T) {
	c := buildNROM(t)
	cons, err := New(c)
	require.NoError(t, err)

	assert.NotNil(t, cons.CPU)
	assert.NotNil(t, cons.PPU)
	assert.NotNil(t, cons.APU)
	assert.NotNil(t, cons.Mapper)
	assert.EqualValues(t, 0x8000, cons.CPU.PC)
}

func TestStepProducesOneSamplePerCPUCycle(t *testing.T) {
	c := buildNROM(t)
	cons, err := New(c)
	require.NoError(t, err)

	samples := cons.Step()
	assert.NotEmpty(t, samples)
	assert.Len(t, samples, 3) // JMP absolute takes 3 cycles
}

func TestStepFrameProducesFullFramebuffer(t *testing.T) {
	c := buildNROM(t)
	cons, err := New(c)
	require.NoError(t, err)

	frame := cons.StepFrame()
	assert.Len(t, frame.Pixels[:], 256*240)
	assert.NotEmpty(t, frame.Samples)
}

func TestSetControllerStateReachesBus(t *testing.T) {
	c := buildNROM(t)
	cons, err := New(c)
	require.NoError(t, err)

	cons.SetControllerState(0, 0x01)
	cons.Bus.Write(0x4016, 1)
	cons.Bus.Write(0x4016, 0)
	assert.EqualValues(t, 1, cons.Bus.Read(0x4016)&0x01)
}
