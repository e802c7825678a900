package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	data [0x10000]uint8
}

func (m *fakeMemory) Read(addr uint16) uint8 { return m.data[addr] }

func TestPulseLengthCounterSilencesChannel(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01) // enable pulse1
	a.WriteRegister(0x4000, 0x30) // halt=1 (bit5 set), constant volume 0; halt is cleared below
	a.WriteRegister(0x4002, 0xff)
	a.WriteRegister(0x4003, 0x07) // load length counter, non-zero

	require.True(t, a.Pulse1.Length.active())

	a.Pulse1.lengthHalt = false
	for i := 0; i < 256; i++ {
		stepLengthCounter(&a.Pulse1.Length, a.Pulse1.lengthHalt)
	}
	assert.False(t, a.Pulse1.Length.active())
}

func TestStatusWriteClearsDisabledChannelLength(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	require.True(t, a.Pulse1.Length.active())

	a.WriteRegister(0x4015, 0x00)
	assert.False(t, a.Pulse1.Length.active())
}

func TestFrameCounterFourStepFiresIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step mode, IRQ enabled

	for i := uint64(0); i < 29830; i++ {
		a.Step()
	}
	assert.True(t, a.IRQPending())
}

func TestFrameCounterInhibitSuppressesIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x40) // 4-step, inhibit set

	for i := uint64(0); i < 29830; i++ {
		a.Step()
	}
	assert.False(t, a.IRQPending())
}

func TestFrameCounterFiveStepNeverIRQs(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	for i := uint64(0); i < 37282; i++ {
		a.Step()
	}
	assert.False(t, a.frameIRQ)
}

func TestDMCFetchesFromMemoryAndStallsCPU(t *testing.T) {
	a := New()
	mem := &fakeMemory{}
	mem.data[0xc000] = 0xaa
	a.SetMemory(mem)

	a.WriteRegister(0x4010, 0x00)
	a.WriteRegister(0x4012, 0x00) // sample address 0xc000
	a.WriteRegister(0x4013, 0x00) // sample length 1
	a.WriteRegister(0x4015, 0x10) // enable DMC

	for i := 0; i < 500; i++ {
		a.Step()
	}
	assert.Greater(t, a.TakeStall(), 0)
}

func TestMixerZeroWhenAllChannelsSilent(t *testing.T) {
	a := New()
	assert.Zero(t, a.mixChannels())
}

func TestMixerNonZeroWithPulseActive(t *testing.T) {
	a := New()
	a.Pulse1.enabled = true
	a.Pulse1.Length.value = 10
	a.Pulse1.timerPeriod = 100
	a.Pulse1.duty = 2
	a.Pulse1.dutyStep = 2 // dutyTable[2][2] == 1
	a.Pulse1.Envelope.constant = true
	a.Pulse1.Envelope.volume = 15

	assert.Greater(t, a.mixChannels(), float32(0))
}

func TestSweepMutesLowPeriod(t *testing.T) {
	s := &SweepUnit{}
	assert.True(t, sweepMuted(s, 4, true))
	assert.False(t, sweepMuted(s, 100, true))
}

func TestNoisePeriodTableLookup(t *testing.T) {
	a := New()
	a.WriteRegister(0x400e, 0x02)
	assert.EqualValues(t, noisePeriodTable[2], a.Noise.timerPeriod)
}
