// Package console wires a CPU, PPU, APU, and cartridge mapper to a shared
// Bus and drives them forward in lockstep: one CPU instruction, three PPU
// dots and one APU cycle per CPU cycle consumed, exactly as the real
// console's clock distribution does.
// https://www.nesdev.org/wiki/Cycle_reference_chart
package console

import (
	"context"

	"github.com/bdwalton/gintendo/apu"
	"github.com/bdwalton/gintendo/bus"
	"github.com/bdwalton/gintendo/cartridge"
	"github.com/bdwalton/gintendo/cpu"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/ppu"
)

// Frame is one unit of output the Console hands to a host per call to
// StepFrame: the completed framebuffer and the audio samples produced
// while rendering it.
type Frame struct {
	Pixels  *[ppu.Width * ppu.Height]uint8
	Samples []float32
}

// Console owns a CPU, PPU, APU, Mapper and Bus for the life of one
// emulation session.
type Console struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Mapper mappers.Mapper
	Bus    *bus.Bus

	sampleBuf []float32
}

// New constructs a Console from an already-loaded cartridge.
func New(c *cartridge.Cartridge) (*Console, error) {
	m, err := mappers.Get(c)
	if err != nil {
		return nil, err
	}

	p := ppu.New(m)
	a := apu.New()
	b := bus.New(p, a, m)
	cp := cpu.New(b)
	b.SetCPU(cp)

	return &Console{CPU: cp, PPU: p, APU: a, Mapper: m, Bus: b}, nil
}

// SetControllerState latches a button snapshot for the given port (0 or 1),
// ready to be shifted out by the next controller read sequence the game
// performs. §6: bit 0=A, 1=B, 2=Select, 3=Start, 4=Up, 5=Down, 6=Left, 7=Right.
func (c *Console) SetControllerState(port int, state uint8) {
	c.Bus.SetController(port, state)
}

// Step runs exactly one CPU instruction (or DMA/DMC stall) and its
// corresponding PPU/APU advance, returning any audio samples produced.
func (c *Console) Step() []float32 {
	cycles := c.CPU.Step()

	var samples []float32
	for i := uint8(0); i < cycles; i++ {
		c.PPU.Step()
		c.PPU.Step()
		c.PPU.Step()
		samples = append(samples, c.APU.Step())
	}

	if stall := c.APU.TakeStall(); stall > 0 {
		c.CPU.Stall(stall)
	}

	if c.PPU.NMIPending() {
		c.CPU.RequestNMI()
	}

	c.CPU.SetIRQLine(c.apuOrMapperIRQAsserted())

	return samples
}

func (c *Console) apuOrMapperIRQAsserted() bool {
	if c.APU.IRQPending() {
		return true
	}
	if src, ok := c.Mapper.(mappers.IRQSource); ok && src.IRQPending() {
		return true
	}
	return false
}

// StepFrame runs the console until the PPU signals a completed frame,
// returning the framebuffer and the audio samples accumulated while
// producing it.
func (c *Console) StepFrame() Frame {
	c.sampleBuf = c.sampleBuf[:0]
	for !c.PPU.FrameReady() {
		c.sampleBuf = append(c.sampleBuf, c.Step()...)
	}
	c.PPU.ConsumeFrame()
	return Frame{Pixels: c.PPU.Frame(), Samples: c.sampleBuf}
}

// Run drives StepFrame in a loop, pushing each completed Frame to frames,
// until ctx is cancelled. It is an optional convenience for hosts that
// prefer a driven loop over calling StepFrame themselves; it never spawns
// more than this one goroutine and touches no Console state concurrently
// with any other caller.
func (c *Console) Run(ctx context.Context, frames chan<- Frame) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		f := c.StepFrame()
		select {
		case frames <- f:
		case <-ctx.Done():
			return
		}
	}
}
