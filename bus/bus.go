// Package bus assembles the NES's CPU-visible 16-bit address space out of
// work RAM, the PPU register mirror, the APU/IO register block, the
// controller ports, and the cartridge mapper's PRG window, and owns OAM
// DMA's CPU-stalling side effect.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/bdwalton/gintendo/apu"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/ppu"
)

// Stallable is the subset of *cpu.CPU the bus needs to inject DMA/DMC
// stalls and read the current cycle count; declared locally so bus doesn't
// need cpu for anything but this.
type Stallable interface {
	Stall(n int)
	Cycles() uint64
}

// Bus implements cpu.Bus and wires together RAM, PPU, APU, the mapper, and
// the two controller ports.
type Bus struct {
	ram [0x0800]uint8

	PPU    *ppu.PPU
	APU    *apu.APU
	Mapper mappers.Mapper
	cpu    Stallable

	controllerState  [2]uint8 // latched snapshot, shifted out bit by bit on read
	controllerShift  [2]uint8
	controllerStrobe bool

	lastBusValue uint8
}

// New constructs a Bus wired to the given components. SetCPU must be
// called once the CPU exists, since the CPU itself is constructed with
// this Bus as a dependency (a one-step wiring cycle the console resolves).
func New(p *ppu.PPU, a *apu.APU, m mappers.Mapper) *Bus {
	b := &Bus{PPU: p, APU: a, Mapper: m}
	a.SetMemory(b)
	return b
}

// SetCPU completes the wiring cycle so the bus can stall the CPU for OAM
// DMA and DMC fetches and read its cycle counter for mapper same-cycle
// write detection.
func (b *Bus) SetCPU(c Stallable) { b.cpu = c }

// Read services a CPU memory read.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = b.ram[addr&0x07ff]
	case addr < 0x4000:
		v = b.PPU.ReadRegister(addr & 0x0007)
	case addr == 0x4015:
		v = b.APU.ReadRegister(addr)
	case addr == 0x4016:
		v = b.readController(0)
	case addr == 0x4017:
		v = b.readController(1)
	case addr < 0x4020:
		v = b.lastBusValue // APU write-only registers and unused I/O read as open bus
	default:
		v = b.Mapper.CPURead(addr)
	}
	b.lastBusValue = v
	return v
}

// Write services a CPU memory write.
func (b *Bus) Write(addr uint16, v uint8) {
	b.lastBusValue = v
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07ff] = v
	case addr < 0x4000:
		b.PPU.WriteRegister(addr&0x0007, v)
	case addr == 0x4014:
		b.doOAMDMA(v)
	case addr == 0x4016:
		b.writeControllerStrobe(v)
	case addr == 0x4017:
		b.APU.WriteRegister(addr, v)
	case addr < 0x4020:
		b.APU.WriteRegister(addr, v)
	default:
		if cs, ok := b.Mapper.(mappers.CycleSetter); ok && b.cpu != nil {
			cs.SetCycle(b.cpu.Cycles())
		}
		b.Mapper.CPUWrite(addr, v)
	}
}

// doOAMDMA copies 256 bytes starting at hi*0x100 into OAM and stalls the
// CPU 513 cycles, or 514 if the DMA starts on an odd CPU cycle.
func (b *Bus) doOAMDMA(hi uint8) {
	var data [256]uint8
	base := uint16(hi) << 8
	for i := range data {
		data[i] = b.Read(base + uint16(i))
	}
	b.PPU.WriteOAMDMA(data[:])

	stall := 513
	if b.cpu != nil && b.cpu.Cycles()%2 != 0 {
		stall = 514
	}
	if b.cpu != nil {
		b.cpu.Stall(stall)
	}
}

// SetController latches the given button-state snapshot (bit 0=A ... bit
// 7=Right) for the given port, ready to be shifted out on the next read
// sequence once strobed.
func (b *Bus) SetController(port int, state uint8) {
	b.controllerState[port] = state
}

func (b *Bus) writeControllerStrobe(v uint8) {
	b.controllerStrobe = v&0x01 != 0
	if b.controllerStrobe {
		b.controllerShift[0] = b.controllerState[0]
		b.controllerShift[1] = b.controllerState[1]
	}
}

func (b *Bus) readController(port int) uint8 {
	if b.controllerStrobe {
		b.controllerShift[port] = b.controllerState[port]
	}
	bit := b.controllerShift[port] & 0x01
	b.controllerShift[port] = (b.controllerShift[port] >> 1) | 0x80
	return bit | (b.lastBusValue &^ 0x01)
}
