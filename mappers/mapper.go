// Package mappers implements cartridge-resident address translation and
// mirroring logic, selected by the iNES mapper number in the cartridge
// header. https://www.nesdev.org/wiki/Mapper
package mappers

import (
	"fmt"

	"github.com/bdwalton/gintendo/cartridge"
)

// Mapper is the two-bus contract every cartridge-specific variant
// implements: CPU-side reads/writes over 0x4020-0xFFFF and PPU-side
// reads/writes over the pattern-table window 0x0000-0x1FFF, plus the
// current nametable mirroring mode so the PPU can fold its 2 KiB of
// nametable RAM onto the 4 KiB logical nametable space.
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
	Name() string
}

// IRQSource is implemented by mappers that can assert a CPU IRQ (MMC3's
// scanline counter). Mappers that never generate an IRQ need not implement
// it; callers should type-assert.
type IRQSource interface {
	IRQPending() bool
	ClearIRQ()
}

// A12Notifier is implemented by mappers whose IRQ counter is clocked by PPU
// address-line A12 transitions (MMC3) rather than by CPU cycles.
type A12Notifier interface {
	NotifyA12(addr uint16, renderingEnabled bool)
}

// CycleSetter is implemented by mappers that need to know the current CPU
// cycle to detect same-cycle read-modify-write writes (MMC1's serial port
// drops the second write of a same-cycle RMW). The bus calls SetCycle
// before every CPUWrite when a mapper implements this.
type CycleSetter interface {
	SetCycle(cycle uint64)
}

type factory func(*cartridge.Cartridge) Mapper

var registry = map[uint8]factory{}

// register is called from each mapperN.go's init().
func register(id uint8, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the Mapper for the cartridge's declared mapper number.
func Get(c *cartridge.Cartridge) (Mapper, error) {
	f, ok := registry[c.MapperNum()]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", cartridge.ErrUnsupportedMapper, c.MapperNum())
	}
	return f(c), nil
}
