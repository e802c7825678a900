package cartridge

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	headerSize     = 16
	trainerSize    = 512
	prgBlockSize   = 16384 // 16 KiB
	chrBlockSize   = 8192  // 8 KiB
	inesMagic      = "NES\x1a"
	flag6Mirroring = 1 << 0
	flag6Battery   = 1 << 1
	flag6Trainer   = 1 << 2
	flag6FourScrn  = 1 << 3
)

// Mirroring identifies how the PPU folds its 2 KiB of nametable RAM onto
// the 4 KiB logical nametable space.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
	// MirrorSingleScreenLo and MirrorSingleScreenHi are emitted by mappers
	// (MMC1) that can pin the PPU to one 1 KiB nametable page.
	MirrorSingleScreenLo
	MirrorSingleScreenHi
	// MirrorMapperControlled marks mirroring owned by the mapper rather
	// than the header. No mapper in this module returns it: MMC1 and MMC3
	// report the concrete mode they currently select.
	MirrorMapperControlled
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	case MirrorSingleScreenLo:
		return "single-screen-lo"
	case MirrorSingleScreenHi:
		return "single-screen-hi"
	case MirrorMapperControlled:
		return "mapper-controlled"
	default:
		return "unknown"
	}
}

// header is the parsed form of the 16-byte iNES header.
type header struct {
	prgBanks uint8 // count of 16 KiB PRG-ROM banks
	chrBanks uint8 // count of 8 KiB CHR-ROM banks (0 => CHR-RAM)
	flags6   uint8
	flags7   uint8
	flags8   uint8
	flags9   uint8
	flags10  uint8
}

func (h *header) String() string {
	return fmt.Sprintf("prg=%d chr=%d mapper=%d mirror=%s battery=%t trainer=%t",
		h.prgBanks, h.chrBanks, h.mapperNum(), h.mirroring(), h.hasBattery(), h.hasTrainer())
}

func parseHeader(b []byte) (*header, error) {
	if len(b) < headerSize {
		return nil, errors.Wrapf(ErrBadHeader, "short header: %d bytes", len(b))
	}
	if string(b[0:4]) != inesMagic {
		return nil, errors.Wrapf(ErrBadHeader, "bad magic %q", b[0:4])
	}

	return &header{
		prgBanks: b[4],
		chrBanks: b[5],
		flags6:   b[6],
		flags7:   b[7],
		flags8:   b[8],
		flags9:   b[9],
		flags10:  b[10],
	}, nil
}

func (h *header) mirroring() Mirroring {
	if h.flags6&flag6FourScrn != 0 {
		return MirrorFourScreen
	}
	if h.flags6&flag6Mirroring != 0 {
		return MirrorVertical
	}
	return MirrorHorizontal
}

func (h *header) hasBattery() bool {
	return h.flags6&flag6Battery != 0
}

func (h *header) hasTrainer() bool {
	return h.flags6&flag6Trainer != 0
}

// isNES2 reports whether flags7 bits 2-3 mark this header as NES 2.0.
func (h *header) isNES2() bool {
	return h.flags7&0x0c == 0x08
}

// mapperNum combines the low nibble from flags6 and the high nibble from
// flags7 into the iNES mapper number. https://www.nesdev.org/wiki/INES
func (h *header) mapperNum() uint8 {
	return (h.flags7 & 0xf0) | (h.flags6 >> 4)
}

// bytes re-serializes the header for round-trip testing (§8).
func (h *header) bytes() []byte {
	b := make([]byte, headerSize)
	copy(b[0:4], inesMagic)
	b[4] = h.prgBanks
	b[5] = h.chrBanks
	b[6] = h.flags6
	b[7] = h.flags7
	b[8] = h.flags8
	b[9] = h.flags9
	b[10] = h.flags10
	return b
}
