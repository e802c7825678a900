package cartridge

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Cartridge is the loaded, immutable (save CHR-RAM and PRG-RAM) form of an
// iNES ROM image.
type Cartridge struct {
	h       *header
	PRG     []byte // PRG-ROM, prgBanks*16 KiB
	CHR     []byte // CHR-ROM or CHR-RAM, chrBanks*8 KiB (8 KiB of RAM if chrBanks==0)
	chrIsRAM bool
	PRGRAM  []byte // 8 KiB of cartridge-resident PRG-RAM, present unconditionally for simplicity
}

// MapperNum returns the iNES mapper id (0-255) selecting the Mapper
// implementation.
func (c *Cartridge) MapperNum() uint8 { return c.h.mapperNum() }

// Mirroring returns the mirroring mode declared in the header. Mappers
// that control mirroring dynamically (MMC1) ignore this after setup.
func (c *Cartridge) Mirroring() Mirroring { return c.h.mirroring() }

// BatteryBacked reports whether PRG-RAM should be persisted by the host.
func (c *Cartridge) BatteryBacked() bool { return c.h.hasBattery() }

// ChrIsRAM reports whether CHR is writable RAM rather than ROM.
func (c *Cartridge) ChrIsRAM() bool { return c.chrIsRAM }

// SaveRAM returns the opaque PRG-RAM blob for the host to persist when
// BatteryBacked is true.
func (c *Cartridge) SaveRAM() []byte {
	out := make([]byte, len(c.PRGRAM))
	copy(out, c.PRGRAM)
	return out
}

// RestoreSaveRAM loads a blob previously returned by SaveRAM.
func (c *Cartridge) RestoreSaveRAM(b []byte) {
	n := copy(c.PRGRAM, b)
	for i := n; i < len(c.PRGRAM); i++ {
		c.PRGRAM[i] = 0
	}
}

// HeaderBytes re-serializes the parsed header, for the round-trip testable
// property in spec §8.
func (c *Cartridge) HeaderBytes() []byte { return c.h.bytes() }

// Load parses an iNES stream into a Cartridge.
func Load(r io.Reader) (*Cartridge, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cartridge: reading ROM stream")
	}
	return LoadBytes(all)
}

// LoadBytes parses an in-memory iNES image.
func LoadBytes(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrTruncatedROM, "file is %d bytes, need at least %d for header", len(data), headerSize)
	}

	h, err := parseHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}

	off := headerSize
	if h.hasTrainer() {
		off += trainerSize
	}

	prgLen := int(h.prgBanks) * prgBlockSize
	if off+prgLen > len(data) {
		return nil, errors.Wrapf(ErrTruncatedROM, "declared %d PRG banks need %d bytes, only %d available", h.prgBanks, prgLen, len(data)-off)
	}
	prg := make([]byte, prgLen)
	copy(prg, data[off:off+prgLen])
	off += prgLen

	chrIsRAM := h.chrBanks == 0
	var chr []byte
	if chrIsRAM {
		chr = make([]byte, chrBlockSize) // 8 KiB of CHR-RAM
	} else {
		chrLen := int(h.chrBanks) * chrBlockSize
		if off+chrLen > len(data) {
			return nil, errors.Wrapf(ErrTruncatedROM, "declared %d CHR banks need %d bytes, only %d available", h.chrBanks, chrLen, len(data)-off)
		}
		chr = make([]byte, chrLen)
		copy(chr, data[off:off+chrLen])
	}

	return &Cartridge{
		h:        h,
		PRG:      prg,
		CHR:      chr,
		chrIsRAM: chrIsRAM,
		PRGRAM:   make([]byte, 8192),
	}, nil
}

// LoadFile loads a cartridge from a path. A ".zip" suffix is transparently
// unzipped; the first ".nes" entry found inside is used (§6).
func LoadFile(path string) (*Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cartridge: opening %q", path)
	}
	defer f.Close()

	if len(path) >= 4 && bytes.EqualFold([]byte(path[len(path)-4:]), []byte(".zip")) {
		return loadZip(f)
	}

	return Load(f)
}
