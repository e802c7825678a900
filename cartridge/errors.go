// Package cartridge implements loading of the iNES cartridge container
// format. https://www.nesdev.org/wiki/INES
package cartridge

import "github.com/pkg/errors"

// Sentinel error kinds, returned (possibly wrapped with extra context) from
// Load, LoadFile and LoadBytes; ErrUnsupportedMapper comes instead from
// mappers.Get. Check with errors.Is.
var (
	ErrBadHeader         = errors.New("cartridge: bad iNES header")
	ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")
	ErrTruncatedROM      = errors.New("cartridge: truncated ROM data")
	ErrZipDecode         = errors.New("cartridge: zip decode error")
)
