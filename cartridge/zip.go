package cartridge

import (
	"archive/zip"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// loadZip reads r fully, treats it as a ZIP archive, and loads the first
// ".nes" entry found inside.
func loadZip(r io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cartridge: reading zip stream")
	}

	zr, err := zip.NewReader(readerAt{data}, int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(ErrZipDecode, "opening archive: %v", err)
	}

	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".nes") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(ErrZipDecode, "opening entry %q: %v", f.Name, err)
		}
		defer rc.Close()

		return Load(rc)
	}

	return nil, errors.Wrapf(ErrZipDecode, "no .nes entry found in archive")
}

// readerAt adapts a byte slice to io.ReaderAt for archive/zip.
type readerAt struct{ b []byte }

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.b)) {
		return 0, io.EOF
	}
	n := copy(p, r.b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
