// Package rom loads a cartridge image from disk, validates its boot
// logo, and parses its header.
package rom

import (
	"fmt"
	"os"

	"github.com/clockworkgnome/lr35902/cartridge"
	"github.com/clockworkgnome/lr35902/internal/errs"
)

// MinSize is the smallest byte length that can carry a complete
// header.
const MinSize = cartridge.HeaderEnd

// ROM holds the raw cartridge bytes and its parsed header.
type ROM struct {
	Data   []byte
	Header cartridge.Header
}

// Load reads path, validates the boot logo, and parses the header.
// It returns a wrapped errs.ErrIO, errs.ErrInvalidLogo, or
// errs.ErrInvalidHeader on failure.
func Load(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIO, err)
	}

	if len(data) < MinSize {
		return nil, fmt.Errorf("%w: rom %q is %d bytes, need at least %d", errs.ErrIO, path, len(data), MinSize)
	}

	if err := cartridge.ValidateLogo(data); err != nil {
		return nil, err
	}

	h, err := cartridge.Parse(data)
	if err != nil {
		return nil, err
	}

	return &ROM{Data: data, Header: h}, nil
}
