package cartridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockworkgnome/lr35902/internal/errs"
)

// validHeaderROM returns a minimal HeaderEnd-sized buffer with a valid
// logo, a ROMOnly/RAMNone header, and an ASCII title, ready to be
// mutated per-test.
func validHeaderROM() []byte {
	rom := make([]byte, HeaderEnd)
	copy(rom[OffsetLogo:], LogoBytes[:])
	copy(rom[OffsetTitle:], []byte("TESTGAME"))
	rom[OffsetCGBFlag] = 0x00
	rom[OffsetSGBFlag] = 0x00
	rom[OffsetCartridgeType] = 0x00 // ROMOnly
	rom[OffsetROMSize] = 0x00       // 32KiB/2 banks
	rom[OffsetRAMSize] = 0x00       // None
	rom[OffsetDestination] = 0x01   // NonJapanese
	return rom
}

func TestParseValidHeader(t *testing.T) {
	rom := validHeaderROM()

	h, err := Parse(rom)
	require.NoError(t, err)

	assert.Equal(t, "TESTGAME", h.Title)
	assert.Equal(t, CGBNone, h.CGBFlag)
	assert.Equal(t, ROMOnly, h.CartridgeType)
	assert.Equal(t, 32*1024, h.ROMSize.Bytes)
	assert.Equal(t, 2, h.ROMSize.Banks)
	assert.Equal(t, RAMNone, h.RAMSize)
	assert.Equal(t, NonJapanese, h.Destination)
}

func TestParseTitleStopsAtNUL(t *testing.T) {
	rom := validHeaderROM()
	copy(rom[OffsetTitle:], []byte{'A', 'B', 0x00, 'C'})

	h, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, "AB", h.Title)
}

func TestParseRejectsTooShortROM(t *testing.T) {
	rom := make([]byte, HeaderEnd-1)
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestParseRejectsUnknownCartridgeType(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetCartridgeType] = 0x7E // not in cartridgeTypeByCode
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestParseRejectsUnknownROMSize(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetROMSize] = 0xAA
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestParseRejectsMBC2WithNonzeroRAM(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetCartridgeType] = 0x05 // MBC2
	rom[OffsetRAMSize] = 0x02       // 8KiB, disallowed for MBC2
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestParseAcceptsMBC2WithNoneRAM(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetCartridgeType] = 0x05 // MBC2
	rom[OffsetRAMSize] = 0x00
	h, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, MBC2, h.CartridgeType)
}

func TestParseRejectsBadDestinationCode(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetDestination] = 0x02
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestParseRejectsBadSGBFlag(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetSGBFlag] = 0x01
	_, err := Parse(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidHeader))
}

func TestValidateLogoAcceptsExactMatch(t *testing.T) {
	rom := validHeaderROM()
	assert.NoError(t, ValidateLogo(rom))
}

func TestValidateLogoRejectsCorruptLogo(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetLogo] ^= 0xFF

	err := ValidateLogo(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidLogo))
}

func TestValidateLogoRejectsTooShortROM(t *testing.T) {
	rom := make([]byte, OffsetTitle-1)
	err := ValidateLogo(rom)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidLogo))
}

func TestParseAcceptsNonCanonicalROMSizeCodes(t *testing.T) {
	rom := validHeaderROM()
	rom[OffsetROMSize] = 0x52

	h, err := Parse(rom)
	require.NoError(t, err)
	assert.False(t, h.ROMSize.Canonical)
	assert.Contains(t, h.String(), "non-canonical")
}

func TestLicenseeNameLooksUpKnownCode(t *testing.T) {
	rom := validHeaderROM()
	copy(rom[OffsetNewLicensee:], []byte("01"))

	h, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, "Nintendo R&D1", h.LicenseeName())
	assert.Contains(t, h.String(), "Nintendo R&D1")
}

func TestLicenseeNameEmptyForUnknownCode(t *testing.T) {
	rom := validHeaderROM()
	copy(rom[OffsetNewLicensee:], []byte("ZZ"))

	h, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, "", h.LicenseeName())
}

func TestRAMSizeBytes(t *testing.T) {
	assert.Equal(t, 0, RAMNone.Bytes())
	assert.Equal(t, 0, RAMUnused.Bytes())
	assert.Equal(t, 8*1024, RAM8KiB.Bytes())
	assert.Equal(t, 32*1024, RAM32KiB.Bytes())
	assert.Equal(t, 128*1024, RAM128KiB.Bytes())
	assert.Equal(t, 64*1024, RAM64KiB.Bytes())
}
