// Package cartridge parses the Game Boy cartridge header living at
// 0x0100-0x014F of a ROM image. It is grounded on the field layout in
// hnrck/crabboy's src/cartridge.rs, adapted to Go enumerations and
// fixed-offset slicing instead of bitflag derives.
package cartridge

import (
	"fmt"
	"strings"

	"github.com/clockworkgnome/lr35902/internal/errs"
)

// Fixed header offsets, per the LR35902 cartridge layout.
const (
	OffsetEntryPoint     = 0x0100
	OffsetLogo           = 0x0104
	OffsetTitle          = 0x0134
	OffsetManufacturer   = 0x013F
	OffsetCGBFlag        = 0x0143
	OffsetNewLicensee    = 0x0144
	OffsetSGBFlag        = 0x0146
	OffsetCartridgeType  = 0x0147
	OffsetROMSize        = 0x0148
	OffsetRAMSize        = 0x0149
	OffsetDestination    = 0x014A
	OffsetOldLicensee    = 0x014B
	OffsetROMVersion     = 0x014C
	OffsetHeaderChecksum = 0x014D
	OffsetGlobalChecksum = 0x014E

	// HeaderEnd is one past the last header byte; a ROM shorter than
	// this cannot carry a complete header.
	HeaderEnd = 0x0150
)

// LogoBytes is the fixed 48-byte Nintendo boot-logo constant expected
// at 0x0104-0x0133.
var LogoBytes = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// CGBFlag records whether the cartridge declares Color Game Boy support.
type CGBFlag int

const (
	CGBNone CGBFlag = iota
	CGBSupported
	CGBRequired
)

// CartridgeType enumerates the MBC variants this header can name. Only
// plain ROM is ever mapped by the MMU; the rest decode for header
// validity and diagnostics, not for bank-switched access.
type CartridgeType int

const (
	ROMOnly CartridgeType = iota
	MBC1
	MBC1RAM
	MBC1RAMBattery
	MBC2
	MBC2Battery
	ROMRAM
	ROMRAMBattery
	MMM01
	MMM01RAM
	MMM01RAMBattery
	MBC3TimerBattery
	MBC3TimerRAMBattery
	MBC3
	MBC3RAM
	MBC3RAMBattery
	MBC5
	MBC5RAM
	MBC5RAMBattery
	MBC5Rumble
	MBC5RumbleRAM
	MBC5RumbleRAMBattery
	MBC6
	MBC7SensorRumbleRAMBattery
	PocketCamera
	BandaiTAMA5
	HuC3
	HuC1RAMBattery
)

var cartridgeTypeByCode = map[byte]CartridgeType{
	0x00: ROMOnly,
	0x01: MBC1,
	0x02: MBC1RAM,
	0x03: MBC1RAMBattery,
	0x05: MBC2,
	0x06: MBC2Battery,
	0x08: ROMRAM,
	0x09: ROMRAMBattery,
	0x0B: MMM01,
	0x0C: MMM01RAM,
	0x0D: MMM01RAMBattery,
	0x0F: MBC3TimerBattery,
	0x10: MBC3TimerRAMBattery,
	0x11: MBC3,
	0x12: MBC3RAM,
	0x13: MBC3RAMBattery,
	0x19: MBC5,
	0x1A: MBC5RAM,
	0x1B: MBC5RAMBattery,
	0x1C: MBC5Rumble,
	0x1D: MBC5RumbleRAM,
	0x1E: MBC5RumbleRAMBattery,
	0x20: MBC6,
	0x22: MBC7SensorRumbleRAMBattery,
	0xFC: PocketCamera,
	0xFD: BandaiTAMA5,
	0xFE: HuC3,
	0xFF: HuC1RAMBattery,
}

// RAMSize enumerates the decoded external-RAM size codes.
type RAMSize int

const (
	RAMNone RAMSize = iota
	RAMUnused
	RAM8KiB
	RAM32KiB
	RAM128KiB
	RAM64KiB
)

var ramSizeByCode = map[byte]RAMSize{
	0x00: RAMNone,
	0x01: RAMUnused,
	0x02: RAM8KiB,
	0x03: RAM32KiB,
	0x04: RAM128KiB,
	0x05: RAM64KiB,
}

// Bytes returns the external RAM footprint in bytes.
func (r RAMSize) Bytes() int {
	switch r {
	case RAMNone, RAMUnused:
		return 0
	case RAM8KiB:
		return 8 * 1024
	case RAM32KiB:
		return 32 * 1024
	case RAM128KiB:
		return 128 * 1024
	case RAM64KiB:
		return 64 * 1024
	default:
		return 0
	}
}

// ROMSize enumerates the decoded ROM size codes and their bank counts.
// Canonical is false for the 0x52/0x53/0x54 codes seen on a handful of
// pre-release carts; they decode but are flagged non-canonical in
// Header.String() rather than rejected.
type ROMSize struct {
	Bytes     int
	Banks     int
	Canonical bool
}

var romSizeByCode = map[byte]ROMSize{
	0x00: {32 * 1024, 2, true},
	0x01: {64 * 1024, 4, true},
	0x02: {128 * 1024, 8, true},
	0x03: {256 * 1024, 16, true},
	0x04: {512 * 1024, 32, true},
	0x05: {1024 * 1024, 64, true},
	0x06: {2 * 1024 * 1024, 128, true},
	0x07: {4 * 1024 * 1024, 256, true},
	0x08: {8 * 1024 * 1024, 512, true},
	0x52: {1179648, 72, false},
	0x53: {1310720, 80, false},
	0x54: {1572864, 96, false},
}

// newLicenseeByCode is a best-effort publisher name table for the
// two-character new-licensee code at 0x0144-0x0145, used only to
// enrich the header's String() summary; an unrecognized code is not a
// parse failure — only the validity-critical header fields reject a
// ROM outright.
var newLicenseeByCode = map[string]string{
	"00": "None",
	"01": "Nintendo R&D1",
	"08": "Capcom",
	"13": "Electronic Arts",
	"18": "Hudson Soft",
	"19": "b-ai",
	"20": "KSS",
	"22": "POW",
	"24": "PCM Complete",
	"25": "San-X",
	"28": "Kemco Japan",
	"29": "Seta",
	"30": "Viacom",
	"31": "Nintendo",
	"32": "Bandai",
	"33": "Ocean/Acclaim",
	"34": "Konami",
	"35": "Hector",
	"37": "Taito",
	"38": "Hudson",
	"39": "Banpresto",
	"41": "Ubi Soft",
	"42": "Atlus",
	"44": "Malibu",
	"46": "Angel",
	"47": "Bullet-Proof",
	"49": "Irem",
	"50": "Absolute",
	"51": "Acclaim",
	"52": "Activision",
	"53": "American Sammy",
	"54": "Konami",
	"55": "Hi Tech Entertainment",
	"56": "LJN",
	"57": "Matchbox",
	"58": "Mattel",
	"59": "Milton Bradley",
	"60": "Titus",
	"61": "Virgin",
	"64": "LucasArts",
	"67": "Ocean",
	"69": "Electronic Arts",
	"70": "Infogrames",
	"71": "Interplay",
	"72": "Broderbund",
	"73": "Sculptured Soft",
	"75": "SCI",
	"78": "THQ",
	"79": "Accolade",
	"80": "Misawa",
	"83": "Lozc",
	"86": "Tokuma Shoten",
	"87": "Tsukuda Original",
	"91": "Chunsoft",
	"92": "Video System",
	"93": "Ocean/Acclaim",
	"95": "Varie",
	"96": "Yonezawa/s'pal",
	"97": "Kaneko",
	"99": "Pack-in-soft",
	"A4": "Konami (Yu-Gi-Oh!)",
}

// LicenseeName returns the best-effort publisher name for the header's
// NewLicenseeCode, or "" if the code is not in newLicenseeByCode.
func (h Header) LicenseeName() string {
	return newLicenseeByCode[h.NewLicenseeCode]
}

// Destination records the destination code at 0x014A.
type Destination int

const (
	Japanese Destination = iota
	NonJapanese
)

// Header is the parsed 0x0100-0x014F cartridge metadata block.
type Header struct {
	Title             string
	ManufacturerCode  string
	CGBFlag           CGBFlag
	NewLicenseeCode   string
	SGBFlag           byte
	CartridgeType     CartridgeType
	ROMSize           ROMSize
	RAMSize           RAMSize
	Destination       Destination
	OldLicenseeCode   byte
	ROMVersion        byte
	HeaderChecksum    byte
	GlobalChecksum    uint16
}

// Parse reads the fixed header offsets out of the full ROM byte buffer
// and validates every cross-check (SGB flag, cartridge type, ROM/RAM
// size, MBC2-implies-no-external-RAM, destination code). rom must be
// at least HeaderEnd bytes long.
func Parse(rom []byte) (Header, error) {
	var h Header

	if len(rom) < HeaderEnd {
		return h, fmt.Errorf("%w: rom too short for header (%d bytes)", errs.ErrInvalidHeader, len(rom))
	}

	h.Title = trimTitle(rom[OffsetTitle:OffsetCGBFlag])
	h.ManufacturerCode = asciiTrim(rom[OffsetManufacturer:OffsetCGBFlag])

	switch rom[OffsetCGBFlag] {
	case 0x80:
		h.CGBFlag = CGBSupported
	case 0xC0:
		h.CGBFlag = CGBRequired
	default:
		h.CGBFlag = CGBNone
	}

	h.NewLicenseeCode = asciiTrim(rom[OffsetNewLicensee:OffsetSGBFlag])

	h.SGBFlag = rom[OffsetSGBFlag]
	if h.SGBFlag != 0x00 && h.SGBFlag != 0x03 {
		return h, fmt.Errorf("%w: sgb flag 0x%02X not 0x00 or 0x03", errs.ErrInvalidHeader, h.SGBFlag)
	}

	ctByte := rom[OffsetCartridgeType]
	ct, ok := cartridgeTypeByCode[ctByte]
	if !ok {
		return h, fmt.Errorf("%w: unknown cartridge type 0x%02X", errs.ErrInvalidHeader, ctByte)
	}
	h.CartridgeType = ct

	romByte := rom[OffsetROMSize]
	rs, ok := romSizeByCode[romByte]
	if !ok {
		return h, fmt.Errorf("%w: unknown rom size code 0x%02X", errs.ErrInvalidHeader, romByte)
	}
	h.ROMSize = rs

	ramByte := rom[OffsetRAMSize]
	ramSize, ok := ramSizeByCode[ramByte]
	if !ok {
		return h, fmt.Errorf("%w: unknown ram size code 0x%02X", errs.ErrInvalidHeader, ramByte)
	}
	h.RAMSize = ramSize

	if (ct == MBC2 || ct == MBC2Battery) && ramSize != RAMNone {
		return h, fmt.Errorf("%w: MBC2 carries built-in RAM, ram size code must be None", errs.ErrInvalidHeader)
	}

	switch rom[OffsetDestination] {
	case 0x00:
		h.Destination = Japanese
	case 0x01:
		h.Destination = NonJapanese
	default:
		return h, fmt.Errorf("%w: destination code 0x%02X not 0 or 1", errs.ErrInvalidHeader, rom[OffsetDestination])
	}

	h.OldLicenseeCode = rom[OffsetOldLicensee]
	h.ROMVersion = rom[OffsetROMVersion]
	h.HeaderChecksum = rom[OffsetHeaderChecksum]
	h.GlobalChecksum = uint16(rom[OffsetGlobalChecksum])<<8 | uint16(rom[OffsetGlobalChecksum+1])

	return h, nil
}

func trimTitle(b []byte) string {
	return asciiTrim(b)
}

// asciiTrim decodes a byte slice as best-effort ASCII: it stops at the
// first NUL, drops every control or high-bit byte before it, and trims
// trailing spaces.
func asciiTrim(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c == 0x00 {
			break
		}
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// ValidateLogo compares the fixed 0x0104-0x0133 range against
// LogoBytes. rom must be at least OffsetTitle bytes long.
func ValidateLogo(rom []byte) error {
	if len(rom) < OffsetTitle {
		return fmt.Errorf("%w: rom too short for logo (%d bytes)", errs.ErrInvalidLogo, len(rom))
	}
	for i, want := range LogoBytes {
		if rom[OffsetLogo+i] != want {
			return fmt.Errorf("%w: byte %d at 0x%04X is 0x%02X, want 0x%02X",
				errs.ErrInvalidLogo, i, OffsetLogo+i, rom[OffsetLogo+i], want)
		}
	}
	return nil
}

// String renders a one-line header summary for the info-level load log.
func (h Header) String() string {
	romTag := ""
	if !h.ROMSize.Canonical {
		romTag = "(non-canonical)"
	}
	licensee := h.LicenseeName()
	if licensee == "" {
		licensee = h.NewLicenseeCode
	}
	return fmt.Sprintf("title=%q type=%v rom=%dKiB(%d banks)%s ram=%dB cgb=%v dest=%v licensee=%s",
		h.Title, h.CartridgeType, h.ROMSize.Bytes/1024, h.ROMSize.Banks, romTag, h.RAMSize.Bytes(), h.CGBFlag, h.Destination, licensee)
}
