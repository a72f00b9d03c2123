// Package errs holds the sentinel error kinds shared across the
// cartridge, ROM, and CPU packages so callers can classify a failure
// with errors.Is without parsing messages.
package errs

import "errors"

var (
	// ErrIO means the ROM file could not be read.
	ErrIO = errors.New("io error")

	// ErrInvalidHeader means a required header field failed to decode
	// or failed a cross-check.
	ErrInvalidHeader = errors.New("invalid cartridge header")

	// ErrInvalidLogo means the boot-logo bytes did not match the
	// fixed Nintendo logo constant.
	ErrInvalidLogo = errors.New("invalid boot logo")

	// ErrUnknownOpcode means the dispatcher found no entry for the
	// fetched byte in the active opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")
)
