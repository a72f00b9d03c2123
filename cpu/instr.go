package cpu

// Bus is the narrow interface the dispatcher and instruction handlers
// need from memory; *mmu.MMU satisfies it. Handlers take a Bus rather
// than a concrete MMU so tests can swap in a fake, and so handlers
// hold no state beyond what Registers/Bus already carry.
type Bus interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
}

// ExecResult is the pair of booleans every handler returns. The zero
// value is not the default; Default() is.
type ExecResult struct {
	// UpdatePC is false iff the handler itself wrote PC (a jump/call/ret
	// that took its branch), so the dispatcher must not clobber it.
	UpdatePC bool
	// ActionTaken is false iff a conditional instruction did not take
	// its branch, selecting Cycles.NotTaken instead of Cycles.Taken.
	ActionTaken bool
}

// Default is the (true, true) result most handlers return.
func Default() ExecResult { return ExecResult{UpdatePC: true, ActionTaken: true} }

// Cycles holds the documented t-state cost of an instruction, split by
// whether a conditional branch was taken.
type Cycles struct {
	Taken    int
	NotTaken int
}

// Instruction is the immutable descriptor shared by reference from the
// opcode tables. Handlers are plain function values closing over no
// state beyond what Registers/Bus already hold.
type Instruction struct {
	Mnemonic string
	Bytes    int
	Cycles   Cycles
	Handler  func(r *Registers, b Bus) ExecResult
}

// fixed builds an Instruction whose cycle cost never varies with a
// taken/not-taken branch (the common case: every instruction except
// JP/JR/CALL/RET cc).
func fixed(mnemonic string, bytes, cycles int, handler func(r *Registers, b Bus) ExecResult) *Instruction {
	return &Instruction{
		Mnemonic: mnemonic,
		Bytes:    bytes,
		Cycles:   Cycles{Taken: cycles, NotTaken: cycles},
		Handler:  handler,
	}
}

// branching builds an Instruction whose handler returns ActionTaken to
// pick between taken and notTaken cycle costs.
func branching(mnemonic string, bytes, taken, notTaken int, handler func(r *Registers, b Bus) ExecResult) *Instruction {
	return &Instruction{
		Mnemonic: mnemonic,
		Bytes:    bytes,
		Cycles:   Cycles{Taken: taken, NotTaken: notTaken},
		Handler:  handler,
	}
}
