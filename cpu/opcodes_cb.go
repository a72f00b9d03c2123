package cpu

import "fmt"

// cbTable is the fully-populated 256-entry secondary table reached
// through the 0xCB prefix. Every byte 0x00-0xFF decodes to a rotate,
// shift, swap, BIT, RES, or SET instruction, so it has no nil entries.
var cbTable [256]*Instruction

func init() {
	rotNames := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	rotFuncs := [8]func(r *Registers, x byte) byte{rlc, rrc, rl, rr, sla, sra, swap, srl}

	for opcode := 0; opcode < 256; opcode++ {
		opcode := byte(opcode)
		reg := opcode & 0x7
		cyclesReg, cyclesHL := 8, 16

		switch opcode >> 6 & 0x3 {
		case 0: // rotate/shift/swap family
			group := opcode >> 3 & 0x7
			op := rotFuncs[group]
			mnemonic := fmt.Sprintf("%s %s", rotNames[group], regNames8[reg])
			cycles := cyclesReg
			if reg == 6 {
				cycles = cyclesHL
			}
			cbTable[opcode] = fixed(mnemonic, 1, cycles, func(r *Registers, b Bus) ExecResult {
				setReg8(reg, r, b, op(r, getReg8(reg, r, b)))
				return Default()
			})
		case 1: // BIT n,r
			n := uint(opcode >> 3 & 0x7)
			mnemonic := fmt.Sprintf("BIT %d,%s", n, regNames8[reg])
			cycles := cyclesReg
			if reg == 6 {
				cycles = 12
			}
			cbTable[opcode] = fixed(mnemonic, 1, cycles, func(r *Registers, b Bus) ExecResult {
				bit(r, n, getReg8(reg, r, b))
				return Default()
			})
		case 2: // RES n,r
			n := uint(opcode >> 3 & 0x7)
			mnemonic := fmt.Sprintf("RES %d,%s", n, regNames8[reg])
			cycles := cyclesReg
			if reg == 6 {
				cycles = cyclesHL
			}
			cbTable[opcode] = fixed(mnemonic, 1, cycles, func(r *Registers, b Bus) ExecResult {
				setReg8(reg, r, b, res(n, getReg8(reg, r, b)))
				return Default()
			})
		default: // SET n,r
			n := uint(opcode >> 3 & 0x7)
			mnemonic := fmt.Sprintf("SET %d,%s", n, regNames8[reg])
			cycles := cyclesReg
			if reg == 6 {
				cycles = cyclesHL
			}
			cbTable[opcode] = fixed(mnemonic, 1, cycles, func(r *Registers, b Bus) ExecResult {
				setReg8(reg, r, b, set(n, getReg8(reg, r, b)))
				return Default()
			})
		}
	}
}
