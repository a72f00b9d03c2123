package cpu

import "fmt"

// regNames8 maps a 3-bit register code to its disassembly name; index
// 6 is the (HL) indirect operand, not a register.
var regNames8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// rpNames16 maps a 2-bit register-pair code (as used by LD rr,d16,
// INC/DEC rr, ADD HL,rr) to its disassembly name.
var rpNames16 = [4]string{"BC", "DE", "HL", "SP"}

// rp2Names16 is the same encoding used by PUSH/POP, where the last
// slot (code 3) names AF instead of SP.
var rp2Names16 = [4]string{"BC", "DE", "HL", "AF"}

func getReg8(code byte, r *Registers, b Bus) byte {
	switch code & 0x7 {
	case 0:
		return r.B
	case 1:
		return r.C
	case 2:
		return r.D
	case 3:
		return r.E
	case 4:
		return r.H
	case 5:
		return r.L
	case 6:
		return b.ReadByte(r.GetHL())
	default:
		return r.A
	}
}

func setReg8(code byte, r *Registers, b Bus, v byte) {
	switch code & 0x7 {
	case 0:
		r.B = v
	case 1:
		r.C = v
	case 2:
		r.D = v
	case 3:
		r.E = v
	case 4:
		r.H = v
	case 5:
		r.L = v
	case 6:
		b.WriteByte(r.GetHL(), v)
	default:
		r.A = v
	}
}

func getRP(code byte, r *Registers) uint16 {
	switch code & 0x3 {
	case 0:
		return r.GetBC()
	case 1:
		return r.GetDE()
	case 2:
		return r.GetHL()
	default:
		return r.SP
	}
}

func setRP(code byte, r *Registers, v uint16) {
	switch code & 0x3 {
	case 0:
		r.SetBC(v)
	case 1:
		r.SetDE(v)
	case 2:
		r.SetHL(v)
	default:
		r.SP = v
	}
}

func getRP2(code byte, r *Registers) uint16 {
	switch code & 0x3 {
	case 0:
		return r.GetBC()
	case 1:
		return r.GetDE()
	case 2:
		return r.GetHL()
	default:
		return r.GetAF()
	}
}

func setRP2(code byte, r *Registers, v uint16) {
	switch code & 0x3 {
	case 0:
		r.SetBC(v)
	case 1:
		r.SetDE(v)
	case 2:
		r.SetHL(v)
	default:
		r.SetAF(v)
	}
}

// imm8 reads the single operand byte following the opcode at r.PC.
func imm8(r *Registers, b Bus) byte { return b.ReadByte(r.PC + 1) }

// imm16 reads the two little-endian operand bytes following the
// opcode at r.PC.
func imm16(r *Registers, b Bus) uint16 { return b.ReadWord(r.PC + 1) }

// push writes w onto the stack, hardware convention: SP -= 2 first,
// then the word is written at the new SP.
func push(r *Registers, b Bus, w uint16) {
	r.SP -= 2
	b.WriteWord(r.SP, w)
}

// pop reads a word off the stack, hardware convention: read first,
// then SP += 2.
func pop(r *Registers, b Bus) uint16 {
	w := b.ReadWord(r.SP)
	r.SP += 2
	return w
}

// condition evaluates the JP/JR/CALL/RET cc encoding: bits 4-3 of the
// opcode select NZ/Z/NC/C.
func condition(opcode byte, r *Registers) bool {
	switch opcode >> 3 & 0x3 {
	case 0:
		return !r.FlagZ()
	case 1:
		return r.FlagZ()
	case 2:
		return !r.FlagC()
	default:
		return r.FlagC()
	}
}

// primaryTable is the 256-entry dense table of non-prefixed opcodes.
// It is built once in init() and never mutated afterward. Undefined
// opcodes are left nil.
var primaryTable [256]*Instruction

func init() {
	primaryTable[0x00] = fixed("NOP", 1, 4, func(r *Registers, b Bus) ExecResult { return Default() })

	primaryTable[0x08] = fixed("LD (a16),SP", 3, 20, func(r *Registers, b Bus) ExecResult {
		b.WriteWord(imm16(r, b), r.SP)
		return Default()
	})

	primaryTable[0x10] = fixed("STOP", 2, 4, func(r *Registers, b Bus) ExecResult {
		r.RunState = Stopped
		return Default()
	})

	primaryTable[0x18] = branching("JR r8", 2, 12, 12, func(r *Registers, b Bus) ExecResult {
		offset := int8(imm8(r, b))
		r.PC = uint16(int32(r.PC) + 2 + int32(offset))
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})

	for _, cc := range []byte{0x20, 0x28, 0x30, 0x38} {
		mnemonics := map[byte]string{0x20: "JR NZ,r8", 0x28: "JR Z,r8", 0x30: "JR NC,r8", 0x38: "JR C,r8"}
		cc := cc
		primaryTable[cc] = branching(mnemonics[cc], 2, 12, 8, func(r *Registers, b Bus) ExecResult {
			taken := condition(cc, r)
			if taken {
				offset := int8(imm8(r, b))
				r.PC = uint16(int32(r.PC) + 2 + int32(offset))
				return ExecResult{UpdatePC: false, ActionTaken: true}
			}
			return ExecResult{UpdatePC: true, ActionTaken: false}
		})
	}

	// LD rr,d16 / INC rr / DEC rr / ADD HL,rr — 0x?1, 0x?3, 0x?B, 0x?9
	for code := byte(0); code < 4; code++ {
		code := code
		base := code << 4
		primaryTable[base|0x01] = fixed(fmt.Sprintf("LD %s,d16", rpNames16[code]), 3, 12, func(r *Registers, b Bus) ExecResult {
			setRP(code, r, imm16(r, b))
			return Default()
		})
		primaryTable[base|0x03] = fixed(fmt.Sprintf("INC %s", rpNames16[code]), 1, 8, func(r *Registers, b Bus) ExecResult {
			setRP(code, r, inc16(getRP(code, r)))
			return Default()
		})
		primaryTable[base|0x0B] = fixed(fmt.Sprintf("DEC %s", rpNames16[code]), 1, 8, func(r *Registers, b Bus) ExecResult {
			setRP(code, r, dec16(getRP(code, r)))
			return Default()
		})
		primaryTable[base|0x09] = fixed(fmt.Sprintf("ADD HL,%s", rpNames16[code]), 1, 8, func(r *Registers, b Bus) ExecResult {
			r.SetHL(add16(r, r.GetHL(), getRP(code, r)))
			return Default()
		})
	}

	// INC r / DEC r / LD r,d8 — 0x04/0x0C/.. families across all 8 reg codes.
	for reg := byte(0); reg < 8; reg++ {
		reg := reg
		row := reg << 3
		cyclesRW := 4
		if reg == 6 {
			cyclesRW = 12
		}
		primaryTable[row|0x04] = fixed(fmt.Sprintf("INC %s", regNames8[reg]), 1, cyclesRW, func(r *Registers, b Bus) ExecResult {
			setReg8(reg, r, b, inc8(r, getReg8(reg, r, b)))
			return Default()
		})
		primaryTable[row|0x05] = fixed(fmt.Sprintf("DEC %s", regNames8[reg]), 1, cyclesRW, func(r *Registers, b Bus) ExecResult {
			setReg8(reg, r, b, dec8(r, getReg8(reg, r, b)))
			return Default()
		})
		cyclesImm := 8
		if reg == 6 {
			cyclesImm = 12
		}
		primaryTable[row|0x06] = fixed(fmt.Sprintf("LD %s,d8", regNames8[reg]), 2, cyclesImm, func(r *Registers, b Bus) ExecResult {
			setReg8(reg, r, b, imm8(r, b))
			return Default()
		})
	}

	primaryTable[0x02] = fixed("LD (BC),A", 1, 8, func(r *Registers, b Bus) ExecResult { b.WriteByte(r.GetBC(), r.A); return Default() })
	primaryTable[0x12] = fixed("LD (DE),A", 1, 8, func(r *Registers, b Bus) ExecResult { b.WriteByte(r.GetDE(), r.A); return Default() })
	primaryTable[0x0A] = fixed("LD A,(BC)", 1, 8, func(r *Registers, b Bus) ExecResult { r.A = b.ReadByte(r.GetBC()); return Default() })
	primaryTable[0x1A] = fixed("LD A,(DE)", 1, 8, func(r *Registers, b Bus) ExecResult { r.A = b.ReadByte(r.GetDE()); return Default() })

	primaryTable[0x22] = fixed("LD (HL+),A", 1, 8, func(r *Registers, b Bus) ExecResult {
		b.WriteByte(r.GetHL(), r.A)
		r.SetHL(r.GetHL() + 1)
		return Default()
	})
	primaryTable[0x32] = fixed("LD (HL-),A", 1, 8, func(r *Registers, b Bus) ExecResult {
		b.WriteByte(r.GetHL(), r.A)
		r.SetHL(r.GetHL() - 1)
		return Default()
	})
	primaryTable[0x2A] = fixed("LD A,(HL+)", 1, 8, func(r *Registers, b Bus) ExecResult {
		r.A = b.ReadByte(r.GetHL())
		r.SetHL(r.GetHL() + 1)
		return Default()
	})
	primaryTable[0x3A] = fixed("LD A,(HL-)", 1, 8, func(r *Registers, b Bus) ExecResult {
		r.A = b.ReadByte(r.GetHL())
		r.SetHL(r.GetHL() - 1)
		return Default()
	})

	primaryTable[0x07] = fixed("RLCA", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = rotateAQuirk(r, rlc(r, r.A)); return Default() })
	primaryTable[0x0F] = fixed("RRCA", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = rotateAQuirk(r, rrc(r, r.A)); return Default() })
	primaryTable[0x17] = fixed("RLA", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = rotateAQuirk(r, rl(r, r.A)); return Default() })
	primaryTable[0x1F] = fixed("RRA", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = rotateAQuirk(r, rr(r, r.A)); return Default() })

	primaryTable[0x27] = fixed("DAA", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = daa(r, r.A); return Default() })
	primaryTable[0x2F] = fixed("CPL", 1, 4, func(r *Registers, b Bus) ExecResult { r.A = cpl(r, r.A); return Default() })
	primaryTable[0x37] = fixed("SCF", 1, 4, func(r *Registers, b Bus) ExecResult { scf(r); return Default() })
	primaryTable[0x3F] = fixed("CCF", 1, 4, func(r *Registers, b Bus) ExecResult { ccf(r); return Default() })

	// LD r,r' family 0x40-0x7F, with 0x76 replaced by HALT.
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		opcode := byte(opcode)
		if opcode == 0x76 {
			primaryTable[opcode] = fixed("HALT", 1, 4, func(r *Registers, b Bus) ExecResult {
				r.RunState = Halted
				return Default()
			})
			continue
		}
		dst := opcode >> 3 & 0x7
		src := opcode & 0x7
		cycles := 4
		if dst == 6 || src == 6 {
			cycles = 8
		}
		primaryTable[opcode] = fixed(fmt.Sprintf("LD %s,%s", regNames8[dst], regNames8[src]), 1, cycles, func(r *Registers, b Bus) ExecResult {
			setReg8(dst, r, b, getReg8(src, r, b))
			return Default()
		})
	}

	// ALU A,r family 0x80-0xBF.
	aluMnemonics := [8]string{"ADD A,%s", "ADC A,%s", "SUB %s", "SBC A,%s", "AND %s", "XOR %s", "OR %s", "CP %s"}
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		opcode := byte(opcode)
		group := opcode >> 3 & 0x7
		reg := opcode & 0x7
		cycles := 4
		if reg == 6 {
			cycles = 8
		}
		primaryTable[opcode] = fixed(fmt.Sprintf(aluMnemonics[group], regNames8[reg]), 1, cycles, aluHandler(group, func(r *Registers, b Bus) byte {
			return getReg8(reg, r, b)
		}))
	}

	// ALU A,d8 immediates: 0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE.
	aluImmOpcodes := [8]byte{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	aluImmMnemonics := [8]string{"ADD A,d8", "ADC A,d8", "SUB d8", "SBC A,d8", "AND d8", "XOR d8", "OR d8", "CP d8"}
	for group := byte(0); group < 8; group++ {
		group := group
		opcode := aluImmOpcodes[group]
		primaryTable[opcode] = fixed(aluImmMnemonics[group], 2, 8, aluHandler(group, imm8))
	}

	// INC (HL) / DEC (HL) are covered by the generic reg-code loop
	// above (reg==6 routes through getReg8/setReg8 to HL).

	// 0xE8 ADD SP,r8 / 0xF8 LD HL,SP+r8 share addSPE8.
	primaryTable[0xE8] = fixed("ADD SP,r8", 2, 16, func(r *Registers, b Bus) ExecResult {
		r.SP = addSPE8(r, r.SP, imm8(r, b))
		return Default()
	})
	primaryTable[0xF8] = fixed("LD HL,SP+r8", 2, 12, func(r *Registers, b Bus) ExecResult {
		r.SetHL(addSPE8(r, r.SP, imm8(r, b)))
		return Default()
	})
	primaryTable[0xF9] = fixed("LD SP,HL", 1, 8, func(r *Registers, b Bus) ExecResult { r.SP = r.GetHL(); return Default() })

	primaryTable[0xE0] = fixed("LDH (a8),A", 2, 12, func(r *Registers, b Bus) ExecResult {
		b.WriteByte(0xFF00+uint16(imm8(r, b)), r.A)
		return Default()
	})
	primaryTable[0xF0] = fixed("LDH A,(a8)", 2, 12, func(r *Registers, b Bus) ExecResult {
		r.A = b.ReadByte(0xFF00 + uint16(imm8(r, b)))
		return Default()
	})
	primaryTable[0xE2] = fixed("LD (C),A", 1, 8, func(r *Registers, b Bus) ExecResult { b.WriteByte(0xFF00+uint16(r.C), r.A); return Default() })
	primaryTable[0xF2] = fixed("LD A,(C)", 1, 8, func(r *Registers, b Bus) ExecResult { r.A = b.ReadByte(0xFF00 + uint16(r.C)); return Default() })

	primaryTable[0xEA] = fixed("LD (a16),A", 3, 16, func(r *Registers, b Bus) ExecResult { b.WriteByte(imm16(r, b), r.A); return Default() })
	primaryTable[0xFA] = fixed("LD A,(a16)", 3, 16, func(r *Registers, b Bus) ExecResult { r.A = b.ReadByte(imm16(r, b)); return Default() })

	// PUSH/POP: 0xC1/0xD1/0xE1/0xF1 (POP), 0xC5/0xD5/0xE5/0xF5 (PUSH).
	for code := byte(0); code < 4; code++ {
		code := code
		base := code << 4
		primaryTable[0xC1|base] = fixed(fmt.Sprintf("POP %s", rp2Names16[code]), 1, 12, func(r *Registers, b Bus) ExecResult {
			setRP2(code, r, pop(r, b))
			return Default()
		})
		primaryTable[0xC5|base] = fixed(fmt.Sprintf("PUSH %s", rp2Names16[code]), 1, 16, func(r *Registers, b Bus) ExecResult {
			push(r, b, getRP2(code, r))
			return Default()
		})
	}

	// JP a16 / JP cc,a16 / JP (HL).
	primaryTable[0xC3] = fixed("JP a16", 3, 16, func(r *Registers, b Bus) ExecResult {
		r.PC = imm16(r, b)
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})
	primaryTable[0xE9] = fixed("JP (HL)", 1, 4, func(r *Registers, b Bus) ExecResult {
		r.PC = r.GetHL()
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})
	jpCC := map[byte]string{0xC2: "JP NZ,a16", 0xCA: "JP Z,a16", 0xD2: "JP NC,a16", 0xDA: "JP C,a16"}
	for opcode, name := range jpCC {
		opcode, name := opcode, name
		primaryTable[opcode] = branching(name, 3, 16, 12, func(r *Registers, b Bus) ExecResult {
			if condition(opcode, r) {
				r.PC = imm16(r, b)
				return ExecResult{UpdatePC: false, ActionTaken: true}
			}
			return ExecResult{UpdatePC: true, ActionTaken: false}
		})
	}

	// CALL a16 / CALL cc,a16.
	primaryTable[0xCD] = fixed("CALL a16", 3, 24, func(r *Registers, b Bus) ExecResult {
		ret := r.PC + 3
		addr := imm16(r, b)
		push(r, b, ret)
		r.PC = addr
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})
	callCC := map[byte]string{0xC4: "CALL NZ,a16", 0xCC: "CALL Z,a16", 0xD4: "CALL NC,a16", 0xDC: "CALL C,a16"}
	for opcode, name := range callCC {
		opcode, name := opcode, name
		primaryTable[opcode] = branching(name, 3, 24, 12, func(r *Registers, b Bus) ExecResult {
			if condition(opcode, r) {
				ret := r.PC + 3
				addr := imm16(r, b)
				push(r, b, ret)
				r.PC = addr
				return ExecResult{UpdatePC: false, ActionTaken: true}
			}
			return ExecResult{UpdatePC: true, ActionTaken: false}
		})
	}

	// RET / RET cc / RETI.
	primaryTable[0xC9] = fixed("RET", 1, 16, func(r *Registers, b Bus) ExecResult {
		r.PC = pop(r, b)
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})
	primaryTable[0xD9] = fixed("RETI", 1, 16, func(r *Registers, b Bus) ExecResult {
		r.PC = pop(r, b)
		r.EnableInterrupts()
		return ExecResult{UpdatePC: false, ActionTaken: true}
	})
	retCC := map[byte]string{0xC0: "RET NZ", 0xC8: "RET Z", 0xD0: "RET NC", 0xD8: "RET C"}
	for opcode, name := range retCC {
		opcode, name := opcode, name
		primaryTable[opcode] = branching(name, 1, 20, 8, func(r *Registers, b Bus) ExecResult {
			if condition(opcode, r) {
				r.PC = pop(r, b)
				return ExecResult{UpdatePC: false, ActionTaken: true}
			}
			return ExecResult{UpdatePC: true, ActionTaken: false}
		})
	}

	// RST v: 0xC7,0xCF,0xD7,0xDF,0xE7,0xEF,0xF7,0xFF.
	for i := byte(0); i < 8; i++ {
		i := i
		opcode := 0xC7 | i<<3
		target := uint16(i) * 8
		primaryTable[opcode] = fixed(fmt.Sprintf("RST %02XH", target), 1, 16, func(r *Registers, b Bus) ExecResult {
			push(r, b, r.PC+1)
			r.PC = target
			return ExecResult{UpdatePC: false, ActionTaken: true}
		})
	}

	primaryTable[0xF3] = fixed("DI", 1, 4, func(r *Registers, b Bus) ExecResult { r.DisableInterrupts(); return Default() })
	primaryTable[0xFB] = fixed("EI", 1, 4, func(r *Registers, b Bus) ExecResult { r.EnableInterrupts(); return Default() })

	primaryTable[0xCB] = fixed("PREFIX CB", 1, 4, func(r *Registers, b Bus) ExecResult { return Default() })

	// Undefined opcodes are left nil: 0xD3, 0xDB, 0xDD, 0xE3, 0xE4,
	// 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD.
}

// aluHandler builds the ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,<operand>
// handler for the given 3-bit ALU group, given a function that fetches
// the right-hand operand (a register, (HL), or an immediate byte).
func aluHandler(group byte, operand func(r *Registers, b Bus) byte) func(r *Registers, b Bus) ExecResult {
	return func(r *Registers, b Bus) ExecResult {
		v := operand(r, b)
		switch group {
		case 0:
			r.A = add8(r, r.A, v)
		case 1:
			r.A = adc8(r, r.A, v)
		case 2:
			r.A = sub8(r, r.A, v)
		case 3:
			r.A = sbc8(r, r.A, v)
		case 4:
			r.A = and8(r, r.A, v)
		case 5:
			r.A = xor8(r, r.A, v)
		case 6:
			r.A = or8(r, r.A, v)
		case 7:
			cp8(r, r.A, v)
		}
		return Default()
	}
}
