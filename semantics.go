// semantics.go - Per-instruction-kind behavior invoked at EX

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
semantics.go - Instruction Semantics

executeInstruction is EX's dispatch table: given the decoded kind and the
RF->EX latch (snapshotted rs/rt values, their indices, and the raw
instruction word for immediate/target/shift-amount fields), it produces
the EX->DC planned-write record spec §3 describes, or a *cpuException
for architectural faults. Kinds outside the documented minimum set (spec
§4.F) fall through to ErrInstructionNotImplemented, matching spec's
"first implementation" allowance.

All arithmetic here follows spec §4.F's bit-exact contracts: immediates
sign/zero-extend before use, 32-bit results sign-extend to 64 bits
before storing, and partial loads/stores use the width-specific masks
in masks.go rather than either of the two disagreeing mask tables the
distillation's sources carried (spec §9).
*/

package main

func executeInstruction(cpu *CPU, lat rfexLatch) (exdcLatch, error) {
	instr := lat.instr
	rs, rt := lat.rsVal, lat.rtVal

	switch lat.kind {
	case kindNOP:
		return exdcLatch{}, nil
	case kindERROR:
		return exdcLatch{}, newReservedInstructionException()

	// ---- Immediate arithmetic / logical ----
	case kindADDI, kindADDIU:
		return exALUImm32(instr.Rt(), int32(rs), instr.SImm16(), lat.kind == kindADDI && !cpu.skipExceptions)
	case kindSLTI:
		v := uint64(0)
		if int64(rs) < int64(instr.SImm16()) {
			v = 1
		}
		return regLatch(instr.Rt(), v), nil
	case kindSLTIU:
		v := uint64(0)
		if rs < uint64(int64(instr.SImm16())) {
			v = 1
		}
		return regLatch(instr.Rt(), v), nil
	case kindANDI:
		return regLatch(instr.Rt(), rs&uint64(instr.Imm16())), nil
	case kindORI:
		return regLatch(instr.Rt(), rs|uint64(instr.Imm16())), nil
	case kindXORI:
		return regLatch(instr.Rt(), rs^uint64(instr.Imm16())), nil
	case kindLUI:
		v := int32(instr.Imm16()) << 16
		return regLatch(instr.Rt(), uint64(int64(v))), nil
	case kindDADDI, kindDADDIU:
		return exDADDImm(instr.Rt(), rs, int64(instr.SImm16()), lat.kind == kindDADDI && !cpu.skipExceptions)

	// ---- Branches ----
	case kindBEQ:
		return branchLatch(cpu.pc, instr.SImm16(), rs == rt), nil
	case kindBNE:
		return branchLatch(cpu.pc, instr.SImm16(), rs != rt), nil
	case kindBLEZ:
		return branchLatch(cpu.pc, instr.SImm16(), int64(rs) <= 0), nil
	case kindBGTZ:
		return branchLatch(cpu.pc, instr.SImm16(), int64(rs) > 0), nil
	case kindBLTZ:
		return branchLatch(cpu.pc, instr.SImm16(), int64(rs) < 0), nil
	case kindBGEZ:
		return branchLatch(cpu.pc, instr.SImm16(), int64(rs) >= 0), nil
	case kindBLTZAL:
		lk := branchLatch(cpu.pc, instr.SImm16(), int64(rs) < 0)
		cpu.writeGPR(31, cpu.pc)
		return lk, nil
	case kindBGEZAL:
		lk := branchLatch(cpu.pc, instr.SImm16(), int64(rs) >= 0)
		cpu.writeGPR(31, cpu.pc)
		return lk, nil
	case kindBEQL:
		return likelyBranchLatch(cpu, instr.SImm16(), rs == rt), nil
	case kindBNEL:
		return likelyBranchLatch(cpu, instr.SImm16(), rs != rt), nil
	case kindBLEZL:
		return likelyBranchLatch(cpu, instr.SImm16(), int64(rs) <= 0), nil
	case kindBGTZL:
		return likelyBranchLatch(cpu, instr.SImm16(), int64(rs) > 0), nil
	case kindBLTZL:
		return likelyBranchLatch(cpu, instr.SImm16(), int64(rs) < 0), nil
	case kindBGEZL:
		return likelyBranchLatch(cpu, instr.SImm16(), int64(rs) >= 0), nil

	// ---- Jumps ----
	case kindJ:
		return exdcLatch{writeType: writeRegister, destKind: destPC,
			data: uint64((cpu.pc & 0xF000_0000) | uint64(instr.Target()<<2))}, nil
	case kindJAL:
		cpu.writeGPR(31, cpu.pc)
		return exdcLatch{writeType: writeRegister, destKind: destPC,
			data: uint64((cpu.pc & 0xF000_0000) | uint64(instr.Target()<<2))}, nil
	case kindJR:
		return exdcLatch{writeType: writeRegister, destKind: destPC, data: rs}, nil
	case kindJALR:
		link := instr.Rd()
		if link == 0 {
			link = 31
		}
		cpu.writeGPR(link, cpu.pc)
		return exdcLatch{writeType: writeRegister, destKind: destPC, data: rs}, nil

	// ---- Loads ----
	case kindLB:
		return loadLatch(instr, rs, 1, true), nil
	case kindLBU:
		return loadLatch(instr, rs, 1, false), nil
	case kindLH:
		if addr := int64(rs) + int64(instr.SImm16()); addr&1 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		return loadLatch(instr, rs, 2, true), nil
	case kindLHU:
		if addr := int64(rs) + int64(instr.SImm16()); addr&1 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		return loadLatch(instr, rs, 2, false), nil
	case kindLW:
		if addr := int64(rs) + int64(instr.SImm16()); addr&3 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		return loadLatch(instr, rs, 4, true), nil
	case kindLWU:
		if addr := int64(rs) + int64(instr.SImm16()); addr&3 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		return loadLatch(instr, rs, 4, false), nil
	case kindLD, kindLLD:
		if addr := int64(rs) + int64(instr.SImm16()); addr&7 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		return loadLatch(instr, rs, 8, false), nil
	case kindLL:
		if addr := int64(rs) + int64(instr.SImm16()); addr&3 != 0 && !cpu.skipExceptions {
			return exdcLatch{}, newAddressErrorException(true, uint64(addr))
		}
		cpu.llbit = true
		return loadLatch(instr, rs, 4, true), nil

	// ---- Partial-word loads (width-specific masks, masks.go) ----
	case kindLWL, kindLWR:
		return partialLoadLatch(cpu, instr, rs, rt, false)
	case kindLDL, kindLDR:
		return partialLoadLatch(cpu, instr, rs, rt, true)

	// ---- Stores ----
	case kindSB:
		return storeLatch(cpu, instr, rs, rt, 1)
	case kindSH:
		return storeLatch(cpu, instr, rs, rt, 2)
	case kindSW:
		return storeLatch(cpu, instr, rs, rt, 4)
	case kindSD, kindSC, kindSCD:
		if lat.kind == kindSC || lat.kind == kindSCD {
			cpu.writeGPR(instr.Rt(), boolToUint64(cpu.llbit))
			if !cpu.llbit {
				return exdcLatch{}, nil
			}
		}
		return storeLatch(cpu, instr, rs, rt, 8)

	// ---- Partial-word stores ----
	case kindSWL, kindSWR, kindSDL, kindSDR:
		return partialStoreLatch(cpu, instr, rs, rt, lat.kind)

	// ---- SPECIAL R-type ALU ----
	case kindSLL:
		return regLatch(instr.Rd(), signExt32(uint32(rt)<<instr.Sa())), nil
	case kindSRL:
		return regLatch(instr.Rd(), signExt32(uint32(rt)>>instr.Sa())), nil
	case kindSRA:
		return regLatch(instr.Rd(), signExt32(uint32(int32(uint32(rt))>>instr.Sa()))), nil
	case kindSLLV:
		return regLatch(instr.Rd(), signExt32(uint32(rt)<<(rs&0x1F))), nil
	case kindSRLV:
		return regLatch(instr.Rd(), signExt32(uint32(rt)>>(rs&0x1F))), nil
	case kindSRAV:
		return regLatch(instr.Rd(), signExt32(uint32(int32(uint32(rt))>>(rs&0x1F)))), nil
	case kindDSLL:
		return regLatch(instr.Rd(), rt<<instr.Sa()), nil
	case kindDSRL:
		return regLatch(instr.Rd(), rt>>instr.Sa()), nil
	case kindDSRA:
		return regLatch(instr.Rd(), uint64(int64(rt)>>instr.Sa())), nil
	case kindDSLL32:
		return regLatch(instr.Rd(), rt<<(instr.Sa()+32)), nil
	case kindDSRL32:
		return regLatch(instr.Rd(), rt>>(instr.Sa()+32)), nil
	case kindDSRA32:
		return regLatch(instr.Rd(), uint64(int64(rt)>>(instr.Sa()+32))), nil
	case kindDSLLV:
		return regLatch(instr.Rd(), rt<<(rs&0x3F)), nil
	case kindDSRLV:
		return regLatch(instr.Rd(), rt>>(rs&0x3F)), nil
	case kindDSRAV:
		return regLatch(instr.Rd(), uint64(int64(rt)>>(rs&0x3F))), nil
	case kindMFHI:
		return regLatch(instr.Rd(), cpu.hi.UD()), nil
	case kindMTHI:
		cpu.hi.SetUD(rs)
		return exdcLatch{}, nil
	case kindMFLO:
		return regLatch(instr.Rd(), cpu.lo.UD()), nil
	case kindMTLO:
		cpu.lo.SetUD(rs)
		return exdcLatch{}, nil

	case kindADD, kindADDU:
		return exALUImm32(instr.Rd(), int32(rs), int32(rt), lat.kind == kindADD && !cpu.skipExceptions)
	case kindSUB, kindSUBU:
		return exSub32(instr.Rd(), int32(rs), int32(rt), lat.kind == kindSUB && !cpu.skipExceptions)
	case kindDADD, kindDADDU:
		return exDADDImm(instr.Rd(), rs, int64(rt), lat.kind == kindDADD && !cpu.skipExceptions)
	case kindDSUB, kindDSUBU:
		return exDSub(instr.Rd(), rs, rt, lat.kind == kindDSUB && !cpu.skipExceptions)
	case kindAND:
		return regLatch(instr.Rd(), rs&rt), nil
	case kindOR:
		return regLatch(instr.Rd(), rs|rt), nil
	case kindXOR:
		return regLatch(instr.Rd(), rs^rt), nil
	case kindNOR:
		return regLatch(instr.Rd(), ^(rs | rt)), nil
	case kindSLT:
		return regLatch(instr.Rd(), boolToUint64(int64(rs) < int64(rt))), nil
	case kindSLTU:
		return regLatch(instr.Rd(), boolToUint64(rs < rt)), nil

	case kindMULT:
		p := int64(int32(rs)) * int64(int32(rt))
		cpu.lo.SetW0Sext(int32(p))
		cpu.hi.SetW0Sext(int32(p >> 32))
		return exdcLatch{}, nil
	case kindMULTU:
		p := uint64(uint32(rs)) * uint64(uint32(rt))
		cpu.lo.SetW0Sext(int32(uint32(p)))
		cpu.hi.SetW0Sext(int32(uint32(p >> 32)))
		return exdcLatch{}, nil
	case kindDIV:
		if int32(rt) != 0 {
			cpu.lo.SetW0Sext(int32(rs) / int32(rt))
			cpu.hi.SetW0Sext(int32(rs) % int32(rt))
		}
		return exdcLatch{}, nil
	case kindDIVU:
		if uint32(rt) != 0 {
			cpu.lo.SetW0Sext(int32(uint32(rs) / uint32(rt)))
			cpu.hi.SetW0Sext(int32(uint32(rs) % uint32(rt)))
		}
		return exdcLatch{}, nil

	// ---- Traps ----
	case kindTGE:
		if int64(rs) >= int64(rt) {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil
	case kindTGEU:
		if rs >= rt {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil
	case kindTLT:
		if int64(rs) < int64(rt) {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil
	case kindTLTU:
		if rs < rt {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil
	case kindTEQ:
		if rs == rt {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil
	case kindTNE:
		if rs != rt {
			return exdcLatch{}, newTrapException()
		}
		return exdcLatch{}, nil

	// ---- CP0 moves ----
	case kindMTC0:
		return exdcLatch{writeType: writeRegister, destKind: destCP0,
			destReg: instr.Rd(), data: uint64(int64(int32(rt)))}, nil
	case kindMFC0:
		return regLatch(instr.Rt(), uint64(cpu.cp0.MFC0(instr.Rd()))), nil

	case kindSYSCALL, kindBREAK, kindSYNC, kindCACHE:
		return exdcLatch{}, nil

	default:
		return exdcLatch{}, ErrInstructionNotImplemented
	}
}

func regLatch(reg uint8, v uint64) exdcLatch {
	return exdcLatch{writeType: writeRegister, destKind: destGPR, destReg: reg, data: v}
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func signExt32(v uint32) uint64 { return uint64(int64(int32(v))) }

// exALUImm32 implements the shared ADDI/ADDIU/ADD/ADDU contract: add two
// 32-bit signed values, sign-extend the 32-bit sum to 64 bits, and (only
// for the trapping variant) raise IntegerOverflow when the carries into
// and out of bit 31 differ, per spec §4.E, leaving the destination
// unmodified.
func exALUImm32(dest uint8, a, b int32, trapping bool) (exdcLatch, error) {
	sum := int64(a) + int64(b)
	overflowed := sum != int64(int32(sum))
	if overflowed && trapping {
		return exdcLatch{}, newOverflowException()
	}
	return regLatch(dest, signExt32(uint32(int32(sum)))), nil
}

func exSub32(dest uint8, a, b int32, trapping bool) (exdcLatch, error) {
	diff := int64(a) - int64(b)
	overflowed := diff != int64(int32(diff))
	if overflowed && trapping {
		return exdcLatch{}, newOverflowException()
	}
	return regLatch(dest, signExt32(uint32(int32(diff)))), nil
}

// exDADDImm implements the 64-bit DADD/DADDI family analogously to
// exALUImm32 but over the full 64-bit lane, for completeness (not in
// spec's required minimum instruction set, but named by the decoder's
// instruction-kind space).
func exDADDImm(dest uint8, a uint64, b int64, trapping bool) (exdcLatch, error) {
	sum := a + uint64(b)
	aSign := int64(a) < 0
	bSign := b < 0
	sumSign := int64(sum) < 0
	overflowed := aSign == bSign && sumSign != aSign
	if overflowed && trapping {
		return exdcLatch{}, newOverflowException()
	}
	return regLatch(dest, sum), nil
}

func exDSub(dest uint8, a, b uint64, trapping bool) (exdcLatch, error) {
	diff := a - b
	aSign := int64(a) < 0
	bSign := int64(b) < 0
	diffSign := int64(diff) < 0
	overflowed := aSign != bSign && diffSign != aSign
	if overflowed && trapping {
		return exdcLatch{}, newOverflowException()
	}
	return regLatch(dest, diff), nil
}

// branchLatch computes the spec §4.E branch target
// "pc - 4 + (simm << 2)" (IC has already advanced pc by 8 at branch-EX
// time) when taken; otherwise it produces no write.
func branchLatch(pc uint64, simm16 int32, taken bool) exdcLatch {
	if !taken {
		return exdcLatch{}
	}
	target := pc - 4 + uint64(int64(simm16)<<2)
	return exdcLatch{writeType: writeRegister, destKind: destPC, data: target}
}

// likelyBranchLatch additionally nullifies the delay slot (overwrites
// the IC->RF latch with NOP) when the branch is not taken, per spec
// §4.E's "likely" branch rule.
func likelyBranchLatch(cpu *CPU, simm16 int32, taken bool) exdcLatch {
	if !taken {
		cpu.icrf = 0
		return exdcLatch{}
	}
	target := cpu.pc - 4 + uint64(int64(simm16)<<2)
	return exdcLatch{writeType: writeRegister, destKind: destPC, data: target}
}

// loadLatch builds a LATEREGISTER latch for a naturally aligned load:
// the destination register and width/sign are known now, but the value
// itself is only known at DC after translation and the actual memory
// read.
func loadLatch(instr Instruction, rs uint64, width int, signed bool) exdcLatch {
	vaddr := uint32(int64(rs) + int64(instr.SImm16()))
	return exdcLatch{
		writeType: writeLateRegister,
		destKind:  destGPR,
		destReg:   instr.Rt(),
		width:     width,
		signed:    signed,
		vaddr:     vaddr,
	}
}

// storeLatch translates the virtual store address at EX time (per spec
// §4.E, stores carry a physical destination directly rather than a
// pending vaddr) and checks natural alignment.
func storeLatch(cpu *CPU, instr Instruction, rs, rt uint64, width int) (exdcLatch, error) {
	vaddr := int64(rs) + int64(instr.SImm16())
	if vaddr&int64(width-1) != 0 && !cpu.skipExceptions {
		return exdcLatch{}, newAddressErrorException(false, uint64(vaddr))
	}
	translated, err := translateVAddr(uint32(vaddr))
	if err != nil {
		return exdcLatch{}, err
	}
	mask := uint64(1)<<(uint(width)*8) - 1
	if width == 8 {
		mask = ^uint64(0)
	}
	return exdcLatch{
		writeType: writeMMU,
		width:     width,
		paddr:     translated.paddr,
		data:      rt & mask,
	}, nil
}

// partialLoadLatch implements LWL/LWR/LDL/LDR using the width-specific
// mask/shift tables in masks.go: the naturally aligned word/doubleword
// containing vaddr is read directly here (not deferred to DC, since the
// result also depends on the current register value rt, which is only
// available now) and merged into the destination register.
func partialLoadLatch(cpu *CPU, instr Instruction, rs, rt uint64, is64 bool) (exdcLatch, error) {
	vaddr := uint32(int64(rs) + int64(instr.SImm16()))
	isR := instr.Op() == 0x1B || instr.Op() == 0x26 // LDR or LWR
	var width int
	if is64 {
		width = 8
	} else {
		width = 4
	}
	alignedAddr := vaddr &^ uint32(width-1)
	translated, err := translateVAddr(alignedAddr)
	if err != nil {
		return exdcLatch{}, err
	}
	raw, err := cpu.bus.LoadBytes(translated.paddr, width)
	if err != nil {
		return exdcLatch{}, err
	}
	idx := vaddr & uint32(width-1)
	var merged uint64
	if is64 {
		if isR {
			merged = (rt & ldrMask[idx]) | (raw >> ldrShift[idx])
		} else {
			merged = (rt & ldlMask[idx]) | (raw << ldlShift[idx])
		}
	} else {
		if isR {
			merged = uint64(int64(int32((uint32(rt) & lwrMask[idx]) | (uint32(raw) >> lwrShift[idx]))))
		} else {
			merged = uint64(int64(int32((uint32(rt) & lwlMask[idx]) | (uint32(raw) << lwlShift[idx]))))
		}
	}
	return regLatch(instr.Rt(), merged), nil
}

// partialStoreLatch implements SWL/SWR/SDL/SDR symmetrically to
// partialLoadLatch: merge rt into the naturally aligned word/doubleword
// currently in memory and write it back immediately (EX-time, like
// other stores).
func partialStoreLatch(cpu *CPU, instr Instruction, rs, rt uint64, kind instrKind) (exdcLatch, error) {
	vaddr := uint32(int64(rs) + int64(instr.SImm16()))
	is64 := kind == kindSDL || kind == kindSDR
	isR := kind == kindSWR || kind == kindSDR
	width := 4
	if is64 {
		width = 8
	}
	alignedAddr := vaddr &^ uint32(width-1)
	translated, err := translateVAddr(alignedAddr)
	if err != nil {
		return exdcLatch{}, err
	}
	raw, err := cpu.bus.LoadBytes(translated.paddr, width)
	if err != nil {
		return exdcLatch{}, err
	}
	idx := vaddr & uint32(width-1)
	var merged uint64
	if is64 {
		if isR {
			merged = (raw & sdrMask[idx]) | (rt << sdrShift[idx])
		} else {
			merged = (raw & sdlMask[idx]) | (rt >> sdlShift[idx])
		}
	} else {
		if isR {
			merged = uint64((uint32(raw) & swrMask[idx]) | (uint32(rt) << swrShift[idx]))
		} else {
			merged = uint64((uint32(raw) & swlMask[idx]) | (uint32(rt) >> swlShift[idx]))
		}
	}
	return exdcLatch{writeType: writeMMU, width: width, paddr: translated.paddr, data: merged}, nil
}
