package main

import "testing"

func encodeI(op, rs, rt uint8, imm16 uint16) Instruction {
	return Instruction(uint32(op)<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(imm16))
}

func encodeR(rs, rt, rd, sa, funct uint8) Instruction {
	return Instruction(uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | uint32(sa)<<6 | uint32(funct))
}

func encodeJ(op uint8, target uint32) Instruction {
	return Instruction(uint32(op)<<26 | (target & 0x03FF_FFFF))
}

func TestDecodeInstructionZeroIsNOP(t *testing.T) {
	if decodeInstruction(0) != kindNOP {
		t.Fatalf("decodeInstruction(0) should be kindNOP")
	}
}

func TestDecodeInstructionPrimaryOpcodes(t *testing.T) {
	cases := []struct {
		instr Instruction
		want  instrKind
	}{
		{encodeI(0x08, 1, 2, 1), kindADDI},
		{encodeI(0x23, 1, 2, 0), kindLW},
		{encodeI(0x2B, 1, 2, 0), kindSW},
		{encodeI(0x0F, 0, 2, 0x1234), kindLUI},
		{encodeJ(0x02, 0x100), kindJ},
		{encodeJ(0x03, 0x100), kindJAL},
	}
	for _, c := range cases {
		if got := decodeInstruction(c.instr); got != c.want {
			t.Errorf("decodeInstruction(%#08x) = %d, want %d", uint32(c.instr), got, c.want)
		}
	}
}

func TestDecodeInstructionSpecialFunct(t *testing.T) {
	addInstr := encodeR(1, 2, 3, 0, 0x20)
	if got := decodeInstruction(addInstr); got != kindADD {
		t.Fatalf("SPECIAL/ADD decoded as %d, want kindADD", got)
	}

	jrInstr := encodeR(1, 0, 0, 0, 0x08)
	if got := decodeInstruction(jrInstr); got != kindJR {
		t.Fatalf("SPECIAL/JR decoded as %d, want kindJR", got)
	}
}

func TestDecodeInstructionRegimm(t *testing.T) {
	bltz := encodeI(0x01, 1, 0x00, 4)
	if got := decodeInstruction(bltz); got != kindBLTZ {
		t.Fatalf("REGIMM/BLTZ decoded as %d, want kindBLTZ", got)
	}
	bgezal := encodeI(0x01, 1, 0x11, 4)
	if got := decodeInstruction(bgezal); got != kindBGEZAL {
		t.Fatalf("REGIMM/BGEZAL decoded as %d, want kindBGEZAL", got)
	}
}

func TestDecodeInstructionReservedIsERROR(t *testing.T) {
	// 0x3E is unassigned in primaryTable.
	unassigned := encodeI(0x3E, 0, 0, 0)
	if got := decodeInstruction(unassigned); got != kindERROR {
		t.Fatalf("unassigned opcode decoded as %d, want kindERROR", got)
	}
}

func TestInstructionFieldAccessors(t *testing.T) {
	instr := encodeI(0x08, 5, 6, 0xFFFF) // ADDI r6, r5, -1
	if got := instr.Rs(); got != 5 {
		t.Errorf("Rs() = %d, want 5", got)
	}
	if got := instr.Rt(); got != 6 {
		t.Errorf("Rt() = %d, want 6", got)
	}
	if got := instr.SImm16(); got != -1 {
		t.Errorf("SImm16() = %d, want -1", got)
	}

	r := encodeR(1, 2, 3, 4, 0x20)
	if got := r.Rd(); got != 3 {
		t.Errorf("Rd() = %d, want 3", got)
	}
	if got := r.Sa(); got != 4 {
		t.Errorf("Sa() = %d, want 4", got)
	}
	if got := r.Funct(); got != 0x20 {
		t.Errorf("Funct() = %#x, want 0x20", got)
	}
}
