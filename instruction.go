// instruction.go - 32-bit instruction views and the two fixed decode tables

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
instruction.go - Instruction Decoder

A MIPS III instruction is a single 32-bit word with three overlapping
field layouts (I-type, J-type, R-type). Rather than method-pointer
dispatch, decoding is table-driven: two fixed 64-entry arrays map the
primary opcode and, when the primary opcode is SPECIAL (0), the funct
field, to an enumerated instruction kind. This keeps decode pure and
keeps the EX-stage switch over kinds local and auditable, per the
teacher's own table-driven dispatch style for coprocessor command codes
in coprocessor_manager.go.
*/

package main

// Instruction is a raw 32-bit MIPS III instruction word.
type Instruction uint32

// Op returns the primary 6-bit opcode (bits 31..26).
func (i Instruction) Op() uint8 { return uint8(i>>26) & 0x3F }

// Rs returns the 5-bit rs field (bits 25..21).
func (i Instruction) Rs() uint8 { return uint8(i>>21) & 0x1F }

// Rt returns the 5-bit rt field (bits 20..16).
func (i Instruction) Rt() uint8 { return uint8(i>>16) & 0x1F }

// Rd returns the 5-bit rd field (bits 15..11), valid for R-type.
func (i Instruction) Rd() uint8 { return uint8(i>>11) & 0x1F }

// Sa returns the 5-bit shift-amount field (bits 10..6), valid for R-type.
func (i Instruction) Sa() uint8 { return uint8(i>>6) & 0x1F }

// Funct returns the 6-bit SPECIAL function field (bits 5..0).
func (i Instruction) Funct() uint8 { return uint8(i) & 0x3F }

// Imm16 returns the raw unsigned 16-bit immediate (bits 15..0), valid
// for I-type.
func (i Instruction) Imm16() uint16 { return uint16(i) }

// SImm16 returns the 16-bit immediate sign-extended to int32.
func (i Instruction) SImm16() int32 { return int32(int16(i.Imm16())) }

// Target returns the 26-bit jump target (bits 25..0), valid for J-type.
func (i Instruction) Target() uint32 { return uint32(i) & 0x03FF_FFFF }

// instrKind enumerates every decoded instruction kind. NOP and ERROR are
// sentinel kinds outside the ~110 real variants: NOP when the raw word is
// all zero, ERROR when neither table has semantics bound to the opcode.
type instrKind int

const (
	kindNOP instrKind = iota
	kindERROR

	// I-type arithmetic/logical immediate
	kindADDI
	kindADDIU
	kindSLTI
	kindSLTIU
	kindANDI
	kindORI
	kindXORI
	kindLUI
	kindDADDI
	kindDADDIU

	// Branches
	kindBEQ
	kindBNE
	kindBLEZ
	kindBGTZ
	kindBEQL
	kindBNEL
	kindBLEZL
	kindBGTZL

	// REGIMM (op=1) branches, decoded via a secondary dispatch on rt
	kindBLTZ
	kindBGEZ
	kindBLTZL
	kindBGEZL
	kindBLTZAL
	kindBGEZAL
	kindTGEI
	kindTGEIU
	kindTLTI
	kindTLTIU
	kindTEQI
	kindTNEI

	// Jumps
	kindJ
	kindJAL

	// Loads
	kindLB
	kindLBU
	kindLH
	kindLHU
	kindLW
	kindLWU
	kindLWL
	kindLWR
	kindLD
	kindLDL
	kindLDR
	kindLL
	kindLLD

	// Stores
	kindSB
	kindSH
	kindSW
	kindSWL
	kindSWR
	kindSD
	kindSDL
	kindSDR
	kindSC
	kindSCD

	// Coprocessor 0 / 1 moves and control
	kindMTC0
	kindMFC0
	kindDMTC0
	kindDMFC0
	kindCOP0
	kindMTC1
	kindMFC1
	kindDMTC1
	kindDMFC1
	kindLWC1
	kindSWC1
	kindLDC1
	kindSDC1
	kindCOP1
	kindCACHE

	// SPECIAL (op=0) R-type
	kindSLL
	kindSRL
	kindSRA
	kindSLLV
	kindSRLV
	kindSRAV
	kindJR
	kindJALR
	kindSYSCALL
	kindBREAK
	kindSYNC
	kindMFHI
	kindMTHI
	kindMFLO
	kindMTLO
	kindDSLLV
	kindDSRLV
	kindDSRAV
	kindMULT
	kindMULTU
	kindDIV
	kindDIVU
	kindDMULT
	kindDMULTU
	kindDDIV
	kindDDIVU
	kindADD
	kindADDU
	kindSUB
	kindSUBU
	kindAND
	kindOR
	kindXOR
	kindNOR
	kindSLT
	kindSLTU
	kindDADD
	kindDADDU
	kindDSUB
	kindDSUBU
	kindTGE
	kindTGEU
	kindTLT
	kindTLTU
	kindTEQ
	kindTNE
	kindDSLL
	kindDSRL
	kindDSRA
	kindDSLL32
	kindDSRL32
	kindDSRA32

	numInstrKinds
)

// primaryTable is indexed by the primary 6-bit opcode. Entries 0x00
// (SPECIAL) and 0x01 (REGIMM) stay kindERROR and are never read:
// decodeInstruction sends those opcodes to specialTable/regimmTable
// before any primaryTable lookup.
var primaryTable [64]instrKind

// specialTable is indexed by the SPECIAL funct field, consulted only when
// the primary opcode is 0.
var specialTable [64]instrKind

// regimmTable is indexed by rt when the primary opcode is REGIMM (1).
// Spec names this dispatch informally via BLTZ/BGEZ/... in §4.F's
// instruction-kind space; it is modelled as its own 32-entry table so the
// two canonical 64-entry tables in §4.B stay exactly 64 entries each.
var regimmTable [32]instrKind

func init() {
	for i := range primaryTable {
		primaryTable[i] = kindERROR
	}
	for i := range specialTable {
		specialTable[i] = kindERROR
	}
	for i := range regimmTable {
		regimmTable[i] = kindERROR
	}

	primaryTable[0x01] = kindERROR // REGIMM: resolved via regimmTable, not primaryTable
	primaryTable[0x02] = kindJ
	primaryTable[0x03] = kindJAL
	primaryTable[0x04] = kindBEQ
	primaryTable[0x05] = kindBNE
	primaryTable[0x06] = kindBLEZ
	primaryTable[0x07] = kindBGTZ
	primaryTable[0x08] = kindADDI
	primaryTable[0x09] = kindADDIU
	primaryTable[0x0A] = kindSLTI
	primaryTable[0x0B] = kindSLTIU
	primaryTable[0x0C] = kindANDI
	primaryTable[0x0D] = kindORI
	primaryTable[0x0E] = kindXORI
	primaryTable[0x0F] = kindLUI
	primaryTable[0x10] = kindCOP0
	primaryTable[0x11] = kindCOP1
	primaryTable[0x14] = kindBEQL
	primaryTable[0x15] = kindBNEL
	primaryTable[0x16] = kindBLEZL
	primaryTable[0x17] = kindBGTZL
	primaryTable[0x18] = kindDADDI
	primaryTable[0x19] = kindDADDIU
	primaryTable[0x1A] = kindLDL
	primaryTable[0x1B] = kindLDR
	primaryTable[0x20] = kindLB
	primaryTable[0x21] = kindLH
	primaryTable[0x22] = kindLWL
	primaryTable[0x23] = kindLW
	primaryTable[0x24] = kindLBU
	primaryTable[0x25] = kindLHU
	primaryTable[0x26] = kindLWR
	primaryTable[0x27] = kindLWU
	primaryTable[0x28] = kindSB
	primaryTable[0x29] = kindSH
	primaryTable[0x2A] = kindSWL
	primaryTable[0x2B] = kindSW
	primaryTable[0x2C] = kindSDL
	primaryTable[0x2D] = kindSDR
	primaryTable[0x2E] = kindSWR
	primaryTable[0x2F] = kindCACHE
	primaryTable[0x30] = kindLL
	primaryTable[0x31] = kindLWC1
	primaryTable[0x34] = kindLLD
	primaryTable[0x35] = kindLDC1
	primaryTable[0x37] = kindLD
	primaryTable[0x38] = kindSC
	primaryTable[0x39] = kindSWC1
	primaryTable[0x3C] = kindSCD
	primaryTable[0x3D] = kindSDC1
	primaryTable[0x3F] = kindSD

	specialTable[0x00] = kindSLL
	specialTable[0x02] = kindSRL
	specialTable[0x03] = kindSRA
	specialTable[0x04] = kindSLLV
	specialTable[0x06] = kindSRLV
	specialTable[0x07] = kindSRAV
	specialTable[0x08] = kindJR
	specialTable[0x09] = kindJALR
	specialTable[0x0C] = kindSYSCALL
	specialTable[0x0D] = kindBREAK
	specialTable[0x0F] = kindSYNC
	specialTable[0x10] = kindMFHI
	specialTable[0x11] = kindMTHI
	specialTable[0x12] = kindMFLO
	specialTable[0x13] = kindMTLO
	specialTable[0x14] = kindDSLLV
	specialTable[0x16] = kindDSRLV
	specialTable[0x17] = kindDSRAV
	specialTable[0x18] = kindMULT
	specialTable[0x19] = kindMULTU
	specialTable[0x1A] = kindDIV
	specialTable[0x1B] = kindDIVU
	specialTable[0x1C] = kindDMULT
	specialTable[0x1D] = kindDMULTU
	specialTable[0x1E] = kindDDIV
	specialTable[0x1F] = kindDDIVU
	specialTable[0x20] = kindADD
	specialTable[0x21] = kindADDU
	specialTable[0x22] = kindSUB
	specialTable[0x23] = kindSUBU
	specialTable[0x24] = kindAND
	specialTable[0x25] = kindOR
	specialTable[0x26] = kindXOR
	specialTable[0x27] = kindNOR
	specialTable[0x2A] = kindSLT
	specialTable[0x2B] = kindSLTU
	specialTable[0x2C] = kindDADD
	specialTable[0x2D] = kindDADDU
	specialTable[0x2E] = kindDSUB
	specialTable[0x2F] = kindDSUBU
	specialTable[0x30] = kindTGE
	specialTable[0x31] = kindTGEU
	specialTable[0x32] = kindTLT
	specialTable[0x33] = kindTLTU
	specialTable[0x34] = kindTEQ
	specialTable[0x36] = kindTNE
	specialTable[0x38] = kindDSLL
	specialTable[0x3A] = kindDSRL
	specialTable[0x3B] = kindDSRA
	specialTable[0x3C] = kindDSLL32
	specialTable[0x3E] = kindDSRL32
	specialTable[0x3F] = kindDSRA32

	regimmTable[0x00] = kindBLTZ
	regimmTable[0x01] = kindBGEZ
	regimmTable[0x02] = kindBLTZL
	regimmTable[0x03] = kindBGEZL
	regimmTable[0x08] = kindTGEI
	regimmTable[0x09] = kindTGEIU
	regimmTable[0x0A] = kindTLTI
	regimmTable[0x0B] = kindTLTIU
	regimmTable[0x0C] = kindTEQI
	regimmTable[0x0E] = kindTNEI
	regimmTable[0x10] = kindBLTZAL
	regimmTable[0x11] = kindBGEZAL
}

// decodeInstruction applies the decode rule from spec §4.B: the
// all-zero word is NOP; else op==0 consults specialTable on funct;
// op==1 consults regimmTable on rt; op==0x10 (COP0) decodes MFC0 (rs=0)
// and MTC0 (rs=4), any other rs staying kindCOP0; else the primary table
// on op. A table miss (kindERROR) signals "reserved instruction" to the
// EX stage.
func decodeInstruction(raw Instruction) instrKind {
	if raw == 0 {
		return kindNOP
	}
	op := raw.Op()
	switch op {
	case 0x00:
		return specialTable[raw.Funct()]
	case 0x01:
		return regimmTable[raw.Rt()&0x1F]
	case 0x10:
		switch raw.Rs() {
		case 0x00:
			return kindMFC0
		case 0x04:
			return kindMTC0
		}
		return primaryTable[op]
	default:
		return primaryTable[op]
	}
}
