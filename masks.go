// masks.go - Width-specific mask/shift tables for partial-word memory ops

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
masks.go - Partial-word load/store helpers (LWL/LWR/LDL/LDR/SWL/SWR/SDL/SDR)

The tables below are re-derived directly from original_source's
Devices/n64_cpu.cpp CPU::LWL/LWR/LDL/LDR (the ground-truth reference this
core was modelled on): the mask is always indexed by the low address
bits within the naturally aligned word/doubleword, and the shift amount
is always `idx*8` -- LWL/LDL shift the loaded word left into the
register (keeping the register's low idx bytes), LWR/LDR shift it right
(keeping the register's high bytes). original_source's own LDR loads
only a 32-bit word where a 64-bit one belongs; this core loads the full
doubleword instead (see DESIGN.md).

SWL/SWR/SDL/SDR are the store-side duals, applied to the word already in
memory instead of the register. A store moves bytes the opposite
direction from a load, so the mask pairing crosses over: SWL (like LWR)
keeps memory's high bytes and shifts the register right into the low
ones, while SWR (like LWL) keeps memory's low bytes and shifts the
register left into the high ones. Same for SDL/SDR against LDL/LDR.
*/

package main

// The lwl/lwr/swl/swr mask and shift tables cover LWL/LWR/SWL/SWR,
// indexed by vaddr&3.
var (
	lwlMask  = [4]uint32{0x00000000, 0x000000FF, 0x0000FFFF, 0x00FFFFFF}
	lwlShift = [4]uint{0, 8, 16, 24}

	lwrMask  = [4]uint32{0x00000000, 0xFF000000, 0xFFFF0000, 0xFFFFFF00}
	lwrShift = [4]uint{0, 8, 16, 24}

	swlMask  = [4]uint32{0x00000000, 0xFF000000, 0xFFFF0000, 0xFFFFFF00}
	swlShift = [4]uint{0, 8, 16, 24}

	swrMask  = [4]uint32{0x00000000, 0x000000FF, 0x0000FFFF, 0x00FFFFFF}
	swrShift = [4]uint{0, 8, 16, 24}
)

// The ldl/ldr/sdl/sdr mask and shift tables cover LDL/LDR/SDL/SDR,
// indexed by vaddr&7.
var (
	ldlMask  = [8]uint64{
		0x0000000000000000, 0x00000000000000FF, 0x000000000000FFFF, 0x0000000000FFFFFF,
		0x00000000FFFFFFFF, 0x000000FFFFFFFFFF, 0x0000FFFFFFFFFFFF, 0x00FFFFFFFFFFFFFF,
	}
	ldlShift = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}

	ldrMask  = [8]uint64{
		0x0000000000000000, 0xFF00000000000000, 0xFFFF000000000000, 0xFFFFFF0000000000,
		0xFFFFFFFF00000000, 0xFFFFFFFFFF000000, 0xFFFFFFFFFFFF0000, 0xFFFFFFFFFFFFFF00,
	}
	ldrShift = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}

	sdlMask  = [8]uint64{
		0x0000000000000000, 0xFF00000000000000, 0xFFFF000000000000, 0xFFFFFF0000000000,
		0xFFFFFFFF00000000, 0xFFFFFFFFFF000000, 0xFFFFFFFFFFFF0000, 0xFFFFFFFFFFFFFF00,
	}
	sdlShift = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}

	sdrMask  = [8]uint64{
		0x0000000000000000, 0x00000000000000FF, 0x000000000000FFFF, 0x0000000000FFFFFF,
		0x00000000FFFFFFFF, 0x000000FFFFFFFFFF, 0x0000FFFFFFFFFFFF, 0x00FFFFFFFFFFFFFF,
	}
	sdrShift = [8]uint{0, 8, 16, 24, 32, 40, 48, 56}
)
