// cpubus.go - Physical address bus: RDRAM, cartridge ROM, IPL, and MMIO

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
cpubus.go - CPU Bus

Routes 32-bit physical addresses to host byte slices. The fast path is a
4096-entry page table, one entry per 1 MiB region of the physical address
space (grounded on the teacher's memory_bus.go page-keyed IORegion
dispatch, generalized from a page *mask* over a 16 MiB flat array to a
direct page *table* over host-memory backing arrays, since the N64's
physical map is sparse rather than contiguous). A null page-table entry
falls back to an exact MMIO register match, then to four fixed region
windows (IPL, PIF RAM, RSP DMEM/IMEM, RDP command memory).
*/

package main

import "encoding/binary"

const (
	pageShift = 20
	pageSize  = 1 << pageShift // 1 MiB
	pageMask  = pageSize - 1
	numPages  = 1 << (32 - pageShift) // 4096 entries covering 4 GiB

	rdramSize    = 4 * 1024 * 1024
	rdramXpkSize = 10 * 1024 * 1024 // covers pages 0x004..0x00D (expansion pak)
	maxCartSize  = 0xFC00000 // ~252 MiB
	pifRAMSize   = 64
	rspDMEMSize  = 4 * 1024
	rspIMEMSize  = 4 * 1024
	rdpCMEMSize  = 1 * 1024 * 1024
	iplSize      = 1984 // ~2 KiB

	iplBase  = 0x1FC0_0000
	pifBase  = 0x1FC0_07C0
	pifEnd   = 0x1FC0_0800
	rspDMEMBase = 0x0400_0000
	rspIMEMBase = 0x0400_1000
	rdpCMEMBase = 0x0410_0000
)

// Physical MMIO register addresses (spec §6's exact address map), named
// after the original N64 TKP source this core was modelled on.
const (
	addrRSPDMASPAddr = 0x0404_0000
	addrRSPDMARAMAddr = 0x0404_0004
	addrRSPDMARDLen  = 0x0404_0008
	addrRSPDMAWRLen  = 0x0404_000C
	addrRSPStatus    = 0x0404_0010
	addrRSPDMAFull   = 0x0404_0014
	addrRSPDMABusy   = 0x0404_0018
	addrRSPSemaphore = 0x0404_001C
	addrRSPPC        = 0x0408_0000

	addrMIMode      = 0x0430_0000
	addrMIInterrupt = 0x0430_0008
	addrMIMask      = 0x0430_000C

	addrVICtrl      = 0x0440_0000
	addrVIOrigin    = 0x0440_0004
	addrVIWidth     = 0x0440_0008
	addrVIVIntr     = 0x0440_000C
	addrVIVCurrent  = 0x0440_0010
	addrVIBurst     = 0x0440_0014
	addrVIVSync     = 0x0440_0018
	addrVIHSync     = 0x0440_001C
	addrVIHSyncLeap = 0x0440_0020
	addrVIHVideo    = 0x0440_0024
	addrVIVVideo    = 0x0440_0028
	addrVIVBurst    = 0x0440_002C
	addrVIXScale    = 0x0440_0030
	addrVIYScale    = 0x0440_0034
	addrVITestAddr  = 0x0440_0038
	addrVIStagedData = 0x0440_003C

	addrAIDRAMAddr = 0x0450_0000
	addrAILen      = 0x0450_0004
	addrAIControl  = 0x0450_0008
	addrAIStatus   = 0x0450_000C
	addrAIDACRate  = 0x0450_0010
	addrAIBitRate  = 0x0450_0014

	addrPIDRAMAddr   = 0x0460_0000
	addrPICartAddr   = 0x0460_0004
	addrPIRDLen      = 0x0460_0008
	addrPIWRLen      = 0x0460_000C
	addrPIStatus     = 0x0460_0010
	addrPIBSDDom1Lat = 0x0460_0014
	addrPIBSDDom1Pwd = 0x0460_0018
	addrPIBSDDom1Pgs = 0x0460_001C
	addrPIBSDDom1Rls = 0x0460_0020
	addrPIBSDDom2Lat = 0x0460_0024
	addrPIBSDDom2Pwd = 0x0460_0028
	addrPIBSDDom2Pgs = 0x0460_002C
	addrPIBSDDom2Rls = 0x0460_0030

	addrRIMode        = 0x0470_0000
	addrRIConfig      = 0x0470_0004
	addrRICurrentLoad = 0x0470_0008
	addrRISelect      = 0x0470_000C

	addrSIDRAMAddr   = 0x0480_0000
	addrSIPIFADRd64B = 0x0480_0004
	addrSIPIFADWr4B  = 0x0480_0008
	addrSIPIFADWr64B = 0x0480_0010
	addrSIPIFADRd4B  = 0x0480_0014
	addrSIStatus     = 0x0480_0018

	addrPIFCommand = 0x1FC0_07FC
)

// CPUBus owns RDRAM, expansion-pak RDRAM, cartridge ROM, the boot ROM, PIF
// RAM, and the page table used for the fast memory-access path. It holds
// a reference to the RCP register file for MMIO dispatch on the slow
// path; MMIO stores and Reset write RCP registers through it.
type CPUBus struct {
	rdram    []byte
	rdramXpk []byte
	cartROM  []byte
	ipl      []byte
	pifRAM   [pifRAMSize]byte
	rspDMEM  [rspDMEMSize]byte
	rspIMEM  [rspIMEMSize]byte
	rdpCMEM  [rdpCMEMSize]byte

	pageTable [numPages][]byte // non-nil entries alias into rdram/rdramXpk/cartROM
	pageBase  [numPages]uint32 // physical address each entry's [0] represents

	rcp *RCP

	romLoaded bool
	iplLoaded bool
}

// NewCPUBus constructs a bus with zeroed RDRAM/PIF RAM and the page table
// mapped per spec §4.C: indices 0x000..0x003 -> base RDRAM, 0x004..0x00D
// -> expansion-pak RDRAM, 0x100..0x1FB -> cartridge ROM.
func NewCPUBus(rcp *RCP) *CPUBus {
	bus := &CPUBus{
		rdram:    make([]byte, rdramSize),
		rdramXpk: make([]byte, rdramXpkSize),
		cartROM:  make([]byte, maxCartSize),
		ipl:      make([]byte, iplSize),
		rcp:      rcp,
	}
	bus.mapDirectAddresses()
	bus.Reset()
	return bus
}

func (b *CPUBus) mapDirectAddresses() {
	const rdramPages = rdramSize >> pageShift // pages 0x000..0x003
	for i := 0; i < rdramPages; i++ {
		base := uint32(i) << pageShift
		b.pageTable[i] = b.rdram[base : base+pageSize]
		b.pageBase[i] = base
	}
	for i := rdramPages; i <= 0x00D; i++ {
		base := uint32(i-rdramPages) << pageShift
		b.pageTable[i] = b.rdramXpk[base : base+pageSize]
		b.pageBase[i] = uint32(i) << pageShift
	}
	for i := 0x100; i <= 0x1FB; i++ {
		base := uint32(i-0x100) << pageShift
		b.pageTable[i] = b.cartROM[base : base+pageSize]
		b.pageBase[i] = uint32(i) << pageShift
	}
}

// LoadCartridge places a big-endian z64 image into the cartridge ROM
// backing array. Subsequent resets re-initialize device registers but
// preserve ROM contents.
func (b *CPUBus) LoadCartridge(data []byte) error {
	if len(data) > len(b.cartROM) {
		return ErrImageTooLarge
	}
	clear(b.cartROM)
	copy(b.cartROM, data)
	b.romLoaded = true
	return nil
}

// LoadIPL places the boot ROM image into the fixed IPL region.
func (b *CPUBus) LoadIPL(data []byte) error {
	if len(data) > len(b.ipl) {
		return ErrImageTooLarge
	}
	clear(b.ipl)
	copy(b.ipl, data)
	b.iplLoaded = true
	return nil
}

// Reset zeroes RDRAM and PIF RAM and restores the fixed power-on values
// of the RI-interface registers.
func (b *CPUBus) Reset() {
	clear(b.rdram)
	clear(b.rdramXpk)
	clear(b.pifRAM[:])
	b.rcp.riMode = 0x0E000000
	b.rcp.riConfig = 0x40000000
	b.rcp.riSelect = 0x14000000
}

// FetchInstructionUncached returns the big-endian 32-bit word at paddr,
// byte-swapped to host order.
func (b *CPUBus) FetchInstructionUncached(paddr uint32) (uint32, error) {
	ptr, err := b.redirectSlice(paddr, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(ptr), nil
}

// RedirectPaddress returns a live byte slice covering at least `size`
// bytes starting at paddr, or ErrBadAddress when no mapping exists.
func (b *CPUBus) RedirectPaddress(paddr uint32, size int) ([]byte, error) {
	return b.redirectSlice(paddr, size)
}

func (b *CPUBus) redirectSlice(paddr uint32, size int) ([]byte, error) {
	// 1. Fast path: page table.
	page := paddr >> pageShift
	if entry := b.pageTable[page]; entry != nil {
		off := paddr & pageMask
		if int(off)+size > len(entry) {
			return nil, ErrBadAddress
		}
		return entry[off : off+uint32(size)], nil
	}

	// 2. MMIO exact-address match.
	if s := b.mmioSlice(paddr); s != nil {
		return s, nil
	}

	// 3. Region fallback.
	switch {
	case paddr >= iplBase && paddr < pifBase:
		off := paddr - iplBase
		if int(off)+size > len(b.ipl) {
			return nil, ErrBadAddress
		}
		return b.ipl[off : off+uint32(size)], nil
	case paddr >= pifBase && paddr < pifEnd:
		// The IPL polls bytes 0x26/0x27 of PIF RAM for the CIC seed
		// status at boot; real hardware always presents 0x3F there.
		b.pifRAM[0x26] = 0x3F
		b.pifRAM[0x27] = 0x3F
		off := paddr - pifBase
		if int(off)+size > len(b.pifRAM) {
			return nil, ErrBadAddress
		}
		return b.pifRAM[off : off+uint32(size)], nil
	case paddr >= rspDMEMBase && paddr < rspDMEMBase+rspDMEMSize:
		off := paddr - rspDMEMBase
		return b.rspDMEM[off : off+uint32(size)], nil
	case paddr >= rspIMEMBase && paddr < rspIMEMBase+rspIMEMSize:
		off := paddr - rspIMEMBase
		return b.rspIMEM[off : off+uint32(size)], nil
	case paddr >= rdpCMEMBase && paddr < rdpCMEMBase+rdpCMEMSize:
		off := paddr - rdpCMEMBase
		return b.rdpCMEM[off : off+uint32(size)], nil
	}
	return nil, ErrBadAddress
}

// mmioSlice returns a slice view of the named register at paddr, or nil
// if paddr names no register. Registers are stored as plain uint32
// fields on the RCP; this returns a detached 4-byte big-endian copy of
// the register (RCP.registerBytes), since Go slices cannot alias a struct
// field directly, so writes through it never reach the register.
// LoadBytes/StoreBytes use ReadRegister/WriteRegister for 4-byte register
// accesses and reach this path only for other widths; it is otherwise
// reached through RedirectPaddress/FetchInstructionUncached, and keeps
// §4.C's three-step routing complete and auditable.
func (b *CPUBus) mmioSlice(paddr uint32) []byte {
	if !b.rcp.isRegister(paddr) {
		return nil
	}
	return b.rcp.registerBytes(paddr)
}

// LoadBytes reads `width` big-endian bytes (1, 2, 4 or 8) at paddr,
// honouring MMIO read side effects for exact word-aligned register
// accesses.
func (b *CPUBus) LoadBytes(paddr uint32, width int) (uint64, error) {
	if width == 4 && b.rcp.isRegister(paddr) {
		return uint64(b.rcp.ReadRegister(paddr)), nil
	}
	s, err := b.redirectSlice(paddr, width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(s[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(s)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(s)), nil
	case 8:
		return binary.BigEndian.Uint64(s), nil
	default:
		panicLogicError("LoadBytes: unsupported width")
		return 0, nil
	}
}

// StoreBytes writes the low `width` big-endian bytes of v at paddr,
// honouring MMIO write side effects (PI DMA, VI_CTRL, VI_ORIGIN) for
// exact word-aligned register accesses.
func (b *CPUBus) StoreBytes(paddr uint32, width int, v uint64) error {
	if width == 4 && b.rcp.isRegister(paddr) {
		b.rcp.WriteRegister(b, paddr, uint32(v))
		return nil
	}
	s, err := b.redirectSlice(paddr, width)
	if err != nil {
		return err
	}
	switch width {
	case 1:
		s[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(s, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(s, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(s, v)
	default:
		panicLogicError("StoreBytes: unsupported width")
	}
	return nil
}
