// rcp.go - Reality Co-Processor register file (visible registers only)

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
rcp.go - RCP register file

Per spec §1 the RSP/RDP/VE internal execution is out of scope; only their
memory-mapped register file is modeled, the way the teacher's
audio_chip.go/video_chip.go model a chip's register surface without
modeling its internal DSP pipeline. RCP is a flat struct of uint32
registers grouped by interface (RSP, MI, VI, AI, PI, RI, SI), addressed
through CPUBus's slow path by exact physical address.

Register writes reach RCP through CPUBus (MMIO stores, and the RI
power-on values restored by CPUBus.Reset) and through the Scheduler's
VI/Interrupt handling of MI_INTERRUPT and VI_V_INTR. Writes that carry a
documented side effect (PI DMA, VI_CTRL pixel format, VI_ORIGIN
framebuffer pointer) are applied here in WriteRegister so every MMIO
write path (pipeline stores, coprocessor debug pokes) observes the same
behavior.
*/

package main

// VI_CTRL pixel-format field values (bits 1..0).
const (
	viFormatRGB5  = 2
	viFormatRGBA  = 3
)

// RCP models the externally visible register file of the Reality
// Co-Processor plus the CPU-bus-local MI/RI/SI registers, all addressed
// through the same physical MMIO window.
type RCP struct {
	rspDMASPAddr  uint32
	rspDMARAMAddr uint32
	rspDMARDLen   uint32
	rspDMAWRLen   uint32
	rspStatus     uint32
	rspDMAFull    uint32
	rspDMABusy    uint32
	rspSemaphore  uint32
	rspPC         uint32

	miMode      uint32
	miInterrupt uint32
	miMask      uint32

	viCtrl       uint32
	viOrigin     uint32
	viWidth      uint32
	viVIntr      uint32
	viVCurrent   uint32
	viBurst      uint32
	viVSync      uint32
	viHSync      uint32
	viHSyncLeap  uint32
	viHVideo     uint32
	viVVideo     uint32
	viVBurst     uint32
	viXScale     uint32
	viYScale     uint32
	viTestAddr   uint32
	viStagedData uint32

	aiDRAMAddr uint32
	aiLen      uint32
	aiControl  uint32
	aiStatus   uint32
	aiDACRate  uint32
	aiBitRate  uint32

	piDRAMAddr   uint32
	piCartAddr   uint32
	piRDLen      uint32
	piWRLen      uint32
	piStatus     uint32
	piBSDDom1Lat uint32
	piBSDDom1Pwd uint32
	piBSDDom1Pgs uint32
	piBSDDom1Rls uint32
	piBSDDom2Lat uint32
	piBSDDom2Pwd uint32
	piBSDDom2Pgs uint32
	piBSDDom2Rls uint32

	riMode        uint32
	riConfig      uint32
	riCurrentLoad uint32
	riSelect      uint32

	siDRAMAddr   uint32
	siPIFADRd64B uint32
	siPIFADWr4B  uint32
	siPIFADWr64B uint32
	siPIFADRd4B  uint32
	siStatus     uint32

	pifCommand uint32

	// framebuffer tracks the most recently selected VI_ORIGIN/VI_CTRL
	// state for Framebuffer; width/height are fixed at NTSC's
	// standard 320x240 since spec's Non-goals exclude accurate video
	// timing beyond a per-frame interrupt.
	framebufferOrigin uint32
	framebufferFormat uint32
}

// NewRCP returns a zeroed RCP; CPUBus.Reset restores the RI power-on
// values afterward.
func NewRCP() *RCP {
	return &RCP{}
}

// registerPtr returns a pointer to the uint32 register at the given
// physical address, or nil if no register lives there.
func (r *RCP) registerPtr(addr uint32) *uint32 {
	switch addr {
	case addrRSPDMASPAddr:
		return &r.rspDMASPAddr
	case addrRSPDMARAMAddr:
		return &r.rspDMARAMAddr
	case addrRSPDMARDLen:
		return &r.rspDMARDLen
	case addrRSPDMAWRLen:
		return &r.rspDMAWRLen
	case addrRSPStatus:
		return &r.rspStatus
	case addrRSPDMAFull:
		return &r.rspDMAFull
	case addrRSPDMABusy:
		return &r.rspDMABusy
	case addrRSPSemaphore:
		return &r.rspSemaphore
	case addrRSPPC:
		return &r.rspPC
	case addrMIMode:
		return &r.miMode
	case addrMIInterrupt:
		return &r.miInterrupt
	case addrMIMask:
		return &r.miMask
	case addrVICtrl:
		return &r.viCtrl
	case addrVIOrigin:
		return &r.viOrigin
	case addrVIWidth:
		return &r.viWidth
	case addrVIVIntr:
		return &r.viVIntr
	case addrVIVCurrent:
		return &r.viVCurrent
	case addrVIBurst:
		return &r.viBurst
	case addrVIVSync:
		return &r.viVSync
	case addrVIHSync:
		return &r.viHSync
	case addrVIHSyncLeap:
		return &r.viHSyncLeap
	case addrVIHVideo:
		return &r.viHVideo
	case addrVIVVideo:
		return &r.viVVideo
	case addrVIVBurst:
		return &r.viVBurst
	case addrVIXScale:
		return &r.viXScale
	case addrVIYScale:
		return &r.viYScale
	case addrVITestAddr:
		return &r.viTestAddr
	case addrVIStagedData:
		return &r.viStagedData
	case addrAIDRAMAddr:
		return &r.aiDRAMAddr
	case addrAILen:
		return &r.aiLen
	case addrAIControl:
		return &r.aiControl
	case addrAIStatus:
		return &r.aiStatus
	case addrAIDACRate:
		return &r.aiDACRate
	case addrAIBitRate:
		return &r.aiBitRate
	case addrPIDRAMAddr:
		return &r.piDRAMAddr
	case addrPICartAddr:
		return &r.piCartAddr
	case addrPIRDLen:
		return &r.piRDLen
	case addrPIWRLen:
		return &r.piWRLen
	case addrPIStatus:
		return &r.piStatus
	case addrPIBSDDom1Lat:
		return &r.piBSDDom1Lat
	case addrPIBSDDom1Pwd:
		return &r.piBSDDom1Pwd
	case addrPIBSDDom1Pgs:
		return &r.piBSDDom1Pgs
	case addrPIBSDDom1Rls:
		return &r.piBSDDom1Rls
	case addrPIBSDDom2Lat:
		return &r.piBSDDom2Lat
	case addrPIBSDDom2Pwd:
		return &r.piBSDDom2Pwd
	case addrPIBSDDom2Pgs:
		return &r.piBSDDom2Pgs
	case addrPIBSDDom2Rls:
		return &r.piBSDDom2Rls
	case addrRIMode:
		return &r.riMode
	case addrRIConfig:
		return &r.riConfig
	case addrRICurrentLoad:
		return &r.riCurrentLoad
	case addrRISelect:
		return &r.riSelect
	case addrSIDRAMAddr:
		return &r.siDRAMAddr
	case addrSIPIFADRd64B:
		return &r.siPIFADRd64B
	case addrSIPIFADWr4B:
		return &r.siPIFADWr4B
	case addrSIPIFADWr64B:
		return &r.siPIFADWr64B
	case addrSIPIFADRd4B:
		return &r.siPIFADRd4B
	case addrSIStatus:
		return &r.siStatus
	case addrPIFCommand:
		return &r.pifCommand
	default:
		return nil
	}
}

// isRegister reports whether addr names an MMIO register.
func (r *RCP) isRegister(addr uint32) bool { return r.registerPtr(addr) != nil }

// registerBytes returns a detached big-endian snapshot of the register
// at addr, for the rarely used raw-pointer style read in
// CPUBus.RedirectPaddress. Writes through the returned slice do not
// reach the register: all register writes must flow through
// WriteRegister so side effects (PI DMA, VI framebuffer selection) fire.
func (r *RCP) registerBytes(addr uint32) []byte {
	p := r.registerPtr(addr)
	if p == nil {
		return nil
	}
	buf := make([]byte, 4)
	buf[0] = byte(*p >> 24)
	buf[1] = byte(*p >> 16)
	buf[2] = byte(*p >> 8)
	buf[3] = byte(*p)
	return buf
}

// ReadRegister returns the current value of the register at addr. Caller
// must have already confirmed isRegister(addr).
func (r *RCP) ReadRegister(addr uint32) uint32 {
	return *r.registerPtr(addr)
}

// WriteRegister stores v into the register at addr and applies any
// documented hardware side effect (spec §4.H). Caller must have already
// confirmed isRegister(addr).
func (r *RCP) WriteRegister(bus *CPUBus, addr uint32, v uint32) {
	p := r.registerPtr(addr)
	*p = v
	switch addr {
	case addrPIWRLen:
		r.doPIDMA(bus)
	case addrVICtrl:
		r.framebufferFormat = v & 0x3
	case addrVIOrigin:
		r.framebufferOrigin = v
	}
}

// doPIDMA performs the synchronous cartridge->RDRAM DMA spec §4.H and §8
// scenario 6 describe: writing N to PI_WR_LEN copies N bytes (no N-1
// length encoding) from cartridge offset PI_CART_ADDR into RDRAM offset
// PI_DRAM_ADDR, clamped to the end of either array.
func (r *RCP) doPIDMA(bus *CPUBus) {
	length := r.piWRLen
	src := r.piCartAddr & 0x0FFF_FFFF
	dst := r.piDRAMAddr & 0x00FF_FFFF
	if int(dst)+int(length) > len(bus.rdram) {
		length = uint32(len(bus.rdram)) - dst
	}
	if int(src)+int(length) > len(bus.cartROM) {
		length = uint32(len(bus.cartROM)) - src
	}
	copy(bus.rdram[dst:dst+length], bus.cartROM[src:src+length])
}

// Framebuffer returns the host framebuffer description for the frontend
// API named in spec §6: a byte slice view of the RDRAM region the VI
// currently scans out, its dimensions, and its pixel format.
func (r *RCP) Framebuffer(bus *CPUBus) (data []byte, width, height int, format uint32) {
	const fbWidth, fbHeight = 320, 240
	bytesPerPixel := 2
	if r.framebufferFormat == viFormatRGBA {
		bytesPerPixel = 4
	}
	size := fbWidth * fbHeight * bytesPerPixel
	off := r.framebufferOrigin & 0x00FF_FFFF
	if int(off)+size > len(bus.rdram) {
		size = len(bus.rdram) - int(off)
	}
	if size < 0 {
		size = 0
	}
	return bus.rdram[off : int(off)+size], fbWidth, fbHeight, r.framebufferFormat
}
