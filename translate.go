// translate.go - Virtual-to-physical address translation for unmapped segments

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
translate.go - Address Translator

Only the two unmapped kernel segments (kseg0, kseg1) are implemented, per
spec §1/§4.D; TLB-mapped segments (kuseg, ksseg, kseg3) are stubbed. The
decision is made on the three most-significant bits of the virtual
address, matching the original implementation's translate_kseg0/
translate_kseg1/translate_kuseg split.
*/

package main

// translatedAddress is the result of virtual-to-physical translation.
type translatedAddress struct {
	paddr  uint32
	cached bool
}

const (
	kseg0Base = 0x8000_0000
	kseg1Base = 0xA000_0000
)

// translateVAddr implements spec §4.D's decision table. kuseg (bit 31
// clear) raises NotImplemented; ksseg/kseg3 return the zero
// address uncached, matching spec's explicit "reserved" handling.
func translateVAddr(vaddr uint32) (translatedAddress, error) {
	switch vaddr >> 29 {
	case 0b100: // kseg0
		return translatedAddress{paddr: vaddr - kseg0Base, cached: true}, nil
	case 0b101: // kseg1
		return translatedAddress{paddr: vaddr - kseg1Base, cached: false}, nil
	case 0b110, 0b111: // ksseg, kseg3 - reserved, unmodeled
		return translatedAddress{paddr: 0, cached: false}, nil
	default: // kuseg - TLB-mapped, not implemented
		return translatedAddress{}, errNotImplementedKuseg
	}
}

var errNotImplementedKuseg = &cpuException{code: excTLBMiss, kind: "NotImplemented(kuseg)"}
