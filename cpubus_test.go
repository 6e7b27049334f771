package main

import "testing"

func TestCPUBusLoadStoreRoundTrip(t *testing.T) {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)

	if err := bus.StoreBytes(0x1000, 4, 0xDEADBEEF); err != nil {
		t.Fatalf("StoreBytes: %v", err)
	}
	got, err := bus.LoadBytes(0x1000, 4)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("LoadBytes = %#x, want 0xDEADBEEF", got)
	}
}

func TestCPUBusLoadCartridgeTooLarge(t *testing.T) {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)
	if err := bus.LoadCartridge(make([]byte, maxCartSize+1)); err != ErrImageTooLarge {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestCPUBusBadAddressOutsideAnyRegion(t *testing.T) {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)
	if _, err := bus.LoadBytes(0x0200_0000, 4); err != ErrBadAddress {
		t.Fatalf("expected ErrBadAddress, got %v", err)
	}
}

func TestCPUBusMMIORegisterWriteReadRoundTrip(t *testing.T) {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)

	if err := bus.StoreBytes(addrMIMask, 4, 0x5A); err != nil {
		t.Fatalf("StoreBytes(MI_MASK): %v", err)
	}
	if rcp.miMask != 0x5A {
		t.Fatalf("rcp.miMask = %#x, want 0x5A", rcp.miMask)
	}
	got, err := bus.LoadBytes(addrMIMask, 4)
	if err != nil {
		t.Fatalf("LoadBytes(MI_MASK): %v", err)
	}
	if got != 0x5A {
		t.Fatalf("LoadBytes(MI_MASK) = %#x, want 0x5A", got)
	}
}

func TestCPUBusPIWriteLengthTriggersDMA(t *testing.T) {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)

	copy(bus.cartROM, []byte{0x11, 0x22, 0x33, 0x44})
	if err := bus.StoreBytes(addrPICartAddr, 4, 0); err != nil {
		t.Fatalf("StoreBytes(PI_CART_ADDR): %v", err)
	}
	if err := bus.StoreBytes(addrPIDRAMAddr, 4, 0x100); err != nil {
		t.Fatalf("StoreBytes(PI_DRAM_ADDR): %v", err)
	}
	if err := bus.StoreBytes(addrPIWRLen, 4, 3); err != nil {
		t.Fatalf("StoreBytes(PI_WR_LEN): %v", err)
	}
	if got := bus.rdram[0x100:0x104]; got[0] != 0x11 || got[3] != 0 {
		t.Fatalf("PI DMA did not copy expected bytes into RDRAM: %v", got)
	}
}
