package main

import "testing"

func TestTranslateVAddrKseg0(t *testing.T) {
	got, err := translateVAddr(0x8000_1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.paddr != 0x1000 {
		t.Errorf("paddr = %#x, want 0x1000", got.paddr)
	}
	if !got.cached {
		t.Errorf("kseg0 should be cached")
	}
}

func TestTranslateVAddrKseg1(t *testing.T) {
	got, err := translateVAddr(0xA000_1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.paddr != 0x1000 {
		t.Errorf("paddr = %#x, want 0x1000", got.paddr)
	}
	if got.cached {
		t.Errorf("kseg1 should be uncached")
	}
}

func TestTranslateVAddrKusegNotImplemented(t *testing.T) {
	_, err := translateVAddr(0x0040_0000)
	if err == nil {
		t.Fatalf("expected error for kuseg address")
	}
}

func TestTranslateVAddrReservedSegments(t *testing.T) {
	for _, vaddr := range []uint32{0xC000_0000, 0xE000_0000} {
		got, err := translateVAddr(vaddr)
		if err != nil {
			t.Fatalf("vaddr %#x: unexpected error %v", vaddr, err)
		}
		if got.paddr != 0 {
			t.Errorf("vaddr %#x: paddr = %#x, want 0", vaddr, got.paddr)
		}
	}
}
