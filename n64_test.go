package main

import "testing"

func TestMachineLoadCartridgeAndRun(t *testing.T) {
	m := NewMachine()
	if err := m.LoadCartridge(make([]byte, 0x1000)); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	m.Reset()
	loadProgram(m, encodeI(0x08, 0, 1, 7)) // ADDI r1, r0, 7

	ran, err := m.Run(5)
	if err != nil {
		t.Fatalf("Run stopped early after %d ticks: %v", ran, err)
	}
	if ran != 5 {
		t.Fatalf("ran = %d, want 5", ran)
	}
	if got := m.CPU.readGPR(1); got != 7 {
		t.Fatalf("r1 = %d, want 7", got)
	}
}

func TestMachineLoadCartridgeTooLarge(t *testing.T) {
	m := NewMachine()
	if err := m.LoadCartridge(make([]byte, maxCartSize+1)); err != ErrImageTooLarge {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestMachineFramebufferDimensions(t *testing.T) {
	m := NewMachine()
	_, width, height, _ := m.Framebuffer()
	if width != 320 || height != 240 {
		t.Fatalf("Framebuffer dims = %dx%d, want 320x240", width, height)
	}
}

func TestMachineResetRestoresPC(t *testing.T) {
	m := NewMachine()
	loadProgram(m, encodeJ(0x02, 0)) // J 0x8000_0000
	if err := m.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	m.Reset()
	if got := m.CPU.pc; got != resetPC {
		t.Fatalf("pc after Reset = %#x, want %#x", got, uint64(resetPC))
	}
}
