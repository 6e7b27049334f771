package main

import "testing"

func TestCP0TickIncrementsCount(t *testing.T) {
	cp0 := NewCP0()
	cp0.Tick()
	cp0.Tick()
	if got := cp0.regs[cp0Count].UW0(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestCP0TickFiresOnCompareMatch(t *testing.T) {
	cp0 := NewCP0()
	cp0.regs[cp0Compare].SetUW0(3)
	for i := 0; i < 3; i++ {
		cp0.Tick()
	}
	if !cp0.timerFired {
		t.Fatalf("timerFired should be set once Count reaches Compare")
	}
	if cause := cp0.regs[cp0Cause].UW0(); cause&(1<<7) == 0 {
		t.Fatalf("Cause bit 7 should be set on timer match, got %#x", cause)
	}
}

func TestCP0CheckInterruptsAssertsCauseBit0(t *testing.T) {
	cp0 := NewCP0()
	rcp := NewRCP()
	rcp.miMask = 0x01
	rcp.miInterrupt = 0x01
	cp0.checkInterrupts(rcp)
	if cause := cp0.regs[cp0Cause].UW0(); cause&1 == 0 {
		t.Fatalf("Cause bit 0 should be set when MI_MASK&MI_INTERRUPT != 0")
	}

	rcp.miInterrupt = 0
	cp0.checkInterrupts(rcp)
	if cause := cp0.regs[cp0Cause].UW0(); cause&1 != 0 {
		t.Fatalf("Cause bit 0 should clear when MI_MASK&MI_INTERRUPT == 0")
	}
}

func TestCP0MTC0MFC0SignExtend(t *testing.T) {
	cp0 := NewCP0()
	cp0.MTC0(cp0Status, -1)
	if got := cp0.MFC0(cp0Status); got != -1 {
		t.Fatalf("MFC0 = %d, want -1 (sign-extended)", got)
	}
}
