package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordLanesIndependent(t *testing.T) {
	var w Word
	w.SetUD(0x1122334455667788)
	if got := w.UW0(); got != 0x55667788 {
		t.Fatalf("UW0 = %#x, want 0x55667788", got)
	}
	if got := w.UW1(); got != 0x11223344 {
		t.Fatalf("UW1 = %#x, want 0x11223344", got)
	}

	w.SetUW0(0xAABBCCDD)
	if got := w.UW1(); got != 0x11223344 {
		t.Fatalf("SetUW0 clobbered UW1: got %#x", got)
	}
	if got := w.UW0(); got != 0xAABBCCDD {
		t.Fatalf("UW0 = %#x, want 0xAABBCCDD", got)
	}
}

func TestWordSetW0Sext(t *testing.T) {
	var w Word
	w.SetW0Sext(-1)
	if got := w.UD(); got != 0xFFFFFFFFFFFFFFFF {
		t.Fatalf("SetW0Sext(-1): UD = %#x, want all-ones", got)
	}

	w.SetW0Sext(1)
	if got := w.UD(); got != 1 {
		t.Fatalf("SetW0Sext(1): UD = %#x, want 1", got)
	}
}

func TestWordByteAndHalfLanes(t *testing.T) {
	var w Word
	w.SetUD(0x0102030405060708)
	if got := w.UB(0); got != 0x08 {
		t.Fatalf("UB(0) = %#x, want 0x08", got)
	}
	if got := w.UB(7); got != 0x01 {
		t.Fatalf("UB(7) = %#x, want 0x01", got)
	}
	if got := w.UH(0); got != 0x0708 {
		t.Fatalf("UH(0) = %#x, want 0x0708", got)
	}

	w.SetUB(0, 0xFF)
	if got := w.UD(); got != 0x01020304050607FF {
		t.Fatalf("SetUB(0) clobbered other lanes: UD = %#x", got)
	}
}

// TestWordLaneWritesPreserveOthers runs every lane-write accessor against a
// known 64-bit pattern and asserts the written lane took the new value while
// neighbouring lanes kept theirs, table-driven across the full set of lane
// write accessors.
func TestWordLaneWritesPreserveOthers(t *testing.T) {
	const seed = 0x0102030405060708

	cases := []struct {
		name  string
		write func(w *Word)
		check func(t *testing.T, w Word)
	}{
		{
			name:  "SetUW0",
			write: func(w *Word) { w.SetUW0(0xCAFEBABE) },
			check: func(t *testing.T, w Word) {
				require.Equal(t, uint32(0xCAFEBABE), w.UW0())
				require.Equal(t, uint32(0x01020304), w.UW1())
			},
		},
		{
			name:  "SetUW1",
			write: func(w *Word) { w.SetUW1(0xCAFEBABE) },
			check: func(t *testing.T, w Word) {
				require.Equal(t, uint32(0xCAFEBABE), w.UW1())
				require.Equal(t, uint32(0x05060708), w.UW0())
			},
		},
		{
			name:  "SetUH middle lane",
			write: func(w *Word) { w.SetUH(1, 0xBEEF) },
			check: func(t *testing.T, w Word) {
				require.Equal(t, uint16(0xBEEF), w.UH(1))
				require.Equal(t, uint16(0x0708), w.UH(0))
				require.Equal(t, uint16(0x0102), w.UH(3))
			},
		},
		{
			name:  "SetUB high lane",
			write: func(w *Word) { w.SetUB(7, 0xEE) },
			check: func(t *testing.T, w Word) {
				require.Equal(t, uint8(0xEE), w.UB(7))
				require.Equal(t, uint8(0x02), w.UB(6))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w Word
			w.SetUD(seed)
			tc.write(&w)
			tc.check(t, w)
		})
	}
}
