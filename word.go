// word.go - Endian-tagged 64-bit register cell for the N64 CPU core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
word.go - Integer Word View

The VR4300 source models its general-purpose registers as a C union with
endian-switched field order: the same eight bytes of storage are viewed as
one 64-bit cell, two 32-bit halves, four 16-bit halves or eight bytes,
depending on what the instruction being executed needs. Go has no unions,
so this file models the cell as a plain [8]byte array on a little-endian
host and exposes named lane accessors that compute the right byte offset
for each width. Writing through any lane leaves the other lanes' bits
untouched, because every accessor reads/writes only its own byte range of
the shared backing array.
*/

package main

import "encoding/binary"

// Word is the 64-bit tagged storage cell described in spec §3/§4.A. Its
// zero value is all-zero, matching reset state.
type Word struct {
	bytes [8]byte
}

// UD returns the cell's full 64 bits as unsigned.
func (w *Word) UD() uint64 { return binary.LittleEndian.Uint64(w.bytes[:]) }

// D returns the cell's full 64 bits as two's-complement signed.
func (w *Word) D() int64 { return int64(w.UD()) }

// SetUD overwrites all 64 bits.
func (w *Word) SetUD(v uint64) { binary.LittleEndian.PutUint64(w.bytes[:], v) }

// SetD overwrites all 64 bits from a signed value.
func (w *Word) SetD(v int64) { w.SetUD(uint64(v)) }

// laneW0Offset/laneW1Offset are the byte offsets of the low/high 32-bit
// halves in the backing array; the accessors always decode it as
// little-endian, so _0 is always the low half.
const (
	laneW0Offset = 0
	laneW1Offset = 4
)

// UW0/UW1 return the low/high unsigned 32-bit halves ("W._0"/"W._1").
func (w *Word) UW0() uint32 { return binary.LittleEndian.Uint32(w.bytes[laneW0Offset:]) }
func (w *Word) UW1() uint32 { return binary.LittleEndian.Uint32(w.bytes[laneW1Offset:]) }

// W0/W1 return the low/high 32-bit halves as two's-complement signed.
func (w *Word) W0() int32 { return int32(w.UW0()) }
func (w *Word) W1() int32 { return int32(w.UW1()) }

// SetUW0 writes the low 32 bits, leaving the high 32 bits untouched.
func (w *Word) SetUW0(v uint32) { binary.LittleEndian.PutUint32(w.bytes[laneW0Offset:], v) }

// SetUW1 writes the high 32 bits, leaving the low 32 bits untouched.
func (w *Word) SetUW1(v uint32) { binary.LittleEndian.PutUint32(w.bytes[laneW1Offset:], v) }

// SetW0Sext writes the low 32 bits and sign-extends them into the high
// 32 bits in the same operation -- the common case for 32-bit ALU and
// load results per spec §4.F ("All 32-bit arithmetic results are
// sign-extended to 64 bits before storing").
func (w *Word) SetW0Sext(v int32) { w.SetUD(uint64(int64(v))) }

// halfOffset returns the byte offset of H._n on a little-endian host.
func halfOffset(n int) int { return n * 2 }

// UH returns the unsigned 16-bit half at lane n (0..3).
func (w *Word) UH(n int) uint16 { return binary.LittleEndian.Uint16(w.bytes[halfOffset(n):]) }

// H returns the signed 16-bit half at lane n (0..3).
func (w *Word) H(n int) int16 { return int16(w.UH(n)) }

// SetUH writes the unsigned 16-bit half at lane n, preserving other lanes.
func (w *Word) SetUH(n int, v uint16) { binary.LittleEndian.PutUint16(w.bytes[halfOffset(n):], v) }

// UB returns the unsigned byte at lane n (0..7).
func (w *Word) UB(n int) uint8 { return w.bytes[n] }

// B returns the signed byte at lane n (0..7).
func (w *Word) B(n int) int8 { return int8(w.bytes[n]) }

// SetUB writes the byte at lane n, preserving other lanes.
func (w *Word) SetUB(n int, v uint8) { w.bytes[n] = v }

// Bytes exposes the raw little-endian backing storage, e.g. for the
// register-bypass snapshot copy in the pipeline.
func (w *Word) Bytes() [8]byte { return w.bytes }
