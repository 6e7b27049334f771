// masks_test.go - Round-trip tests for the partial-word mask/shift tables

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"testing"
)

// partialOpTestRig sets up a machine with a known word or doubleword
// already resident at 0x8000_2000 (RDRAM offset 0x2000, 8-byte aligned),
// and r10 holding that base address.
func partialOpTestRig(t *testing.T) *Machine {
	t.Helper()
	m := newPipelineTestRig()
	m.CPU.writeGPR(10, 0x8000_2000)
	return m
}

func pokeWord(m *Machine, vaddr uint32, v uint32) {
	off := vaddr - kseg0Base
	binary.BigEndian.PutUint32(m.Bus.rdram[off:off+4], v)
}

func pokeDword(m *Machine, vaddr uint32, v uint64) {
	off := vaddr - kseg0Base
	binary.BigEndian.PutUint64(m.Bus.rdram[off:off+8], v)
}

func readWord(m *Machine, vaddr uint32) uint32 {
	off := vaddr - kseg0Base
	return binary.BigEndian.Uint32(m.Bus.rdram[off : off+4])
}

func readDword(m *Machine, vaddr uint32) uint64 {
	off := vaddr - kseg0Base
	return binary.BigEndian.Uint64(m.Bus.rdram[off : off+8])
}

// TestPartialLoadWordLeftMisaligned checks LWL at offset+1 merges the
// shifted memory word into the register's low byte, per the masks.go
// tables re-derived from original_source's CPU::LWL.
func TestPartialLoadWordLeftMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeWord(m, 0x8000_2000, 0x11223344)
	m.CPU.writeGPR(9, 0x000000AA)
	loadProgram(m, encodeI(0x22, 10, 9, 1)) // LWL r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := m.CPU.readGPR(9), uint64(0x223344AA); got != want {
		t.Fatalf("r9 = %#x, want %#x", got, want)
	}
}

// TestPartialLoadWordRightMisaligned checks LWR at offset+1 merges the
// shifted memory word into the register's high byte.
func TestPartialLoadWordRightMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeWord(m, 0x8000_2000, 0x11223344)
	m.CPU.writeGPR(9, 0x000000AA)
	loadProgram(m, encodeI(0x26, 10, 9, 1)) // LWR r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := m.CPU.readGPR(9), uint64(0x00112233); got != want {
		t.Fatalf("r9 = %#x, want %#x", got, want)
	}
}

// TestPartialLoadDoubleLeftMisaligned checks LDL at offset+1 over a full
// 64-bit doubleword.
func TestPartialLoadDoubleLeftMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeDword(m, 0x8000_2000, 0x1122334455667788)
	m.CPU.writeGPR(9, 0x00000000000000AA)
	loadProgram(m, encodeI(0x1A, 10, 9, 1)) // LDL r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := m.CPU.readGPR(9), uint64(0x22334455667788AA); got != want {
		t.Fatalf("r9 = %#x, want %#x", got, want)
	}
}

// TestPartialLoadDoubleRightMisaligned checks LDR at offset+1.
func TestPartialLoadDoubleRightMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeDword(m, 0x8000_2000, 0x1122334455667788)
	m.CPU.writeGPR(9, 0x00000000000000AA)
	loadProgram(m, encodeI(0x1B, 10, 9, 1)) // LDR r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := m.CPU.readGPR(9), uint64(0x0011223344556677); got != want {
		t.Fatalf("r9 = %#x, want %#x", got, want)
	}
}

// TestPartialStoreWordLeftMisaligned checks SWL at offset+1 keeps
// memory's high byte and shifts the register's high bytes into the rest.
func TestPartialStoreWordLeftMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeWord(m, 0x8000_2000, 0x11223344)
	m.CPU.writeGPR(9, 0xAABBCCDD)
	loadProgram(m, encodeI(0x2A, 10, 9, 1)) // SWL r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := readWord(m, 0x8000_2000), uint32(0x11AABBCC); got != want {
		t.Fatalf("mem = %#x, want %#x", got, want)
	}
}

// TestPartialStoreWordRightMisaligned checks SWR at offset+1 keeps
// memory's low byte and shifts the register's low bytes up.
func TestPartialStoreWordRightMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeWord(m, 0x8000_2000, 0x11223344)
	m.CPU.writeGPR(9, 0xAABBCCDD)
	loadProgram(m, encodeI(0x2E, 10, 9, 1)) // SWR r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := readWord(m, 0x8000_2000), uint32(0xBBCCDD44); got != want {
		t.Fatalf("mem = %#x, want %#x", got, want)
	}
}

// TestPartialStoreDoubleLeftMisaligned checks SDL at offset+1.
func TestPartialStoreDoubleLeftMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeDword(m, 0x8000_2000, 0x1122334455667788)
	m.CPU.writeGPR(9, 0xAABBCCDDEEFF0011)
	loadProgram(m, encodeI(0x2C, 10, 9, 1)) // SDL r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := readDword(m, 0x8000_2000), uint64(0x11AABBCCDDEEFF00); got != want {
		t.Fatalf("mem = %#x, want %#x", got, want)
	}
}

// TestPartialStoreDoubleRightMisaligned checks SDR at offset+1.
func TestPartialStoreDoubleRightMisaligned(t *testing.T) {
	m := partialOpTestRig(t)
	pokeDword(m, 0x8000_2000, 0x1122334455667788)
	m.CPU.writeGPR(9, 0xAABBCCDDEEFF0011)
	loadProgram(m, encodeI(0x2D, 10, 9, 1)) // SDR r9, 1(r10)
	if err := runTicks(m, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := readDword(m, 0x8000_2000), uint64(0xBBCCDDEEFF001188); got != want {
		t.Fatalf("mem = %#x, want %#x", got, want)
	}
}
