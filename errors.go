// errors.go - Host and architectural error taxonomy for the N64 CPU core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "fmt"

// Host errors. These terminate the current Tick and propagate to the
// frontend; the frontend's only obligation after one is to stop calling
// Tick.
var (
	ErrBadAddress              = fmt.Errorf("n64: no mapping for physical address")
	ErrInstructionNotImplemented = fmt.Errorf("n64: decoded instruction kind has no semantics")
	ErrImageTooLarge           = fmt.Errorf("n64: image exceeds maximum size")
)

// excCode is a CP0 Cause-register exception code (ExcCode field, bits 6..2).
type excCode uint8

const (
	excInterrupt          excCode = 0
	excAddressErrorLoad   excCode = 4
	excAddressErrorStore  excCode = 5
	excReservedInstr      excCode = 10
	excCoprocessorUnusable excCode = 11
	excOverflow           excCode = 12
	excTrap               excCode = 13
	excTLBMiss            excCode = 2
)

// cpuException models an architectural exception raised inside a tick.
// This core does not yet vector to an exception handler: stageEX returns
// the exception straight out of Tick, terminating the run exactly like a
// host error, and no CP0 state (Cause, EPC) is touched on the way out.
// Spec §7 names this a provisional stand-in for a full handler, which is
// why exceptions have their own type instead of reusing the host-error
// sentinels -- a future handler needs to tell the two apart to resume
// execution rather than terminate it. They are a Go error only so the
// EX-stage dispatch can use ordinary error returns internally without a
// second sentinel mechanism.
type cpuException struct {
	code excCode
	kind string // human-readable name: IntegerOverflow, AddressError, ...
	addr uint64 // BadVAddr for address errors; unused otherwise
}

func (e *cpuException) Error() string {
	return fmt.Sprintf("n64: architectural exception %s (ExcCode=%d)", e.kind, e.code)
}

func newOverflowException() *cpuException {
	return &cpuException{code: excOverflow, kind: "IntegerOverflow"}
}

func newAddressErrorException(load bool, addr uint64) *cpuException {
	c := excAddressErrorLoad
	if !load {
		c = excAddressErrorStore
	}
	return &cpuException{code: c, kind: "AddressError", addr: addr}
}

func newReservedInstructionException() *cpuException {
	return &cpuException{code: excReservedInstr, kind: "ReservedInstruction"}
}

func newTrapException() *cpuException {
	return &cpuException{code: excTrap, kind: "Trap"}
}

func newCoprocessorUnusableException() *cpuException {
	return &cpuException{code: excCoprocessorUnusable, kind: "CoprocessorUnusable"}
}

func newTLBMissException(addr uint64) *cpuException {
	return &cpuException{code: excTLBMiss, kind: "TLBMiss", addr: addr}
}

// logicError marks a programming-invariant violation (e.g. a LATEREGISTER
// latch surviving to a REGISTER write at WB, or a nil destination
// pointer). These are bugs, not data: the implementation asserts and
// aborts rather than returning an error value.
type logicError struct{ msg string }

func (e *logicError) Error() string { return "n64: logic error: " + e.msg }

func panicLogicError(msg string) {
	panic(&logicError{msg: msg})
}
