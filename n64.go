// n64.go - Top-level machine: wires bus, RCP, CP0, scheduler and pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
n64.go - Machine

Machine is the single entry point a frontend (this package's own main,
or a future GUI) drives: load images, Reset, call Tick in a loop, read
back the framebuffer. It owns the four components spec §5 names and
wires them exactly once, the way the teacher's top-level engine type in
main.go wires its chips to a shared SystemBus.
*/

package main

// Machine is the assembled N64 CPU core: bus, RCP register file, CP0,
// scheduler and the five-stage pipeline, ready to run from reset.
type Machine struct {
	Bus       *CPUBus
	RCP       *RCP
	CP0       *CP0
	Scheduler *Scheduler
	CPU       *CPU
}

// NewMachine constructs a machine with all components wired and reset.
func NewMachine() *Machine {
	rcp := NewRCP()
	bus := NewCPUBus(rcp)
	cp0 := NewCP0()
	sched := NewScheduler()
	cpu := NewCPU(bus, cp0, sched, rcp)
	return &Machine{Bus: bus, RCP: rcp, CP0: cp0, Scheduler: sched, CPU: cpu}
}

// LoadCartridge installs a big-endian z64 cartridge ROM image.
func (m *Machine) LoadCartridge(data []byte) error {
	return m.Bus.LoadCartridge(data)
}

// LoadIPL installs the boot ROM (PIF/IPL) image.
func (m *Machine) LoadIPL(data []byte) error {
	return m.Bus.LoadIPL(data)
}

// SetSkipExceptions toggles the benchmarking fast path (spec §5): when
// enabled, the instructions that would otherwise raise IntegerOverflow
// or AddressError on a misaligned access instead run their non-trapping
// form, committing the same wrapped/misaligned result a real ADDIU or
// unchecked load would produce.
func (m *Machine) SetSkipExceptions(skip bool) {
	m.CPU.skipExceptions = skip
}

// Reset restores the bus and pipeline to their post-reset state (spec
// §6). ROM/IPL contents already loaded are preserved.
func (m *Machine) Reset() {
	m.Bus.Reset()
	m.CPU.Reset()
}

// Tick advances the machine by one pipeline tick.
func (m *Machine) Tick() error {
	return m.CPU.Tick()
}

// Run advances the machine by n ticks, stopping early on the first
// error (a host error or an unhandled architectural exception, per
// spec §7's termination policy).
func (m *Machine) Run(n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := m.Tick(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Framebuffer returns the current video-interface framebuffer view, per
// spec §6's external interface.
func (m *Machine) Framebuffer() (data []byte, width, height int, format uint32) {
	return m.RCP.Framebuffer(m.Bus)
}
