// pipeline.go - Five-stage pipeline engine (IC, RF, EX, DC, WB)

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
pipeline.go - Pipeline Engine

One Tick() call advances all five stages. The stages run in reverse
order -- WB, DC, EX, RF, IC -- so that a value committed by a later
stage is visible to an earlier stage within the same tick, without
allocating separate "current"/"next" latch buffers (the teacher's own
CPU cores instead swap latch pairs at the end of a cycle; here, running
stages back-to-front lets each stage overwrite the very latch field the
next-older stage already consumed this tick, which is simpler and is
the model spec's design notes call for explicitly).
*/

package main

// writeKind tags what a pipeline latch's write will do at commit time.
type writeKind int

const (
	writeNone writeKind = iota
	writeRegister
	writeLateRegister
	writeMMU
)

// destKind tags where a REGISTER/LATEREGISTER write lands.
type destKind int

const (
	destGPR destKind = iota
	destPC
	destHI
	destLO
	destCP0
)

// exdcLatch is the EX->DC (and, reused, DC->WB) latch record described
// in spec §3: a planned write with kind, width, destination, a pending
// load's virtual address, and a payload.
type exdcLatch struct {
	writeType writeKind
	width     int // 1, 2, 4 or 8
	signed    bool

	destKind destKind
	destReg  uint8 // valid when destKind == destGPR/destCP0

	paddr uint32 // valid when writeType == writeMMU
	vaddr uint32 // valid when writeType == writeLateRegister (pending load)

	data uint64
}

// rfexLatch is the RF->EX latch: the decoded instruction, its kind, and
// snapshots of gpr[rs]/gpr[rt] together with their indices (spec §3).
type rfexLatch struct {
	instr   Instruction
	kind    instrKind
	rsIndex uint8
	rtIndex uint8
	rsVal   uint64
	rtVal   uint64
}

// CPU is the pipeline engine plus the architectural register state it
// operates on (spec §3's register file and special scalars).
type CPU struct {
	bus       *CPUBus
	cp0       *CP0
	scheduler *Scheduler
	rcp       *RCP

	gpr [32]Word
	fpr [32]Word

	pc     uint64
	hi, lo Word
	llbit  bool
	fcr0   uint32
	fcr31  uint32

	icrf Instruction
	rfex rfexLatch
	exdc exdcLatch
	dcwb exdcLatch

	skipExceptions bool
}

// resetPC is the fixed post-reset program counter (spec §6).
const resetPC = 0x8000_1000

// NewCPU wires a pipeline engine to its bus, CP0, scheduler and RCP and
// leaves it reset.
func NewCPU(bus *CPUBus, cp0 *CP0, sched *Scheduler, rcp *RCP) *CPU {
	cpu := &CPU{bus: bus, cp0: cp0, scheduler: sched, rcp: rcp}
	cpu.Reset()
	return cpu
}

// Reset clears all GPRs/FPRs, special scalars and pipeline latches and
// sets pc to the fixed boot address, so that the first five ticks do
// useful work on the first five instructions of the IPL (spec §6).
func (cpu *CPU) Reset() {
	cpu.gpr = [32]Word{}
	cpu.fpr = [32]Word{}
	cpu.hi = Word{}
	cpu.lo = Word{}
	cpu.llbit = false
	cpu.fcr0 = 0
	cpu.fcr31 = 0
	cpu.pc = resetPC
	cpu.icrf = 0
	cpu.rfex = rfexLatch{}
	cpu.exdc = exdcLatch{}
	cpu.dcwb = exdcLatch{}
}

// readGPR returns gpr[idx].UD, honoring the r0-is-always-zero invariant.
func (cpu *CPU) readGPR(idx uint8) uint64 {
	if idx == 0 {
		return 0
	}
	return cpu.gpr[idx].UD()
}

// writeGPR stores v into gpr[idx] unless idx is r0.
func (cpu *CPU) writeGPR(idx uint8, v uint64) {
	if idx == 0 {
		return
	}
	cpu.gpr[idx].SetUD(v)
}

// Tick advances all five pipeline stages by one logical step, per spec
// §4.E's six-step per-tick contract, and then consults the scheduler at
// the same per-tick granularity (spec §2: "the Scheduler is consulted
// at a coarser granularity (once per tick is sufficient)").
func (cpu *CPU) Tick() error {
	// 1. r0 is reset to zero.
	cpu.gpr[0].SetUD(0)

	// 2. WB commits DC->WB.
	if err := cpu.stageWB(); err != nil {
		return err
	}

	// 3. DC reads EX->DC, performs pending loads, applies load-interlock bypass.
	if err := cpu.stageDC(); err != nil {
		return err
	}

	// 4. EX decodes RF->EX semantics, emits EX->DC, applies EX register bypass.
	if err := cpu.stageEX(); err != nil {
		return err
	}

	// 5. RF snapshots gpr[rs]/gpr[rt] of IC->RF and decodes its kind.
	cpu.stageRF()

	// 6. IC fetches the instruction at pc and advances pc by 4.
	if err := cpu.stageIC(); err != nil {
		return err
	}

	cpu.cp0.Tick()
	cpu.scheduler.Advance(cpu.cp0, cpu.rcp)
	return nil
}

func (cpu *CPU) stageWB() error {
	lat := cpu.dcwb
	switch lat.writeType {
	case writeMMU:
		return cpu.commitMemoryWrite(lat)
	case writeLateRegister:
		cpu.commitRegisterWrite(lat)
		// Late bypass: refresh the RF->EX latch's source snapshots from
		// the register file now that this load's value has landed.
		cpu.rfex.rsVal = cpu.readGPR(cpu.rfex.rsIndex)
		cpu.rfex.rtVal = cpu.readGPR(cpu.rfex.rtIndex)
	case writeRegister:
		// EX must have already bypassed REGISTER writes and downgraded
		// the latch to writeNone; seeing REGISTER here is a logic bug.
		panicLogicError("WB saw write_type REGISTER: should have been EX-bypassed to NONE")
	case writeNone:
		// no-op
	}
	return nil
}

// commitRegisterWrite applies a finalized register write (from EX for
// bypassed REGISTER writes, from WB for LATEREGISTER loads) to its
// destination kind.
func (cpu *CPU) commitRegisterWrite(lat exdcLatch) {
	v := lat.data
	switch lat.destKind {
	case destGPR:
		cpu.writeGPR(lat.destReg, v)
	case destPC:
		cpu.pc = v
	case destHI:
		cpu.hi.SetUD(v)
	case destLO:
		cpu.lo.SetUD(v)
	case destCP0:
		cpu.cp0.MTC0(lat.destReg, int32(v))
	}
}

// commitMemoryWrite performs the store described by an MMU-kind latch.
func (cpu *CPU) commitMemoryWrite(lat exdcLatch) error {
	return cpu.bus.StoreBytes(lat.paddr, lat.width, lat.data)
}

func (cpu *CPU) stageDC() error {
	lat := cpu.exdc
	next := exdcLatch{
		writeType: lat.writeType,
		width:     lat.width,
		signed:    lat.signed,
		destKind:  lat.destKind,
		destReg:   lat.destReg,
		paddr:     lat.paddr,
		data:      lat.data,
	}
	if lat.writeType == writeLateRegister {
		translated, err := translateVAddr(lat.vaddr)
		if err != nil {
			return err
		}
		raw, err := cpu.bus.LoadBytes(translated.paddr, lat.width)
		if err != nil {
			return err
		}
		next.data = signExtendOrZero(raw, lat.width, lat.signed)

		// Load-interlock bypass: if the instruction now sitting in
		// RF->EX (about to execute at EX later this tick) reads the
		// register this load targets, forward the value directly
		// instead of letting it read a stale snapshot.
		if lat.destKind == destGPR {
			if cpu.rfex.rsIndex == lat.destReg && lat.destReg != 0 {
				cpu.rfex.rsVal = next.data
			}
			if cpu.rfex.rtIndex == lat.destReg && lat.destReg != 0 {
				cpu.rfex.rtVal = next.data
			}
		}
	}
	cpu.dcwb = next
	return nil
}

func (cpu *CPU) stageEX() error {
	lat := cpu.rfex
	// skipExceptions is threaded into executeInstruction's own overflow/
	// alignment checks (semantics.go) rather than handled here: eliding
	// the check at its source lets the ALU/load/store path run its
	// ordinary non-trapping arithmetic and commit the wrapped result,
	// instead of discarding a write after the fact.
	next, exc := executeInstruction(cpu, lat)
	if exc != nil {
		return exc
	}
	if next.writeType == writeRegister {
		cpu.commitRegisterWrite(next)
		next.writeType = writeNone
	}
	cpu.exdc = next
	return nil
}

func (cpu *CPU) stageRF() {
	instr := cpu.icrf
	kind := decodeInstruction(instr)
	rs := instr.Rs()
	rt := instr.Rt()
	cpu.rfex = rfexLatch{
		instr:   instr,
		kind:    kind,
		rsIndex: rs,
		rtIndex: rt,
		rsVal:   cpu.readGPR(rs),
		rtVal:   cpu.readGPR(rt),
	}
}

func (cpu *CPU) stageIC() error {
	translated, err := translateVAddr(uint32(cpu.pc))
	if err != nil {
		return err
	}
	word, err := cpu.bus.FetchInstructionUncached(translated.paddr)
	if err != nil {
		return err
	}
	cpu.icrf = Instruction(word)
	cpu.pc += 4
	return nil
}

// signExtendOrZero interprets the low `width` bytes of raw as signed or
// unsigned and widens to 64 bits, per spec §4.F's load sign/zero
// extension rules.
func signExtendOrZero(raw uint64, width int, signed bool) uint64 {
	if !signed {
		return raw
	}
	switch width {
	case 1:
		return uint64(int64(int8(raw)))
	case 2:
		return uint64(int64(int16(raw)))
	case 4:
		return uint64(int64(int32(raw)))
	default:
		return raw
	}
}
