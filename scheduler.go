// scheduler.go - Priority queue of future timer/video/interrupt events

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
scheduler.go - Scheduler

A min-priority queue keyed by absolute cycle count, ties broken by
insertion order. No pack example carries a third-party priority-queue
library; container/heap is the standard-library structure idiomatic Go
reaches for here (see DESIGN.md), generalizing the teacher's
ticket/completion map in coprocessor_manager.go from "lookup by ticket"
to "pop earliest by key", which a map cannot give.
*/

package main

import "container/heap"

// eventKind enumerates the scheduler's three event kinds (spec §3).
type eventKind int

const (
	eventInterrupt eventKind = iota
	eventCount
	eventVi
)

// schedulerEvent is {kind, when_cycles}; seq breaks ties in insertion
// order per spec §3.
type schedulerEvent struct {
	kind eventKind
	when uint64
	seq  uint64
}

// eventHeap implements container/heap.Interface ordered by (when, seq).
type eventHeap []schedulerEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].when != h[j].when {
		return h[i].when < h[j].when
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(schedulerEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler drives timer and video interrupts against the CPU's absolute
// cycle counter.
type Scheduler struct {
	events  eventHeap
	nextSeq uint64
	cycle   uint64
}

// NewScheduler returns an empty scheduler at cycle 0.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.events)
	return s
}

// Push enqueues an event at currentCycle + deltaCycles.
func (s *Scheduler) Push(kind eventKind, deltaCycles uint64) {
	heap.Push(&s.events, schedulerEvent{kind: kind, when: s.cycle + deltaCycles, seq: s.nextSeq})
	s.nextSeq++
}

// Advance moves the scheduler's clock forward by one cycle and, if an
// event's key has been reached, dispatches it via handleTop.
func (s *Scheduler) Advance(cp0 *CP0, rcp *RCP) {
	s.cycle++
	for len(s.events) > 0 && s.events[0].when <= s.cycle {
		s.handleTop(cp0, rcp)
	}
}

// handleTop dispatches the event at the top of the heap and pops it.
func (s *Scheduler) handleTop(cp0 *CP0, rcp *RCP) {
	top := s.events[0]
	switch top.kind {
	case eventCount:
		if (top.when >> 1) == cp0.regs[cp0Compare].UD() {
			cp0.fireCount()
		}
		// else: Compare changed since this event was queued; stale, ignore.
	case eventVi:
		cause := cp0.regs[cp0Cause].UW0()
		cause |= 1 << 8
		cp0.regs[cp0Cause].SetUW0(cause)
		rcp.miInterrupt |= 1 << 3
		s.Push(eventInterrupt, 1)
		rcp.viVIntr = 0
	case eventInterrupt:
		cp0.checkInterrupts(rcp)
	}
	heap.Pop(&s.events)
}
