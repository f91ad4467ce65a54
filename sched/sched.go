// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sched provides a single-threaded cooperative scheduler for
multi-tick operations. A [Routine] is a sequence of steps separated
by yields: all steps up to a yield run within one tick, and the rest
resume on a later [Scheduler.Tick]. Routines can await other routines,
which run inline until they complete.

Everything runs on the caller's goroutine: no locking is done, and the
scheduler must only be used from the simulation tick thread.
*/
package sched

import "log/slog"

type opKind int

const (
	opCall opKind = iota
	opYield
	opAwait
)

type op struct {
	kind  opKind
	call  func()
	await func() *Routine
}

// Routine is a sequence of steps separated by yields.
// Build it with [Routine.Then], [Routine.Yield], [Routine.Wait] and
// [Routine.Await], then start it with [Scheduler.Start].
type Routine struct {

	// Name is used in log messages.
	Name string

	ops []op

	// pc is the index of the next op to run.
	pc int

	// child is the routine being awaited at ops[pc].
	child *Routine

	done bool
}

// New returns a new empty [Routine] with the given name.
func New(name string) *Routine {
	return &Routine{Name: name}
}

// Then adds a step that runs in the same tick as the previous step.
func (r *Routine) Then(fun func()) *Routine {
	r.ops = append(r.ops, op{kind: opCall, call: fun})
	return r
}

// Yield suspends the routine until the next tick.
func (r *Routine) Yield() *Routine {
	r.ops = append(r.ops, op{kind: opYield})
	return r
}

// Wait suspends the routine for n ticks.
func (r *Routine) Wait(n int) *Routine {
	for range n {
		r.Yield()
	}
	return r
}

// Await runs the routine returned by fun when this point is reached,
// and resumes only after it completes. fun may return nil, in which
// case nothing is awaited.
func (r *Routine) Await(fun func() *Routine) *Routine {
	r.ops = append(r.ops, op{kind: opAwait, await: fun})
	return r
}

// Done returns whether the routine has run all of its steps.
func (r *Routine) Done() bool {
	return r.done
}

// step runs the routine up to its next yield, returning true
// when it has completed.
func (r *Routine) step() bool {
	for r.pc < len(r.ops) {
		o := r.ops[r.pc]
		switch o.kind {
		case opCall:
			r.pc++
			o.call()
		case opYield:
			r.pc++
			return false
		case opAwait:
			if r.child == nil {
				r.child = o.await()
				if r.child == nil {
					r.pc++
					continue
				}
			}
			if !r.child.step() {
				return false
			}
			r.child = nil
			r.pc++
		}
	}
	r.done = true
	return true
}

// Finish runs all remaining steps immediately, ignoring yields.
// It is mainly useful for tests and for teardown.
func (r *Routine) Finish() {
	for !r.done {
		r.step()
	}
}

// Scheduler runs routines one segment per tick, in start order.
type Scheduler struct {
	routines []*Routine

	// ticks is the number of ticks run so far.
	ticks int
}

// Start runs the routine up to its first yield, and schedules the
// rest for subsequent ticks. Starting a nil routine is a no-op.
func (s *Scheduler) Start(r *Routine) {
	if r == nil || r.done {
		return
	}
	if r.step() {
		return
	}
	s.routines = append(s.routines, r)
}

// Tick advances every live routine by one segment.
// Routines started during the tick run their first segment
// immediately and are advanced again from the next tick.
func (s *Scheduler) Tick() {
	s.ticks++
	live := s.routines
	s.routines = nil
	var keep []*Routine
	for _, r := range live {
		if !r.step() {
			keep = append(keep, r)
		} else {
			slog.Debug("sched: routine done", "name", r.Name, "tick", s.ticks)
		}
	}
	s.routines = append(keep, s.routines...)
}

// Ticks returns the number of ticks run so far.
func (s *Scheduler) Ticks() int {
	return s.ticks
}

// Len returns the number of routines still running.
func (s *Scheduler) Len() int {
	return len(s.routines)
}

// Idle returns true when no routines are running.
func (s *Scheduler) Idle() bool {
	return len(s.routines) == 0
}

// RunUntilIdle ticks until all routines complete or max ticks have run,
// returning the number of ticks run.
func (s *Scheduler) RunUntilIdle(max int) int {
	n := 0
	for !s.Idle() && n < max {
		s.Tick()
		n++
	}
	return n
}
