// Package sched provides deterministic single-threaded timers driven by
// virtual time. The platform feeds elapsed wall time into Advance; due timers
// fire in deadline order on the caller's goroutine, so game state never needs
// locking.
package sched

import "time"

// ID names a timer slot. Arming a slot that is already armed supersedes it.
type ID string

// maxFiresPerAdvance bounds a single Advance call so a timer that keeps
// re-arming itself with zero delay cannot spin forever.
const maxFiresPerAdvance = 4096

type timer struct {
	deadline time.Duration
	seq      uint64 // arm order, breaks deadline ties
}

// Scheduler holds named one-shot timers on a virtual clock.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers map[ID]timer
}

// New creates a scheduler with its clock at zero and no timers armed.
func New() *Scheduler {
	return &Scheduler{timers: make(map[ID]timer)}
}

// Now returns the virtual time elapsed since creation or the last Reset.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Arm schedules id to fire after delay, replacing any pending deadline.
// Negative delays are treated as zero.
func (s *Scheduler) Arm(id ID, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.timers[id] = timer{deadline: s.now + delay, seq: s.seq}
}

// Cancel disarms id. Cancelling an idle timer is a no-op.
func (s *Scheduler) Cancel(id ID) {
	delete(s.timers, id)
}

// CancelAll disarms every timer without moving the clock.
func (s *Scheduler) CancelAll() {
	clear(s.timers)
}

// Reset disarms every timer and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.now = 0
	s.seq = 0
}

// Armed reports whether id is waiting to fire.
func (s *Scheduler) Armed(id ID) bool {
	_, ok := s.timers[id]
	return ok
}

// Remaining returns how long until id fires.
func (s *Scheduler) Remaining(id ID) (time.Duration, bool) {
	t, ok := s.timers[id]
	if !ok {
		return 0, false
	}
	return t.deadline - s.now, true
}

// Advance moves the clock forward by dt, firing every timer whose deadline
// falls inside the window. Each timer is disarmed before fire is called, and
// the clock reads the timer's deadline while it fires, so a handler that
// re-arms produces an exact cadence. Returns the number of timers fired.
func (s *Scheduler) Advance(dt time.Duration, fire func(ID)) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for fired < maxFiresPerAdvance {
		id, t, ok := s.next(target)
		if !ok {
			break
		}
		delete(s.timers, id)
		s.now = t.deadline
		fired++
		if fire != nil {
			fire(id)
		}
	}

	s.now = target
	return fired
}

// next finds the earliest timer due at or before target.
func (s *Scheduler) next(target time.Duration) (ID, timer, bool) {
	var (
		bestID ID
		best   timer
		found  bool
	)
	for id, t := range s.timers {
		if t.deadline > target {
			continue
		}
		if !found || t.deadline < best.deadline || (t.deadline == best.deadline && t.seq < best.seq) {
			bestID, best, found = id, t, true
		}
	}
	return bestID, best, found
}
