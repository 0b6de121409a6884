// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "container/heap"

// timerEntry is one pending [Sleep] wakeup, ordered by deadline.
type timerEntry struct {
	deadline int64
	seq      uint64
	fire     func()
}

// timerQueue is a deadline-ordered min-heap of pending wakeups, the single-
// threaded scheduler's analogue of a priority runqueue: container/heap
// over a slice, same shape as a fiber-priority queue but ordered by
// deadline ascending rather than priority descending, and carrying a
// fire thunk instead of a fiber pointer since a FiberContext here is just
// the closure a sleepOp captured.
type timerQueue struct {
	entries []*timerEntry
	seq     uint64
}

func (tq *timerQueue) Len() int { return len(tq.entries) }

func (tq *timerQueue) Less(i, j int) bool {
	if tq.entries[i].deadline != tq.entries[j].deadline {
		return tq.entries[i].deadline < tq.entries[j].deadline
	}
	return tq.entries[i].seq < tq.entries[j].seq
}

func (tq *timerQueue) Swap(i, j int) {
	tq.entries[i], tq.entries[j] = tq.entries[j], tq.entries[i]
}

func (tq *timerQueue) Push(x any) {
	tq.entries = append(tq.entries, x.(*timerEntry))
}

func (tq *timerQueue) Pop() any {
	n := len(tq.entries)
	e := tq.entries[n-1]
	tq.entries = tq.entries[:n-1]
	return e
}

// schedule inserts fire to run once the interpreter's elapsed wall-clock
// time, in milliseconds since it started, reaches deadline.
func (tq *timerQueue) schedule(deadline int64, fire func()) {
	tq.seq++
	heap.Push(tq, &timerEntry{deadline: deadline, seq: tq.seq, fire: fire})
}

// peekDeadline returns the earliest pending deadline, if any.
func (tq *timerQueue) peekDeadline() (int64, bool) {
	if tq.Len() == 0 {
		return 0, false
	}
	return tq.entries[0].deadline, true
}

// popDue removes and returns every entry whose deadline has elapsed.
func (tq *timerQueue) popDue(now int64) []func() {
	var due []func()
	for tq.Len() > 0 && tq.entries[0].deadline <= now {
		e := heap.Pop(tq).(*timerEntry)
		due = append(due, e.fire)
	}
	return due
}
