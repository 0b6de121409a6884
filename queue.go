// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// readyQueue is a FIFO queue of runnable thunks, the single-threaded
// cooperative scheduler's ready list. Every fork and every timer/async
// wakeup enqueues here instead of spawning a goroutine (resuming a fiber
// after a synchronous operation runs inline, not through this queue); the interpreter's
// run loop (see interpreter.go) drains it to completion before yielding
// back to its caller.
type readyQueue struct {
	items []func()
}

func (q *readyQueue) push(task func()) {
	q.items = append(q.items, task)
}

func (q *readyQueue) pop() (func(), bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	task := q.items[0]
	q.items = q.items[1:]
	return task, true
}

func (q *readyQueue) empty() bool {
	return len(q.items) == 0
}
