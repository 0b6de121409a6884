// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "time"

// interpreter is the single-threaded cooperative scheduler driving every
// fiber started from one [UnsafeRun]/[SafeRunEither]/[SafeRunExit]/
// [SafeRunUnion] call. Exactly one goroutine ever touches ready, timers, or
// any FiberContext's fields. [Sleep] deadlines are kept in timers and fired
// by runLoop on that same goroutine; genuinely asynchronous completions (an
// [Async] resolve/reject called from a callback on another goroutine) only
// ever reach back in through external, mirroring recera-vango's
// Scheduler.globalWake: a buffered channel, sent to without blocking while
// it has room and with a blocking send once it is full, so a completion is
// never dropped.
type interpreter struct {
	ready     readyQueue
	timers    timerQueue
	external  chan func()
	ids       *fiberIDAllocator
	pending   int // fibers currently suspended on a future external (Async) wakeup
	startedAt time.Time
}

// fiberIDs is shared by every interpreter, so FiberId sequences keep
// increasing across runs within the process.
var fiberIDs = newFiberIDAllocator(func() int64 { return time.Now().UnixMilli() })

func newInterpreter() *interpreter {
	return &interpreter{
		external:  make(chan func(), 1024),
		ids:       fiberIDs,
		startedAt: time.Now(),
	}
}

func (ip *interpreter) newFiberContext(env Environment) *FiberContext {
	return &FiberContext{
		id:            ip.ids.allocate(),
		env:           env,
		interruptible: true,
	}
}

// schedule enqueues task to run on the driver goroutine's ready queue.
func (ip *interpreter) schedule(task func()) {
	ip.ready.push(task)
}

// scheduleExternal enqueues task from outside the driver goroutine. Safe to
// call concurrently; the driver loop drains external into ready.
func (ip *interpreter) scheduleExternal(task func()) {
	select {
	case ip.external <- task:
	default:
		// Channel saturated under extreme fan-in; block rather than drop a
		// completion, since dropping would leave a fiber suspended forever.
		ip.external <- task
	}
}

// addTimer schedules fire to run once millis have elapsed.
func (ip *interpreter) addTimer(millis int64, fire func()) {
	deadline := time.Since(ip.startedAt).Milliseconds() + millis
	ip.timers.schedule(deadline, fire)
}

// completeFiber records a fiber's terminal exit and wakes its observers.
func (ip *interpreter) completeFiber(fc *FiberContext, exit any) {
	fc.state = fiberDone
	fc.exit = exit
	observers := fc.observers
	fc.observers = nil
	for _, notify := range observers {
		notify(exit)
	}
}

// observeFiber calls notify with target's exit once it completes, or
// immediately if it already has.
func (ip *interpreter) observeFiber(target *FiberContext, notify func(any)) {
	if target.state == fiberDone {
		notify(target.exit)
		return
	}
	target.observers = append(target.observers, notify)
}

// interruptFiber marks target for interruption on behalf of the fiber
// identified by by. If target is currently suspended at an interruptible
// point with a registered interruptHook (see [FiberContext]), the hook
// fires immediately, aborting that suspension rather than waiting for it
// to resolve on its own. A fiber that is actively running (not suspended)
// only observes the request the next time it reaches [CheckInterrupt] or
// suspends in [Sleep] or [Async]; [JoinFiber] and [AwaitFiber] do not
// check it.
func (ip *interpreter) interruptFiber(target *FiberContext, by FiberId) {
	if target.state == fiberDone || target.interrupted {
		return
	}
	target.interrupted = true
	target.interruptedBy = by
	if target.interruptible && target.interruptHook != nil {
		hook := target.interruptHook
		target.interruptHook = nil
		hook()
	}
}

// runEffect drives m to completion on fc, invoking finish exactly once with
// the resulting [FiberExit]. It is the single re-entrant driving primitive:
// top-level fiber execution (see Fork/All/Race in ops.go) and every
// structured combinator that needs its own nested result (Ensuring, FoldM,
// SetInterruptible) all call back into it rather than duplicating the
// Step/dispatch loop.
func runEffect[A any](ip *interpreter, fc *FiberContext, m Effect[A], finish func(FiberExit[A])) {
	value, susp := Step[A](m)
	if susp == nil {
		finish(succeeded(value))
		return
	}
	dispatch(ip, fc, susp, finish)
}

// dispatch resolves one suspended operation against the interpreter,
// looping back into runEffect's resume/abort continuations until the
// fiber either finishes or suspends again on something the scheduler must
// wait for (a timer, an external async completion, or another fiber).
func dispatch[R any](ip *interpreter, fc *FiberContext, susp *Suspension[R], finish func(FiberExit[R])) {
	op, ok := susp.Op().(schedulerOp)
	if !ok {
		unhandledEffect("dispatch")
	}

	resume := func(v any) {
		value, next := susp.Resume(v)
		if next == nil {
			finish(succeeded(value))
			return
		}
		dispatch(ip, fc, next, finish)
	}
	abort := func(cause *causeNode) {
		susp.Discard()
		finish(failed[R](cause))
	}

	op.run(ip, fc, resume, abort)
}

// runLoop drains the ready queue to quiescence, blocking on pending timers
// or external completions as needed, and returns once there is truly
// nothing left to run.
func (ip *interpreter) runLoop() {
	for {
		for {
			task, ok := ip.ready.pop()
			if !ok {
				break
			}
			task()
		}
		if !ip.ready.empty() {
			continue
		}

		if deadline, has := ip.timers.peekDeadline(); has {
			wait := time.Duration(deadline-time.Since(ip.startedAt).Milliseconds()) * time.Millisecond
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case task := <-ip.external:
				timer.Stop()
				ip.ready.push(task)
			case <-timer.C:
				now := time.Since(ip.startedAt).Milliseconds()
				for _, fire := range ip.timers.popDue(now) {
					ip.ready.push(fire)
				}
			}
			continue
		}

		if ip.pending > 0 {
			task := <-ip.external
			ip.ready.push(task)
			continue
		}
		return
	}
}
