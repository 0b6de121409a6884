// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// fiberState tracks where a fiber sits in the scheduler's lifecycle.
type fiberState uint8

const (
	fiberRunning fiberState = iota
	fiberSuspended
	fiberDone
)

// FiberContext is the interpreter's private bookkeeping for one fiber: its
// identity, its service [Environment], and its interruption/completion
// state. Every schedulerOp.run receives the FiberContext of the fiber it is
// running on, the same role kont's ErrorContext/WriterContext pair plays
// per composed Handler, unified here into one struct shared by every
// effect kind rather than one per concern.
//
// A FiberContext is only ever touched from the interpreter's single driver
// goroutine; [Async]'s external-completion path always re-enters through
// ip.scheduleExternal before touching fields here, so no mutex guards them.
type FiberContext struct {
	id    FiberId
	env   Environment
	state fiberState

	interruptible bool
	interrupted   bool
	interruptedBy FiberId

	// interruptHook, when non-nil, is how a currently-suspended fiber reacts
	// to interruption immediately instead of waiting for its own wakeup:
	// sleepOp and asyncOp install it for the duration of their suspension
	// and race it against their own timer/callback completion via Affine,
	// so whichever happens first wins and the other becomes a no-op.
	interruptHook func()

	observers []func(any)
	exit      any // holds FiberExit[A] once state == fiberDone
}

// Fiber is a handle to a forked, independently-running computation of
// result type A. It carries no Environment or error type of its own — both
// are erased the moment the fiber starts, exactly as [Cause] erases E,
// which is what lets [JoinFiber], [AwaitFiber], and [InterruptFiber] work
// uniformly across fibers started with unrelated error types.
type Fiber[A any] struct {
	ctx *FiberContext
}

// ID returns the fiber's identity, assigned at fork time.
func (f *Fiber[A]) ID() FiberId {
	return f.ctx.id
}
