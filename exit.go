// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// FiberExit is the outcome of a completed fiber: either a success value of
// type A, or a failure [Cause] — erased to its internal *causeNode so a
// single interpreter instance can store and combine exits from fibers of
// heterogeneous error types (Fork/Join/All/Race never need to know a
// sibling fiber's concrete E, only whether it failed and how to combine
// the failure). The typed view is recovered at consumption time via
// [ExitCause].
type FiberExit[A any] struct {
	ok    bool
	value A
	cause *causeNode
}

// exitView is a non-generic view of an exit that does not fix a concrete
// error or result type. Every instantiation of FiberExit[A] satisfies it
// identically, since none of these methods mention A or any error type in
// their signature. The ops in ops.go (All, Race, Ensuring) read a typed
// FiberExit[A]'s fields directly and do not go through this interface.
type exitView interface {
	succeeded() bool
	rawValue() any
	rawCause() *causeNode
}

func (fe FiberExit[A]) succeeded() bool      { return fe.ok }
func (fe FiberExit[A]) rawValue() any        { return fe.value }
func (fe FiberExit[A]) rawCause() *causeNode { return fe.cause }

// succeeded builds a successful exit.
func succeeded[A any](a A) FiberExit[A] { return FiberExit[A]{ok: true, value: a} }

// failed builds a failed exit from an erased cause node.
func failed[A any](n *causeNode) FiberExit[A] { return FiberExit[A]{cause: n} }

// IsSuccess reports whether the fiber completed successfully.
func (fe FiberExit[A]) IsSuccess() bool { return fe.ok }

// Value returns the success value and true, or the zero value and false.
func (fe FiberExit[A]) Value() (A, bool) {
	return fe.value, fe.ok
}

// ExitCause returns the typed [Cause] view of a failed exit, or
// ([EmptyCause], false) if the fiber succeeded.
func ExitCause[E, A any](fe FiberExit[A]) (Cause[E], bool) {
	if fe.ok {
		return EmptyCause[E](), false
	}
	return Cause[E]{n: fe.cause}, true
}

// FiberStatus is a point-in-time observation of a fiber's lifecycle state,
// returned by [FiberStatusOf].
type FiberStatus struct {
	Done          bool
	Interrupted   bool
	Interruptible bool
}
