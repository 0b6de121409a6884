// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Runtime carries the root [Environment] services are bound into before
// running an [Effect]. The zero Runtime has an empty Environment, so
// DefaultRuntime is just its exported spelling; programs that need no
// services never have to construct one explicitly.
type Runtime struct {
	env Environment
}

// DefaultRuntime is a Runtime with no services bound.
var DefaultRuntime = Runtime{}

// WithServices returns a Runtime with service bound under tag in addition
// to everything rt already provides.
func WithServices[T any](rt Runtime, tag Tag[T], service T) Runtime {
	return Runtime{env: With(rt.env, tag, service)}
}

// runToExit drives m to completion on a fresh interpreter and fiber,
// returning its terminal [FiberExit]. Every Run* entry point below is a
// thin, differently-shaped view over this one driving call.
func runToExit[A any](rt Runtime, m Effect[A]) FiberExit[A] {
	ip := newInterpreter()
	fc := ip.newFiberContext(rt.env)
	fc.state = fiberRunning
	var result FiberExit[A]
	ip.schedule(func() {
		runEffect(ip, fc, m, func(exit FiberExit[A]) {
			ip.completeFiber(fc, exit)
			result = exit
		})
	})
	ip.runLoop()
	return result
}

// UnsafeRun drives m to completion and returns its success value,
// panicking with [Squash] of the failure [Cause] if it did not succeed.
// Use this at a program's outermost boundary, where an unrecovered
// failure is already a programming error.
func UnsafeRun[A any](rt Runtime, m Effect[A]) A {
	exit := runToExit(rt, m)
	if exit.ok {
		return exit.value
	}
	panic(Squash[any](Cause[any]{n: exit.cause}))
}

// SafeRunEither drives m to completion, collapsing a recoverable failure
// into a Left. A Die or an interruption is not recoverable by
// construction and still panics with [Squash] rather than being silently
// coerced into a fabricated E.
func SafeRunEither[E, A any](rt Runtime, m Effect[A]) Either[E, A] {
	exit := runToExit(rt, m)
	if exit.ok {
		return Right[E](exit.value)
	}
	if raw, ok := firstRecoverableFail(exit.cause); ok {
		return Left[E, A](raw.(E))
	}
	panic(Squash[E](Cause[E]{n: exit.cause}))
}

// SafeRunExit drives m to completion and returns its full [FiberExit]
// without ever panicking, leaving every failure classification (Fail,
// Die, interruption) to the caller via [ExitCause].
func SafeRunExit[A any](rt Runtime, m Effect[A]) FiberExit[A] {
	return runToExit(rt, m)
}

// SafeRunUnion drives m to completion, returning its success value and an
// empty [Cause] on success, or the zero value and the full failure Cause
// otherwise — never panicking on a Die or an interruption the way
// [SafeRunEither] does, and handing them back inside the Cause.
func SafeRunUnion[E, A any](rt Runtime, m Effect[A]) (A, Cause[E]) {
	exit := runToExit(rt, m)
	if exit.ok {
		return exit.value, EmptyCause[E]()
	}
	var zero A
	return zero, Cause[E]{n: exit.cause}
}
