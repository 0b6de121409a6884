// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Succeed lifts a plain value into an already-successful [Effect], never
// suspending or touching the interpreter.
func Succeed[A any](a A) Effect[A] {
	return Pure(a)
}

// Map transforms a successful effect's value with a pure function,
// leaving a failure untouched. This is the Effect-level functor map;
// monad.go's MapCont operates on the raw Cont substrate and is kept
// separate since it has no error channel to propagate around.
func Map[A, B any](m Effect[A], f func(A) B) Effect[B] {
	return FlatMap(m, func(a A) Effect[B] { return Succeed(f(a)) })
}

// As replaces a successful effect's value with a constant, discarding
// whatever m produced.
func As[A, B any](m Effect[A], b B) Effect[B] {
	return Map(m, func(A) B { return b })
}

// Unit discards m's success value entirely, keeping only its failure or
// completion.
func Unit[A any](m Effect[A]) Effect[struct{}] {
	return As(m, struct{}{})
}

// Fail suspends an effect that aborts the current fiber with a typed,
// expected error — the base case of the [Cause] algebra's Fail leaf.
func Fail[E, A any](err E) Effect[A] {
	return Perform(failOp[E, A]{err: err})
}

// Sync wraps a plain (possibly panicking) Go function as an effect. A
// panic inside fn becomes a Die leaf in the resulting [Cause] rather than
// propagating through the interpreter's own call stack, the same
// contract kont's own Handle establishes for handler bodies.
func Sync[A any](fn func() A) Effect[A] {
	return Perform(syncOp[A]{fn: fn})
}

// FromEither lifts an already-computed [Either] into an effect, Right
// becoming success and Left becoming a recoverable [Fail].
func FromEither[E, A any](e Either[E, A]) Effect[A] {
	return MatchEither(e, Fail[E, A], Succeed[A])
}

// Async suspends until register calls resolve or reject exactly once,
// possibly from another goroutine entirely (a network callback, a timer,
// a child process exit handler). It is the one place genuine concurrency
// enters the otherwise single-threaded interpreter.
func Async[E, A any](register func(resolve func(A), reject func(E))) Effect[A] {
	return Perform(asyncOp[E, A]{register: register})
}

// Sleep suspends the fiber for at least the given duration in
// milliseconds without blocking the interpreter's driver goroutine.
func Sleep(millis int64) Effect[struct{}] {
	return Perform(sleepOp{millis: millis})
}

// FlatMap sequences m into f, running f's effect with m's result.
func FlatMap[A, B any](m Effect[A], f func(A) Effect[B]) Effect[B] {
	return Bind(m, f)
}

// Flatten collapses a doubly-wrapped effect.
func Flatten[A any](m Effect[Effect[A]]) Effect[A] {
	return FlatMap(m, func(inner Effect[A]) Effect[A] { return inner })
}

// FoldM fully handles m's outcome: onOk drives a success, onErr drives a
// recoverable [Fail]. A Die or an interruption in m's [Cause] bypasses
// onErr entirely and propagates unchanged — see [firstRecoverableFail].
func FoldM[E, A, B any](m Effect[A], onOk func(A) Effect[B], onErr func(E) Effect[B]) Effect[B] {
	return Perform(foldMOp[A, B]{
		child: m,
		onOk:  onOk,
		onErr: func(raw any) Effect[B] { return onErr(raw.(E)) },
	})
}

// Fold is FoldM specialized to pure result functions.
func Fold[E, A, B any](m Effect[A], onOk func(A) B, onErr func(E) B) Effect[B] {
	return FoldM[E, A, B](m,
		func(a A) Effect[B] { return Succeed(onOk(a)) },
		func(e E) Effect[B] { return Succeed(onErr(e)) },
	)
}

// FoldCause hands the full, unbypassed [Cause] to onFailure — including
// Die and interruption — in contrast to [FoldM]'s recoverable-only onErr.
func FoldCause[E, A, B any](m Effect[A], onOk func(A) Effect[B], onFailure func(Cause[E]) Effect[B]) Effect[B] {
	return Perform(foldCauseOp[A, B]{
		child: m,
		onOk:  onOk,
		onFailure: func(n *causeNode) Effect[B] {
			return onFailure(Cause[E]{n: n})
		},
	})
}

// OrElse recovers a recoverable failure by switching to an alternative
// effect; Die and interruption still propagate.
func OrElse[E, A any](m Effect[A], alt func(E) Effect[A]) Effect[A] {
	return FoldM[E, A, A](m, Succeed[A], alt)
}

// MapError transforms a recoverable failure's error value.
func MapError[E, E2, A any](m Effect[A], f func(E) E2) Effect[A] {
	return FoldM[E, A, A](m, Succeed[A], func(e E) Effect[A] { return Fail[E2, A](f(e)) })
}

// FlatMapError effectfully transforms a recoverable failure's error value,
// re-failing with whatever the returned effect produces.
func FlatMapError[E, E2, A any](m Effect[A], f func(E) Effect[E2]) Effect[A] {
	return FoldM[E, A, A](m, Succeed[A], func(e E) Effect[A] {
		return FlatMap(f(e), func(e2 E2) Effect[A] { return Fail[E2, A](e2) })
	})
}

// MapBoth transforms both branches of m's outcome.
func MapBoth[E, E2, A, B any](m Effect[A], onErr func(E) E2, onOk func(A) B) Effect[B] {
	return FoldM[E, A, B](m,
		func(a A) Effect[B] { return Succeed(onOk(a)) },
		func(e E) Effect[B] { return Fail[E2, B](onErr(e)) },
	)
}

// AugmentError rewrites a recoverable failure's error in place, typically
// to attach extra context without changing its type.
func AugmentError[E, A any](m Effect[A], f func(E) E) Effect[A] {
	return MapError[E, E, A](m, f)
}

// Tap runs f after a success, discarding f's result and keeping m's value.
func Tap[A any](m Effect[A], f func(A) Effect[struct{}]) Effect[A] {
	return FlatMap(m, func(a A) Effect[A] {
		return FlatMap(f(a), func(struct{}) Effect[A] { return Succeed(a) })
	})
}

// TapError runs f after a recoverable failure, then re-fails with the
// original error.
func TapError[E, A any](m Effect[A], f func(E) Effect[struct{}]) Effect[A] {
	return FoldM[E, A, A](m, Succeed[A], func(e E) Effect[A] {
		return FlatMap(f(e), func(struct{}) Effect[A] { return Fail[E, A](e) })
	})
}

// TapBoth runs onOk or onErr for observation only, preserving m's outcome.
func TapBoth[E, A any](m Effect[A], onErr func(E) Effect[struct{}], onOk func(A) Effect[struct{}]) Effect[A] {
	return FoldM[E, A, A](m,
		func(a A) Effect[A] { return FlatMap(onOk(a), func(struct{}) Effect[A] { return Succeed(a) }) },
		func(e E) Effect[A] { return FlatMap(onErr(e), func(struct{}) Effect[A] { return Fail[E, A](e) }) },
	)
}

// Flip swaps success and failure: a success a becomes a Fail carrying a,
// and a recoverable failure e becomes the success value.
func Flip[E, A any](m Effect[A]) Effect[E] {
	return FoldM[E, A, E](m,
		func(a A) Effect[E] { return Fail[A, E](a) },
		Succeed[E],
	)
}

// FlipWith runs f against m viewed with success and error swapped, then
// swaps the result back.
func FlipWith[E, A, E2, A2 any](m Effect[A], f func(Effect[E]) Effect[A2]) Effect[E2] {
	return Flip[E2, A2](f(Flip[E, A](m)))
}

// Absolve collapses an effect producing an [Either] into one that fails
// directly when the Either is Left.
func Absolve[E, A any](m Effect[Either[E, A]]) Effect[A] {
	return FlatMap(m, FromEither[E, A])
}

// Pair holds the combined successes of two zipped effects.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip runs ma then mb, combining both successes into a [Pair].
func Zip[A, B any](ma Effect[A], mb Effect[B]) Effect[Pair[A, B]] {
	return FlatMap(ma, func(a A) Effect[Pair[A, B]] {
		return FlatMap(mb, func(b B) Effect[Pair[A, B]] {
			return Succeed(Pair[A, B]{First: a, Second: b})
		})
	})
}

// ZipLeft runs ma then mb, keeping only ma's result.
func ZipLeft[A, B any](ma Effect[A], mb Effect[B]) Effect[A] {
	return FlatMap(ma, func(a A) Effect[A] {
		return FlatMap(mb, func(B) Effect[A] { return Succeed(a) })
	})
}

// ZipRight runs ma then mb, keeping only mb's result.
func ZipRight[A, B any](ma Effect[A], mb Effect[B]) Effect[B] {
	return FlatMap(ma, func(A) Effect[B] { return mb })
}

// ZipWith runs ma then mb, combining both successes with f.
func ZipWith[A, B, C any](ma Effect[A], mb Effect[B], f func(A, B) C) Effect[C] {
	return FlatMap(ma, func(a A) Effect[C] {
		return FlatMap(mb, func(b B) Effect[C] { return Succeed(f(a, b)) })
	})
}

// Retry re-runs m up to attempts additional times after a recoverable
// failure, returning the final attempt's outcome.
func Retry[E, A any](m Effect[A], attempts int) Effect[A] {
	return FoldM[E, A, A](m, Succeed[A], func(e E) Effect[A] {
		if attempts <= 0 {
			return Fail[E, A](e)
		}
		return Retry[E, A](m, attempts-1)
	})
}

// All runs every child concurrently, succeeding with every result in
// order, or aborting with every failure's [Cause] combined, once every
// child has completed.
func All[A any](children ...Effect[A]) Effect[[]A] {
	return Perform(allOp[A]{children: children})
}

// Race runs every child concurrently; whichever child settles first —
// success or failure — wins immediately and every other child is
// interrupted. A losing child's own failure is never observed: Race does
// not wait for the rest to finish and does not combine their causes. This
// is what lets [Timeout] turn a deadline Sleep+Fail into an immediate
// abort rather than one outcome among several merged causes.
func Race[A any](children ...Effect[A]) Effect[A] {
	return Perform(raceOp[A]{children: children})
}

// RaceFirst is Race under the interpreter's cooperative scheduling: losers
// are always interrupted as soon as a winner is known, so there is no
// distinct "don't wait for losers" variant to provide.
func RaceFirst[A any](children ...Effect[A]) Effect[A] {
	return Race(children...)
}

// Delay runs m after waiting at least millis milliseconds.
func Delay[A any](m Effect[A], millis int64) Effect[A] {
	return FlatMap(Sleep(millis), func(struct{}) Effect[A] { return m })
}

// Timeout races m against a deadline; if the deadline wins, m is
// interrupted and the fiber fails with onTimeout's error.
func Timeout[E, A any](m Effect[A], millis int64, onTimeout func() E) Effect[A] {
	return Race[A](m, FlatMap(Sleep(millis), func(struct{}) Effect[A] {
		return Fail[E, A](onTimeout())
	}))
}

// Ensuring runs finalizer after m completes, regardless of outcome.
func Ensuring[A any](m Effect[A], finalizer Effect[struct{}]) Effect[A] {
	return Perform(ensuringOp[A]{child: m, finalizer: finalizer})
}

// Fork starts m as an independent fiber and returns its handle
// immediately without waiting for it to complete.
func Fork[A any](m Effect[A]) Effect[*Fiber[A]] {
	return Perform(forkOp[A]{child: m})
}

// ForkAll forks every child in order, returning all their handles.
func ForkAll[A any](children ...Effect[A]) Effect[[]*Fiber[A]] {
	return forkAllRec(children, nil)
}

func forkAllRec[A any](remaining []Effect[A], acc []*Fiber[A]) Effect[[]*Fiber[A]] {
	if len(remaining) == 0 {
		return Succeed(acc)
	}
	head, rest := remaining[0], remaining[1:]
	return FlatMap(Fork(head), func(f *Fiber[A]) Effect[[]*Fiber[A]] {
		return forkAllRec(rest, append(acc, f))
	})
}

// JoinFiber waits for fiber to complete, propagating its failure into the
// joining fiber.
func JoinFiber[A any](fiber *Fiber[A]) Effect[A] {
	return Perform(joinOp[A]{fiber: fiber})
}

// AwaitFiber waits for fiber to complete, returning its full [FiberExit]
// without propagating a failure into the awaiting fiber.
func AwaitFiber[A any](fiber *Fiber[A]) Effect[FiberExit[A]] {
	return Perform(awaitOp[A]{fiber: fiber})
}

// InterruptFiber requests fiber's interruption and waits for its exit.
func InterruptFiber[A any](fiber *Fiber[A]) Effect[FiberExit[A]] {
	return Perform(interruptFiberOp[A]{fiber: fiber})
}

// FiberStatusOf observes a fiber's current lifecycle state.
func FiberStatusOf[A any](fiber *Fiber[A]) Effect[FiberStatus] {
	return Perform(fiberStatusOp[A]{fiber: fiber})
}

// CheckInterrupt yields to a pending interruption if the fiber is
// currently interruptible, otherwise it is a no-op.
func CheckInterrupt() Effect[struct{}] {
	return Perform(checkInterruptOp{})
}

// SetInterruptible runs m with the fiber's interruptible flag overridden
// to flag for m's duration, restoring the prior value afterward.
func SetInterruptible[A any](flag bool, m Effect[A]) Effect[A] {
	return Perform(setInterruptibleOp[A]{flag: flag, child: m})
}

// ProvideService runs m with service bound under tag for its duration
// only, shadowing any outer binding and restoring it afterward — a
// locally-scoped alternative to binding a service on the whole [Runtime].
func ProvideService[T, A any](tag Tag[T], service T, m Effect[A]) Effect[A] {
	return Perform(provideServiceOp[T, A]{tag: tag, service: service, child: m})
}
