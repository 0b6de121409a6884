// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flux provides a typed functional effect runtime: a lazy
// effect algebra parameterized by an error type and a success type,
// interpreted by a fiber-based, cooperative, single-threaded scheduler
// with structured concurrency, interruption, and a Cause algebra that
// preserves both sequential and parallel failure history.
//
// # Core Encoding
//
// The core type [Effect] is a continuation-passing computation built
// directly on [Cont]: Effect[A] = Cont[Resumed, A]. An effect's error
// type never appears on the type itself — exactly as kont's own
// Throw[E]/Catch[E, A] only fix E at the constructor or combinator
// call site — it is recovered generically from the suspended
// [Operation] value each combinator performs.
//
// # F-Bounded Architecture
//
// The package keeps kont's F-bounded foundations:
//
//   - [Op]: type Op[O Op[O, A], A any] — operations know their concrete type
//   - [Perform]: trigger an operation, suspending the enclosing [Effect]
//
// # Stepping Boundary
//
// [Step] drives a [Cont] computation until it completes or suspends on
// an [Operation] — the exact boundary kont's own documentation
// describes as built "for external runtimes that drive computation
// asynchronously (e.g. event loops)". The scheduler in interpreter.go
// is that external runtime.
//
//   - [Step]: Drive a [Cont] computation until it completes or suspends
//   - [Suspension]: Pending operation with a one-shot resumption handle
//   - [Suspension.Op] / [Suspension.Resume] / [Suspension.TryResume] / [Suspension.Discard]
//
// # Delimited Control
//
//   - [Shift] / [Reset]: Danvy & Filinski delimited control, retained as
//     general CPS substrate underlying [Effect]'s encoding.
//
// # Effect Algebra
//
// [Succeed], [Fail], [Sync], [Async], [FlatMap], [FoldM], [Race],
// [All], [Ensuring], [Sleep], [Fork], [JoinFiber], [AwaitFiber],
// [InterruptFiber], [SetInterruptible], and [CheckInterrupt] are the
// effect description primitives; every other surface combinator
// (Map, MapError, OrElse, Retry, Zip, Timeout, Tap, ...) desugars to
// them. See description.go.
//
// # Cause Algebra
//
// [Cause] is an inductive failure tree (Empty, Fail, Die, Interrupt,
// Then, Both) preserving both sequential and parallel failure history.
// See cause.go.
//
// # Runtime
//
// [Runtime] binds a read-only [Environment] of tagged services to the
// interpreter and exposes the observation entry points [UnsafeRun],
// [SafeRunEither], [SafeRunExit], and [SafeRunUnion]. See runtime.go.
package flux
