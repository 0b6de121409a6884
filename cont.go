// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Cont represents a continuation-passing computation.
// Cont[R, A] computes a value of type A, with final result type R.
//
// The function receives a continuation k of type func(A) R, which represents
// "the rest of the computation". Applying k to a value of type A produces
// the final result of type R.
type Cont[R, A any] func(k func(A) R) R

// Return lifts a pure value into the continuation monad.
// The resulting computation immediately passes the value to its continuation.
func Return[R, A any](a A) Cont[R, A] {
	return func(k func(A) R) R {
		return k(a)
	}
}

// Resumed is the type flowing through effect suspension and resumption.
// Effectful computations use Cont[Resumed, A] as their continuation type.
type Resumed any

// Effect is the lazy description of an effectful computation producing a
// value of type A, possibly failing, asynchronously suspending, or forking
// other fibers along the way. Its error type is never part of the type
// itself — only the constructors and combinators that produce or inspect a
// failure (Fail, MapError, FoldM, ...) fix the error type E, exactly as
// kont's Throw[E]/Catch[E, A] only fix E at their own call site.
type Effect[A any] = Cont[Resumed, A]

// Pure lifts a value into an effect that performs no operations.
func Pure[A any](a A) Effect[A] {
	return Return[Resumed](a)
}

// Suspend creates a continuation from a CPS function.
// This is the primitive constructor for continuations that need direct
// access to the continuation.
func Suspend[R, A any](f func(func(A) R) R) Cont[R, A] {
	return Cont[R, A](f)
}
