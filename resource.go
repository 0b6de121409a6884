// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Resource safety primitives for exception-safe resource management,
// built on [Ensuring] and [FoldM] rather than a dedicated Operation of
// their own — acquire/use/release is just a shape those two already
// express.

// Bracket acquires a resource, runs use with it, and always runs release
// afterward regardless of use's outcome, returning an [Either] of use's
// error or its result. release itself is not expected to fail; a release
// that can fail should report through its own [Ensuring]/log call rather
// than through Bracket's result.
func Bracket[E, R, A any](
	acquire Effect[R],
	release func(R) Effect[struct{}],
	use func(R) Effect[A],
) Effect[Either[E, A]] {
	return FlatMap(acquire, func(resource R) Effect[Either[E, A]] {
		return Ensuring(
			Fold[E, A, Either[E, A]](use(resource), Right[E, A], Left[E, A]),
			release(resource),
		)
	})
}

// OnError runs cleanup only when body fails with a recoverable error,
// then re-fails with the original error so the failure still propagates
// to body's caller.
func OnError[E, A any](body Effect[A], cleanup func(E) Effect[struct{}]) Effect[A] {
	return TapError[E, A](body, cleanup)
}
