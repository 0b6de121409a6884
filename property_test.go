// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"math/rand/v2"
	"testing"

	"code.hybscloud.com/flux"
)

const propertyN = 1000

// randInt returns a random int in [-1000, 1000].
func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

// randString returns a random ASCII string of length [0, 8].
func randString(rng *rand.Rand) string {
	n := rng.IntN(9)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.IntN(95) + 32) // printable ASCII
	}
	return string(b)
}

// --- Group 1: Cont Monad Laws ---

// TestPropertyContLeftIdentity: Bind(Return(a), f) ≡ f(a)
func TestPropertyContLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		f := func(x int) flux.Cont[int, int] { return flux.Return[int](x * 3) }
		left := flux.Run(flux.Bind(flux.Return[int](a), f))
		right := flux.Run(f(a))
		if left != right {
			t.Fatalf("left identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyContRightIdentity: Bind(m, Return) ≡ m
func TestPropertyContRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Return[int](a)
		left := flux.Run(flux.Bind(m, func(x int) flux.Cont[int, int] {
			return flux.Return[int](x)
		}))
		right := flux.Run(m)
		if left != right {
			t.Fatalf("right identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyContAssociativity: Bind(Bind(m, f), g) ≡ Bind(m, func(x) Bind(f(x), g))
func TestPropertyContAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Return[int](a)
		f := func(x int) flux.Cont[int, int] { return flux.Return[int](x + 3) }
		g := func(x int) flux.Cont[int, int] { return flux.Return[int](x * 2) }
		left := flux.Run(flux.Bind(flux.Bind(m, f), g))
		right := flux.Run(flux.Bind(m, func(x int) flux.Cont[int, int] {
			return flux.Bind(f(x), g)
		}))
		if left != right {
			t.Fatalf("associativity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// --- Group 2: Cont Functor Laws ---

// TestPropertyContFunctorIdentity: Map(m, id) ≡ m
func TestPropertyContFunctorIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Return[int](a)
		left := flux.Run(flux.MapCont(m, func(x int) int { return x }))
		right := flux.Run(m)
		if left != right {
			t.Fatalf("cont functor identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyContFunctorComposition: Map(m, f∘g) ≡ Map(Map(m, g), f)
func TestPropertyContFunctorComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	f := func(x int) int { return x * 2 }
	g := func(x int) int { return x + 3 }
	fg := func(x int) int { return f(g(x)) }
	for range propertyN {
		a := randInt(rng)
		m := flux.Return[int](a)
		left := flux.Run(flux.MapCont(m, fg))
		right := flux.Run(flux.MapCont(flux.MapCont(m, g), f))
		if left != right {
			t.Fatalf("cont functor composition: %d != %d (a=%d)", left, right, a)
		}
	}
}

// --- Group 3: Effect Monad Laws (Succeed/FlatMap, driven through the fiber interpreter) ---

// TestPropertyEffectLeftIdentity: FlatMap(Succeed(a), f) ≡ f(a)
func TestPropertyEffectLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range propertyN {
		a := randInt(rng)
		f := func(x int) flux.Effect[int] { return flux.Succeed(x * 3) }
		left := flux.UnsafeRun(flux.DefaultRuntime, flux.FlatMap(flux.Succeed(a), f))
		right := flux.UnsafeRun(flux.DefaultRuntime, f(a))
		if left != right {
			t.Fatalf("effect left identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyEffectRightIdentity: FlatMap(m, Succeed) ≡ m
func TestPropertyEffectRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Succeed(a)
		left := flux.UnsafeRun(flux.DefaultRuntime, flux.FlatMap(m, func(x int) flux.Effect[int] {
			return flux.Succeed(x)
		}))
		right := flux.UnsafeRun(flux.DefaultRuntime, m)
		if left != right {
			t.Fatalf("effect right identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyEffectAssociativity: FlatMap(FlatMap(m, f), g) ≡ FlatMap(m, func(x) FlatMap(f(x), g))
func TestPropertyEffectAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Succeed(a)
		f := func(x int) flux.Effect[int] { return flux.Succeed(x + 3) }
		g := func(x int) flux.Effect[int] { return flux.Succeed(x * 2) }
		left := flux.UnsafeRun(flux.DefaultRuntime, flux.FlatMap(flux.FlatMap(m, f), g))
		right := flux.UnsafeRun(flux.DefaultRuntime, flux.FlatMap(m, func(x int) flux.Effect[int] {
			return flux.FlatMap(f(x), g)
		}))
		if left != right {
			t.Fatalf("effect associativity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// --- Group 4: Either Monad Laws ---

// TestPropertyEitherLeftIdentity: FlatMapEither(Right(a), f) ≡ f(a)
func TestPropertyEitherLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		f := func(x int) flux.Either[string, int] { return flux.Right[string](x * 3) }
		left := flux.FlatMapEither(flux.Right[string](a), f)
		right := f(a)
		lv, _ := left.GetRight()
		rv, _ := right.GetRight()
		if lv != rv {
			t.Fatalf("either left identity: %d != %d (a=%d)", lv, rv, a)
		}
	}
}

// TestPropertyEitherRightIdentity: FlatMapEither(m, Right) ≡ m
func TestPropertyEitherRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Right[string](a)
		left := flux.FlatMapEither(m, func(x int) flux.Either[string, int] {
			return flux.Right[string](x)
		})
		lv, _ := left.GetRight()
		rv, _ := m.GetRight()
		if lv != rv {
			t.Fatalf("either right identity: %d != %d (a=%d)", lv, rv, a)
		}
	}
}

// TestPropertyEitherAssociativity: FlatMapEither(FlatMapEither(m, f), g) ≡ FlatMapEither(m, func(x) FlatMapEither(f(x), g))
func TestPropertyEitherAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := flux.Right[string](a)
		f := func(x int) flux.Either[string, int] { return flux.Right[string](x + 3) }
		g := func(x int) flux.Either[string, int] { return flux.Right[string](x * 2) }
		left := flux.FlatMapEither(flux.FlatMapEither(m, f), g)
		right := flux.FlatMapEither(m, func(x int) flux.Either[string, int] {
			return flux.FlatMapEither(f(x), g)
		})
		lv, _ := left.GetRight()
		rv, _ := right.GetRight()
		if lv != rv {
			t.Fatalf("either associativity: %d != %d (a=%d)", lv, rv, a)
		}
	}
}

// TestPropertyEitherLeftPropagation: FlatMapEither(Left(e), f) ≡ Left(e)
func TestPropertyEitherLeftPropagation(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		e := randString(rng)
		m := flux.Left[string, int](e)
		result := flux.FlatMapEither(m, func(x int) flux.Either[string, int] {
			return flux.Right[string](x * 2)
		})
		if result.IsRight() {
			t.Fatalf("left should propagate (e=%q)", e)
		}
		got, _ := result.GetLeft()
		if got != e {
			t.Fatalf("left propagation: %q != %q", got, e)
		}
	}
}

// --- Group 5: Either Functor Laws ---

// TestPropertyEitherFunctorIdentity: MapEither(e, id) ≡ e
func TestPropertyEitherFunctorIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		e := flux.Right[string](a)
		result := flux.MapEither(e, func(x int) int { return x })
		lv, _ := result.GetRight()
		rv, _ := e.GetRight()
		if lv != rv {
			t.Fatalf("either functor identity: %d != %d (a=%d)", lv, rv, a)
		}
	}
}

// TestPropertyEitherFunctorComposition: MapEither(e, f∘g) ≡ MapEither(MapEither(e, g), f)
func TestPropertyEitherFunctorComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	f := func(x int) int { return x * 2 }
	g := func(x int) int { return x + 3 }
	fg := func(x int) int { return f(g(x)) }
	for range propertyN {
		a := randInt(rng)
		e := flux.Right[string](a)
		left := flux.MapEither(e, fg)
		right := flux.MapEither(flux.MapEither(e, g), f)
		lv, _ := left.GetRight()
		rv, _ := right.GetRight()
		if lv != rv {
			t.Fatalf("either functor composition: %d != %d (a=%d)", lv, rv, a)
		}
	}
}
