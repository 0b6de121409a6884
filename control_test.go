// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"testing"

	"code.hybscloud.com/flux"
)

// Shift/Reset tests

func TestShiftIgnoreContinuation(t *testing.T) {
	// Shift that discards the continuation entirely
	m := flux.Shift[int, int](func(k func(int) int) int {
		// Never call k, just return directly
		return 100
	})
	got := flux.Run(m)
	if got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}

func TestShiftMultipleApplications(t *testing.T) {
	// Apply continuation three times
	m := flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			return k(1) + k(2) + k(3)
		}),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x * 10)
		},
	)
	got := flux.Run(m)
	// k(1) = 10, k(2) = 20, k(3) = 30 => 60
	if got != 60 {
		t.Fatalf("got %d, want 60", got)
	}
}

func TestResetNestedShift(t *testing.T) {
	// Nested shift operations with reset
	inner := flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			return k(5) * 2
		}),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x + 1)
		},
	)
	outer := flux.Bind(
		flux.Reset[int](inner),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x + 100)
		},
	)
	got := flux.Run(outer)
	// inner: k(5) = 5+1 = 6, 6*2 = 12
	// outer: 12 + 100 = 112
	if got != 112 {
		t.Fatalf("got %d, want 112", got)
	}
}

func TestResetIsolatesShift(t *testing.T) {
	// Reset should isolate inner shift from outer continuation
	m := flux.Bind(
		flux.Reset[int](flux.Bind(
			flux.Shift[int, int](func(k func(int) int) int {
				return 42 // Discards inner continuation
			}),
			func(x int) flux.Cont[int, int] {
				return flux.Return[int](x * 1000) // Should not run
			},
		)),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x + 1) // Should run with 42
		},
	)
	got := flux.Run(m)
	if got != 43 {
		t.Fatalf("got %d, want 43", got)
	}
}

func TestResetChained(t *testing.T) {
	// Multiple resets in sequence
	m1 := flux.Reset[int](flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			return k(10)
		}),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x + 1)
		},
	))
	m2 := flux.Reset[int](flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			return k(20)
		}),
		func(x int) flux.Cont[int, int] {
			return flux.Return[int](x + 2)
		},
	))
	combined := flux.Bind(m1, func(a int) flux.Cont[int, int] {
		return flux.Bind(m2, func(b int) flux.Cont[int, int] {
			return flux.Return[int](a + b)
		})
	})
	got := flux.Run(combined)
	// m1: 10+1 = 11, m2: 20+2 = 22, combined: 11+22 = 33
	if got != 33 {
		t.Fatalf("got %d, want 33", got)
	}
}

func TestShiftWithMapChain(t *testing.T) {
	// Shift followed by Map operations
	m := flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			return k(7)
		}),
		func(x int) flux.Cont[int, int] {
			return flux.MapCont(flux.Return[int](x), func(y int) int {
				return y * 3
			})
		},
	)
	got := flux.Run(m)
	if got != 21 {
		t.Fatalf("got %d, want 21", got)
	}
}

func TestResetWithIdentity(t *testing.T) {
	// Reset around Return should be identity
	m := flux.Reset[int](flux.Return[int](42))
	got := flux.Run(m)
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestShiftZeroApplications(t *testing.T) {
	// Shift that never uses the continuation at all
	sideEffect := 0
	m := flux.Bind(
		flux.Shift[int, int](func(k func(int) int) int {
			// Continuation is available but never used
			_ = k
			return 999
		}),
		func(x int) flux.Cont[int, int] {
			sideEffect = x // Should not execute
			return flux.Return[int](x * 2)
		},
	)
	got := flux.Run(m)
	if got != 999 {
		t.Fatalf("got %d, want 999", got)
	}
	if sideEffect != 0 {
		t.Fatal("continuation body executed when it should not have")
	}
}

func TestShiftStringType(t *testing.T) {
	// Shift with string type
	m := flux.Bind(
		flux.Shift[string, string](func(k func(string) string) string {
			return k("hello") + " " + k("world")
		}),
		func(s string) flux.Cont[string, string] {
			return flux.Return[string]("[" + s + "]")
		},
	)
	got := flux.Run(m)
	if got != "[hello] [world]" {
		t.Fatalf("got %q, want %q", got, "[hello] [world]")
	}
}
