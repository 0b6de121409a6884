// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flux"
)

func TestRefsAreIndependentCells(t *testing.T) {
	a := flux.NewRef(1)
	b := flux.NewRef(100)

	m := flux.FlatMap(a.Put(2), func(struct{}) flux.Effect[flux.Pair[int, int]] {
		return flux.FlatMap(a.Get(), func(av int) flux.Effect[flux.Pair[int, int]] {
			return flux.FlatMap(b.Get(), func(bv int) flux.Effect[flux.Pair[int, int]] {
				return flux.Succeed(flux.Pair[int, int]{First: av, Second: bv})
			})
		})
	})

	got := flux.UnsafeRun(flux.DefaultRuntime, m)
	require.Equal(t, 2, got.First)
	require.Equal(t, 100, got.Second)
}

func TestRefModifyReturnsUpdatedValue(t *testing.T) {
	counter := flux.NewRef(0)
	increment := counter.Modify(func(n int) int { return n + 1 })

	m := flux.FlatMap(increment, func(int) flux.Effect[int] {
		return flux.FlatMap(increment, func(int) flux.Effect[int] {
			return increment
		})
	})

	require.Equal(t, 3, flux.UnsafeRun(flux.DefaultRuntime, m))
}
