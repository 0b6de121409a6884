// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flux"
)

func TestForkedFibersGetDistinctIDs(t *testing.T) {
	m := flux.FlatMap(flux.Fork(flux.Succeed(1)), func(a *flux.Fiber[int]) flux.Effect[flux.Pair[flux.FiberId, flux.FiberId]] {
		return flux.FlatMap(flux.Fork(flux.Succeed(2)), func(b *flux.Fiber[int]) flux.Effect[flux.Pair[flux.FiberId, flux.FiberId]] {
			return flux.FlatMap(flux.JoinFiber(a), func(int) flux.Effect[flux.Pair[flux.FiberId, flux.FiberId]] {
				return flux.FlatMap(flux.JoinFiber(b), func(int) flux.Effect[flux.Pair[flux.FiberId, flux.FiberId]] {
					return flux.Succeed(flux.Pair[flux.FiberId, flux.FiberId]{First: a.ID(), Second: b.ID()})
				})
			})
		})
	})

	ids := flux.UnsafeRun(flux.DefaultRuntime, m)
	require.NotEqual(t, ids.First, ids.Second)
}

func TestFiberIDString(t *testing.T) {
	id := flux.FiberId{Sequence: 5, StartedAtMillis: 1000}
	require.Equal(t, "Fiber#5", id.String())
}
