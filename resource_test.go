// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flux"
)

func TestBracketReleasesOnSuccess(t *testing.T) {
	released := false
	acquire := flux.Succeed(42)
	release := func(int) flux.Effect[struct{}] {
		return flux.Sync(func() struct{} { released = true; return struct{}{} })
	}
	use := func(r int) flux.Effect[int] { return flux.Succeed(r + 1) }

	result := flux.UnsafeRun(flux.DefaultRuntime, flux.Bracket[string](acquire, release, use))
	require.True(t, released)
	require.True(t, result.IsRight())
	v, _ := result.GetRight()
	require.Equal(t, 43, v)
}

func TestBracketReleasesOnFailure(t *testing.T) {
	released := false
	acquire := flux.Succeed(42)
	release := func(int) flux.Effect[struct{}] {
		return flux.Sync(func() struct{} { released = true; return struct{}{} })
	}
	use := func(int) flux.Effect[int] { return flux.Fail[string, int]("use failed") }

	result := flux.UnsafeRun(flux.DefaultRuntime, flux.Bracket[string](acquire, release, use))
	require.True(t, released)
	require.True(t, result.IsLeft())
	e, _ := result.GetLeft()
	require.Equal(t, "use failed", e)
}

func TestOnErrorRunsCleanupThenRefails(t *testing.T) {
	cleaned := false
	body := flux.Fail[string, int]("original")
	cleanup := func(e string) flux.Effect[struct{}] {
		return flux.Sync(func() struct{} { cleaned = e == "original"; return struct{}{} })
	}

	either := flux.SafeRunEither[string](flux.DefaultRuntime, flux.OnError(body, cleanup))
	require.True(t, cleaned)
	require.True(t, either.IsLeft())
}

func TestOnErrorSkipsCleanupOnSuccess(t *testing.T) {
	cleaned := false
	body := flux.Succeed(1)
	cleanup := func(string) flux.Effect[struct{}] {
		return flux.Sync(func() struct{} { cleaned = true; return struct{}{} })
	}

	got := flux.UnsafeRun(flux.DefaultRuntime, flux.OnError(body, cleanup))
	require.Equal(t, 1, got)
	require.False(t, cleaned)
}
