// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"fmt"
	"sync/atomic"
)

// FiberId uniquely and stably names a fiber for the lifetime of a
// [Runtime]. Sequence is monotonically increasing within one runtime;
// StartedAtMillis is the wall-clock time (milliseconds since the Unix
// epoch, as observed by the runtime's clock) the fiber was created, kept
// for diagnostics and [PrettyPrint].
type FiberId struct {
	Sequence        uint64
	StartedAtMillis int64
}

// String renders the "Fiber#<n>" form [PrettyPrint]'s cause grammar and
// fiber diagnostics use, n being Sequence.
func (id FiberId) String() string {
	return fmt.Sprintf("Fiber#%d", id.Sequence)
}

// fiberIDAllocator hands out monotonically increasing [FiberId] values. One
// allocator is shared by every interpreter in the process, and runs started
// from different goroutines allocate from it at the same time, so the
// counter is atomic even though everything downstream of allocation is
// confined to one run's driver goroutine.
type fiberIDAllocator struct {
	next atomic.Uint64
	now  func() int64
}

func newFiberIDAllocator(now func() int64) *fiberIDAllocator {
	return &fiberIDAllocator{now: now}
}

func (a *fiberIDAllocator) allocate() FiberId {
	seq := a.next.Add(1)
	return FiberId{Sequence: seq, StartedAtMillis: a.now()}
}
