// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Trace accumulates a sequence of structured events of type W alongside an
// effect's own result, independent of the [Cause] algebra — a lightweight
// diagnostic/observability channel for recording what a pipeline did
// without turning every step's return value into a tuple. It supplements
// the base algebra as the direct structural descendant of kont's Writer[W]
// effect (Tell/Listen/Censor), reattached to one explicit instance instead
// of a single implicit output channel threaded by the runner.
type Trace[W any] struct {
	log *[]W
}

// NewTrace constructs an empty [Trace], to be created inside a [Sync]
// effect so its allocation participates in the effect's laziness.
func NewTrace[W any]() Trace[W] {
	var log []W
	return Trace[W]{log: &log}
}

// traceTellOp appends an event to a specific Trace's log.
type traceTellOp[W any] struct {
	trace Trace[W]
	event W
}

func (traceTellOp[W]) OpResult() struct{} { panic("phantom") }

func (o traceTellOp[W]) run(_ *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	*o.trace.log = append(*o.trace.log, o.event)
	resume(struct{}{})
}

// Tell appends event to the trace.
func (t Trace[W]) Tell(event W) Effect[struct{}] {
	return Perform(traceTellOp[W]{trace: t, event: event})
}

// Events returns a copy of every event recorded so far.
func (t Trace[W]) Events() []W {
	out := make([]W, len(*t.log))
	copy(out, *t.log)
	return out
}
