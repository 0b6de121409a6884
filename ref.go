// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Ref is a mutable cell of type S that effects can read and write through
// [Ref.Get], [Ref.Put], and [Ref.Modify], threading state safely through an
// otherwise purely descriptive [Effect] pipeline without smuggling a
// shared variable through closures. This supplements the base algebra with
// the Ref primitive every ZIO/Cats-Effect-style runtime pairs with its
// effect monad; it is the direct structural descendant of kont's own
// State[S] effect (Get/Put/Modify), reattached here to one specific cell
// instead of a single global state threaded by the runner.
//
// A Ref's cell is only ever touched from the interpreter's single driver
// goroutine (the same invariant that lets [FiberContext] skip locking), so
// no synchronization guards the pointer itself.
type Ref[S any] struct {
	cell *S
}

// NewRef constructs a [Ref] seeded with the given initial value, to be
// created inside a [Sync] effect so its allocation participates in the
// effect's laziness.
func NewRef[S any](initial S) Ref[S] {
	v := initial
	return Ref[S]{cell: &v}
}

// refGetOp reads the current value of a specific Ref's cell.
type refGetOp[S any] struct{ ref Ref[S] }

func (refGetOp[S]) OpResult() S { panic("phantom") }

func (o refGetOp[S]) run(_ *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	resume(*o.ref.cell)
}

// refPutOp replaces the current value of a specific Ref's cell.
type refPutOp[S any] struct {
	ref   Ref[S]
	value S
}

func (refPutOp[S]) OpResult() struct{} { panic("phantom") }

func (o refPutOp[S]) run(_ *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	*o.ref.cell = o.value
	resume(struct{}{})
}

// refModifyOp applies f to a specific Ref's cell and stores the result.
type refModifyOp[S any] struct {
	ref Ref[S]
	f   func(S) S
}

func (refModifyOp[S]) OpResult() S { panic("phantom") }

func (o refModifyOp[S]) run(_ *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	*o.ref.cell = o.f(*o.ref.cell)
	resume(*o.ref.cell)
}

// Get reads the current value of the cell.
func (r Ref[S]) Get() Effect[S] {
	return Perform(refGetOp[S]{ref: r})
}

// Put replaces the current value of the cell, returning the unit effect.
func (r Ref[S]) Put(value S) Effect[struct{}] {
	return Perform(refPutOp[S]{ref: r, value: value})
}

// Modify applies f to the cell in place and returns the new value.
func (r Ref[S]) Modify(f func(S) S) Effect[S] {
	return Perform(refModifyOp[S]{ref: r, f: f})
}
