// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"fmt"
	"strings"
)

// causeTag classifies a causeNode leaf or combinator.
type causeTag uint8

const (
	tagEmpty causeTag = iota
	tagFail
	tagDie
	tagInterrupt
	tagThen
	tagBoth
)

// causeNode is the type-erased internal representation of a [Cause] tree.
// The error payload is carried as `any` so a single interpreter instance
// can combine fibers of heterogeneous E concurrently (Fork, All, Race);
// [Cause][E] is the zero-cost typed view reconstructed at typed boundaries,
// mirroring the Operation/Resumed erasure already used by [Perform] and
// genericMarker: erase at the core, recover the type at the edges.
type causeNode struct {
	tag         causeTag
	err         any
	defect      any
	interruptor FiberId
	left, right *causeNode
}

// Cause is an inductive tree recording why a fiber failed. Unlike a single
// error value, Cause preserves both sequential history (a primary failure
// followed by a finalizer's own failure, via [SequentialCause]) and parallel
// history (concurrent sibling failures, via [ParallelCause]), matching the
// spec's requirement that no failure information is ever silently dropped
// when effects run concurrently.
type Cause[E any] struct {
	n *causeNode
}

// EmptyCause is the absence of failure.
func EmptyCause[E any]() Cause[E] { return Cause[E]{} }

// FailCause wraps a typed, expected error.
func FailCause[E any](err E) Cause[E] {
	return Cause[E]{n: &causeNode{tag: tagFail, err: err}}
}

// DieCause wraps an unrecovered panic value (a defect).
func DieCause[E any](defect any) Cause[E] {
	return Cause[E]{n: &causeNode{tag: tagDie, defect: defect}}
}

// InterruptCause records that the fiber named by interruptor requested
// interruption.
func InterruptCause[E any](interruptor FiberId) Cause[E] {
	return Cause[E]{n: &causeNode{tag: tagInterrupt, interruptor: interruptor}}
}

// SequentialCause composes two causes where right happened after left
// completed (e.g. a primary failure, then a finalizer's own failure).
// Either side being empty is absorbed (identity element).
func SequentialCause[E any](left, right Cause[E]) Cause[E] {
	if left.n == nil {
		return right
	}
	if right.n == nil {
		return left
	}
	return Cause[E]{n: &causeNode{tag: tagThen, left: left.n, right: right.n}}
}

// ParallelCause composes two causes that occurred concurrently (e.g.
// sibling fibers in [All] or [Race] both failing).
// Either side being empty is absorbed (identity element).
func ParallelCause[E any](left, right Cause[E]) Cause[E] {
	if left.n == nil {
		return right
	}
	if right.n == nil {
		return left
	}
	return Cause[E]{n: &causeNode{tag: tagBoth, left: left.n, right: right.n}}
}

// IsEmpty reports whether the cause carries no failure at all.
func (c Cause[E]) IsEmpty() bool { return c.n == nil }

// IsFailure reports whether the cause contains at least one [FailCause] leaf.
func (c Cause[E]) IsFailure() bool {
	found := false
	c.walk(func(n *causeNode) bool {
		if n.tag == tagFail {
			found = true
			return false
		}
		return true
	})
	return found
}

// IsDie reports whether the cause contains at least one [DieCause] leaf.
func (c Cause[E]) IsDie() bool {
	found := false
	c.walk(func(n *causeNode) bool {
		if n.tag == tagDie {
			found = true
			return false
		}
		return true
	})
	return found
}

// IsInterrupted reports whether the cause contains at least one
// [InterruptCause] leaf.
func (c Cause[E]) IsInterrupted() bool {
	found := false
	c.walk(func(n *causeNode) bool {
		if n.tag == tagInterrupt {
			found = true
			return false
		}
		return true
	})
	return found
}

// walk performs an iterative (stack-based, non-recursive) pre-order
// traversal of the leaves of c, invoking visit for each leaf. Traversal
// stops early if visit returns false.
func (c Cause[E]) walk(visit func(*causeNode) bool) {
	if c.n == nil {
		return
	}
	stack := []*causeNode{c.n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n.tag {
		case tagThen, tagBoth:
			stack = append(stack, n.right, n.left)
		default:
			if !visit(n) {
				return
			}
		}
	}
}

// Failures returns every expected (Fail) error carried by the cause, in
// traversal order.
func (c Cause[E]) Failures() []E {
	var out []E
	c.walk(func(n *causeNode) bool {
		if n.tag == tagFail {
			out = append(out, n.err.(E))
		}
		return true
	})
	return out
}

// Defects returns every unrecovered panic value (Die) carried by the cause.
func (c Cause[E]) Defects() []any {
	var out []any
	c.walk(func(n *causeNode) bool {
		if n.tag == tagDie {
			out = append(out, n.defect)
		}
		return true
	})
	return out
}

// Interruptors returns the fibers whose interruption produced this cause.
func (c Cause[E]) Interruptors() []FiberId {
	var out []FiberId
	c.walk(func(n *causeNode) bool {
		if n.tag == tagInterrupt {
			out = append(out, n.interruptor)
		}
		return true
	})
	return out
}

// firstRecoverableFail reports whether c is a "pure" recoverable failure:
// it contains at least one Fail leaf and zero Die/Interrupt leaves. This is
// the precision rule [FoldM] and [OrElse] use to decide whether a fault
// bypasses the recovery handler: defects and interruption always bypass,
// regardless of how deeply they are nested alongside Fail leaves.
func firstRecoverableFail(n *causeNode) (any, bool) {
	if n == nil {
		return nil, false
	}
	var err any
	hasFail := false
	bypassed := false
	stack := []*causeNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.tag {
		case tagThen, tagBoth:
			stack = append(stack, cur.right, cur.left)
		case tagFail:
			if !hasFail {
				err = cur.err
			}
			hasFail = true
		case tagDie, tagInterrupt:
			bypassed = true
		}
	}
	if bypassed || !hasFail {
		return nil, false
	}
	return err, true
}

// MapCause transforms every Fail leaf's error value with f, leaving the
// tree shape and every Die/Interrupt leaf untouched.
func MapCause[E, E2 any](c Cause[E], f func(E) E2) Cause[E2] {
	return Cause[E2]{n: mapNode(c.n, f)}
}

func mapNode[E, E2 any](n *causeNode, f func(E) E2) *causeNode {
	if n == nil {
		return nil
	}
	switch n.tag {
	case tagFail:
		return &causeNode{tag: tagFail, err: f(n.err.(E))}
	case tagThen:
		return &causeNode{tag: tagThen, left: mapNode[E](n.left, f), right: mapNode[E](n.right, f)}
	case tagBoth:
		return &causeNode{tag: tagBoth, left: mapNode[E](n.left, f), right: mapNode[E](n.right, f)}
	default:
		return n
	}
}

// Recast reinterprets a cause under a different error type. It is only
// valid to call when c contains no [FailCause] leaf (Die/Interrupt carry no
// E payload); it does not check this. Nothing inside the package calls it:
// the scheduler passes erased cause nodes around directly (see ops.go).
// Since the internal causeNode never actually
// stores an E (the err field is `any`), this reinterpretation is free: no
// tree is walked or rebuilt.
func Recast[E, E2 any](c Cause[E]) Cause[E2] {
	return Cause[E2]{n: c.n}
}

// Squash collapses a cause down to a single representative error: the
// first Fail's error if one exists, otherwise the first Die's defect value,
// otherwise an error naming the first interruptor, otherwise nil.
func Squash[E any](c Cause[E]) any {
	if fails := c.Failures(); len(fails) > 0 {
		return fails[0]
	}
	if defects := c.Defects(); len(defects) > 0 {
		return defects[0]
	}
	if ints := c.Interruptors(); len(ints) > 0 {
		return fmt.Errorf("flux: interrupted by fiber %v", ints[0])
	}
	return nil
}

// PrettyPrint renders c as a bracketed prefix string matching the grammar
// `Empty | Fail(<str>) | Die(<str>) | Interrupt(Fiber#<n>) | Then(<c>, <c>)
// | Both(<c>, <c>)`, suitable for diagnostics and test failure messages.
func PrettyPrint[E any](c Cause[E]) string {
	if c.n == nil {
		return "Empty"
	}
	var b strings.Builder
	prettyNode(&b, c.n)
	return b.String()
}

func prettyNode(b *strings.Builder, n *causeNode) {
	switch n.tag {
	case tagFail:
		fmt.Fprintf(b, "Fail(%v)", n.err)
	case tagDie:
		fmt.Fprintf(b, "Die(%v)", n.defect)
	case tagInterrupt:
		fmt.Fprintf(b, "Interrupt(%v)", n.interruptor)
	case tagThen:
		b.WriteString("Then(")
		prettyNode(b, n.left)
		b.WriteString(", ")
		prettyNode(b, n.right)
		b.WriteString(")")
	case tagBoth:
		b.WriteString("Both(")
		prettyNode(b, n.left)
		b.WriteString(", ")
		prettyNode(b, n.right)
		b.WriteString(")")
	}
}
