// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// schedulerOp is the non-generic dispatch interface every effect
// operation that needs the interpreter implements. It plays the role
// kont's Handler[H, R] interface plays for a pluggable Handler, except
// the interpreter is a single long-lived instance managing fibers of
// heterogeneous (E, A) concurrently, so dispatch cannot be parameterized
// by a handler's own generic E — instead each concrete op type closes
// over whatever E/A it needs at construction time (exactly the way
// kont's Throw[E]/Catch[E, A] fix E at their own call site, never on
// Cont), and run's signature mentions neither.
//
// run must call resume or abort exactly once, synchronously or later via
// ip.schedule/ip.addTimer/the external-completion channel.
type schedulerOp interface {
	run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode))
}

// --- Sync: run a (possibly panicking) pure Go function ---

type syncOp[A any] struct{ fn func() A }

func (syncOp[A]) OpResult() A { panic("phantom") }

func (o syncOp[A]) run(_ *interpreter, _ *FiberContext, resume func(any), abort func(*causeNode)) {
	defer func() {
		if r := recover(); r != nil {
			abort(&causeNode{tag: tagDie, defect: r})
		}
	}()
	resume(o.fn())
}

// --- Fail: abort with a typed, expected error ---

type failOp[E, A any] struct{ err E }

func (failOp[E, A]) OpResult() A { panic("phantom") }

func (o failOp[E, A]) run(_ *interpreter, _ *FiberContext, _ func(any), abort func(*causeNode)) {
	abort(&causeNode{tag: tagFail, err: o.err})
}

// --- Async: suspend on a callback-based external completion ---

type asyncSettle struct {
	ok          bool
	interrupted bool
	val         any
	err         any
}

type asyncOp[E, A any] struct {
	register func(resolve func(A), reject func(E))
}

func (asyncOp[E, A]) OpResult() A { panic("phantom") }

func (o asyncOp[E, A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	if fc.interrupted && fc.interruptible {
		abort(&causeNode{tag: tagInterrupt, interruptor: fc.interruptedBy})
		return
	}
	fc.state = fiberSuspended
	ip.pending++
	settle := Once[struct{}, asyncSettle](func(s asyncSettle) struct{} {
		ip.scheduleExternal(func() {
			ip.pending--
			fc.state = fiberRunning
			fc.interruptHook = nil
			switch {
			case s.interrupted:
				abort(&causeNode{tag: tagInterrupt, interruptor: fc.interruptedBy})
			case s.ok:
				resume(s.val)
			default:
				abort(&causeNode{tag: tagFail, err: s.err})
			}
		})
		return struct{}{}
	})
	if fc.interruptible {
		fc.interruptHook = func() { settle.TryResume(asyncSettle{interrupted: true}) }
	}
	o.register(
		func(v A) { settle.TryResume(asyncSettle{ok: true, val: v}) },
		func(e E) { settle.TryResume(asyncSettle{err: e}) },
	)
}

// --- Sleep: suspend until a timer deadline elapses ---

type sleepOp struct{ millis int64 }

func (sleepOp) OpResult() struct{} { panic("phantom") }

func (o sleepOp) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	if fc.interrupted && fc.interruptible {
		abort(&causeNode{tag: tagInterrupt, interruptor: fc.interruptedBy})
		return
	}
	fc.state = fiberSuspended
	settle := Once[struct{}, bool](func(interrupted bool) struct{} {
		fc.state = fiberRunning
		fc.interruptHook = nil
		if interrupted {
			abort(&causeNode{tag: tagInterrupt, interruptor: fc.interruptedBy})
		} else {
			resume(struct{}{})
		}
		return struct{}{}
	})
	if fc.interruptible {
		fc.interruptHook = func() { settle.TryResume(true) }
	}
	ip.addTimer(o.millis, func() { settle.TryResume(false) })
}

// --- CheckInterrupt: yield to a pending interruption at an interruptible point ---

type checkInterruptOp struct{}

func (checkInterruptOp) OpResult() struct{} { panic("phantom") }

func (checkInterruptOp) run(_ *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	if fc.interrupted && fc.interruptible {
		abort(&causeNode{tag: tagInterrupt, interruptor: fc.interruptedBy})
		return
	}
	resume(struct{}{})
}

// --- SetInterruptible: run a child with the interruptible flag overridden ---

type setInterruptibleOp[A any] struct {
	flag  bool
	child Effect[A]
}

func (setInterruptibleOp[A]) OpResult() A { panic("phantom") }

func (o setInterruptibleOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	prev := fc.interruptible
	fc.interruptible = o.flag
	runEffect(ip, fc, o.child, func(exit FiberExit[A]) {
		fc.interruptible = prev
		if exit.ok {
			resume(exit.value)
		} else {
			abort(exit.cause)
		}
	})
}

// --- ProvideService: run a child with one extra service bound in scope ---

type provideServiceOp[T, A any] struct {
	tag     Tag[T]
	service T
	child   Effect[A]
}

func (provideServiceOp[T, A]) OpResult() A { panic("phantom") }

func (o provideServiceOp[T, A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	prev := fc.env
	fc.env = With(fc.env, o.tag, o.service)
	runEffect(ip, fc, o.child, func(exit FiberExit[A]) {
		fc.env = prev
		if exit.ok {
			resume(exit.value)
		} else {
			abort(exit.cause)
		}
	})
}

// --- Ensuring: run a finalizer after the child, regardless of outcome ---

type ensuringOp[A any] struct {
	child     Effect[A]
	finalizer Effect[struct{}]
}

func (ensuringOp[A]) OpResult() A { panic("phantom") }

func (o ensuringOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	runEffect(ip, fc, o.child, func(childExit FiberExit[A]) {
		prev := fc.interruptible
		fc.interruptible = false
		runEffect(ip, fc, o.finalizer, func(finExit FiberExit[struct{}]) {
			fc.interruptible = prev
			switch {
			case !childExit.ok && !finExit.ok:
				abort(&causeNode{tag: tagThen, left: childExit.cause, right: finExit.cause})
			case !childExit.ok:
				abort(childExit.cause)
			case !finExit.ok:
				abort(finExit.cause)
			default:
				resume(childExit.value)
			}
		})
	})
}

// --- FoldM: fully handle a child's success or recoverable failure ---

type foldMOp[A, B any] struct {
	child Effect[A]
	onOk  func(A) Effect[B]
	onErr func(any) Effect[B]
}

func (foldMOp[A, B]) OpResult() B { panic("phantom") }

func (o foldMOp[A, B]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	runEffect(ip, fc, o.child, func(childExit FiberExit[A]) {
		var next Effect[B]
		if childExit.ok {
			next = o.onOk(childExit.value)
		} else if errVal, ok := firstRecoverableFail(childExit.cause); ok {
			next = o.onErr(errVal)
		} else {
			abort(childExit.cause)
			return
		}
		runEffect(ip, fc, next, func(result FiberExit[B]) {
			if result.ok {
				resume(result.value)
			} else {
				abort(result.cause)
			}
		})
	})
}

// --- FoldCause: fully handle a child's outcome, bypass-free ---

type foldCauseOp[A, B any] struct {
	child     Effect[A]
	onOk      func(A) Effect[B]
	onFailure func(*causeNode) Effect[B]
}

func (foldCauseOp[A, B]) OpResult() B { panic("phantom") }

func (o foldCauseOp[A, B]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	runEffect(ip, fc, o.child, func(childExit FiberExit[A]) {
		var next Effect[B]
		if childExit.ok {
			next = o.onOk(childExit.value)
		} else {
			next = o.onFailure(childExit.cause)
		}
		runEffect(ip, fc, next, func(result FiberExit[B]) {
			if result.ok {
				resume(result.value)
			} else {
				abort(result.cause)
			}
		})
	})
}

// --- FiberStatusOf: observe a fiber's lifecycle state ---

type fiberStatusOp[A any] struct{ fiber *Fiber[A] }

func (fiberStatusOp[A]) OpResult() FiberStatus { panic("phantom") }

func (o fiberStatusOp[A]) run(_ *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	ctx := o.fiber.ctx
	resume(FiberStatus{
		Done:          ctx.state == fiberDone,
		Interrupted:   ctx.interrupted,
		Interruptible: ctx.interruptible,
	})
}

// --- Fork: start a child fiber and return its handle immediately ---

type forkOp[A any] struct{ child Effect[A] }

func (forkOp[A]) OpResult() *Fiber[A] { panic("phantom") }

func (o forkOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), _ func(*causeNode)) {
	child := ip.newFiberContext(fc.env)
	handle := &Fiber[A]{ctx: child}
	ip.schedule(func() {
		child.state = fiberRunning
		runEffect(ip, child, o.child, func(exit FiberExit[A]) {
			ip.completeFiber(child, exit)
		})
	})
	resume(handle)
}

// --- JoinFiber: await a fiber's success value, propagating its failure ---

type joinOp[A any] struct{ fiber *Fiber[A] }

func (joinOp[A]) OpResult() A { panic("phantom") }

func (o joinOp[A]) run(ip *interpreter, _ *FiberContext, resume func(any), abort func(*causeNode)) {
	ip.observeFiber(o.fiber.ctx, func(raw any) {
		exit := raw.(FiberExit[A])
		if exit.ok {
			resume(exit.value)
		} else {
			abort(exit.cause)
		}
	})
}

// --- AwaitFiber: observe a fiber's full exit without propagating failure ---

type awaitOp[A any] struct{ fiber *Fiber[A] }

func (awaitOp[A]) OpResult() FiberExit[A] { panic("phantom") }

func (o awaitOp[A]) run(ip *interpreter, _ *FiberContext, resume func(any), _ func(*causeNode)) {
	ip.observeFiber(o.fiber.ctx, func(raw any) {
		resume(raw.(FiberExit[A]))
	})
}

// --- InterruptFiber: request interruption, then await the exit ---

type interruptFiberOp[A any] struct{ fiber *Fiber[A] }

func (interruptFiberOp[A]) OpResult() FiberExit[A] { panic("phantom") }

func (o interruptFiberOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), _ func(*causeNode)) {
	ip.interruptFiber(o.fiber.ctx, fc.id)
	ip.observeFiber(o.fiber.ctx, func(raw any) {
		resume(raw.(FiberExit[A]))
	})
}

// --- All: fork every child, succeed with all results or abort combined ---

type allOp[A any] struct{ children []Effect[A] }

func (allOp[A]) OpResult() []A { panic("phantom") }

func (o allOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	n := len(o.children)
	if n == 0 {
		resume([]A{})
		return
	}
	results := make([]A, n)
	kids := make([]*FiberContext, n)
	remaining := n
	var combined *causeNode
	failedAny := false

	for idx := range o.children {
		idx := idx
		child := ip.newFiberContext(fc.env)
		kids[idx] = child
		ip.schedule(func() {
			child.state = fiberRunning
			runEffect(ip, child, o.children[idx], func(exit FiberExit[A]) {
				ip.completeFiber(child, exit)
				if exit.ok {
					results[idx] = exit.value
				} else {
					if !failedAny {
						failedAny = true
						for j, kid := range kids {
							if j != idx && kid != nil {
								ip.interruptFiber(kid, fc.id)
							}
						}
					}
					combined = combineCauses(combined, exit.cause)
				}
				remaining--
				if remaining == 0 {
					if failedAny {
						abort(combined)
					} else {
						resume(results)
					}
				}
			})
		})
	}
}

// --- Race: the first child to complete, success or failure, wins; the
// rest are interrupted ---

type raceOp[A any] struct{ children []Effect[A] }

func (raceOp[A]) OpResult() A { panic("phantom") }

func (o raceOp[A]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	n := len(o.children)
	if n == 0 {
		panic("flux: Race requires at least one effect")
	}
	kids := make([]*FiberContext, n)
	settled := false

	for idx := range o.children {
		idx := idx
		child := ip.newFiberContext(fc.env)
		kids[idx] = child
		ip.schedule(func() {
			child.state = fiberRunning
			runEffect(ip, child, o.children[idx], func(exit FiberExit[A]) {
				ip.completeFiber(child, exit)
				if settled {
					return
				}
				settled = true
				for j, kid := range kids {
					if j != idx && kid != nil {
						ip.interruptFiber(kid, fc.id)
					}
				}
				if exit.ok {
					resume(exit.value)
				} else {
					abort(exit.cause)
				}
			})
		})
	}
}

func combineCauses(acc, next *causeNode) *causeNode {
	if acc == nil {
		return next
	}
	if next == nil {
		return acc
	}
	return &causeNode{tag: tagBoth, left: acc, right: next}
}
