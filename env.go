// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import "fmt"

// Tag names a service of type T in an [Environment]. Tags are compared by
// their id, not by T, so two Tag[T] values constructed with the same id
// address the same service slot even across package boundaries — the same
// role kont's Ask[E] plays for an entire environment, narrowed here to one
// named slot so a fiber can depend on several independent services at once.
type Tag[T any] struct {
	id string
}

// NewTag creates a service tag identified by id. Construct tags once, as
// package-level variables, and share them between providers and consumers.
func NewTag[T any](id string) Tag[T] {
	return Tag[T]{id: id}
}

// Environment is an immutable, copy-on-write registry of tagged services.
// The zero Environment is valid and empty. [Environment.With] never
// mutates its receiver, so a parent fiber's Environment may be shared
// freely with forked children.
type Environment struct {
	services map[string]any
}

// With returns a new Environment containing every service of env plus the
// given service bound under tag, shadowing any existing binding for the
// same tag.
func With[T any](env Environment, tag Tag[T], service T) Environment {
	next := make(map[string]any, len(env.services)+1)
	for k, v := range env.services {
		next[k] = v
	}
	next[tag.id] = service
	return Environment{services: next}
}

// lookup returns the raw service bound under id, if any.
func (env Environment) lookup(id string) (any, bool) {
	if env.services == nil {
		return nil, false
	}
	v, ok := env.services[id]
	return v, ok
}

// getServiceOp requests the service bound under Tag from the fiber's
// Environment. Dispatched directly by the interpreter (see ops.go);
// this is the structural descendant of reader.go's Ask[E]: Ask requested
// "the" environment of type E, getServiceOp requests one named slot out of
// an Environment that may carry many.
type getServiceOp[T any] struct {
	tag Tag[T]
}

func (getServiceOp[T]) OpResult() T { panic("phantom") }

func (o getServiceOp[T]) run(ip *interpreter, fc *FiberContext, resume func(any), abort func(*causeNode)) {
	raw, ok := fc.env.lookup(o.tag.id)
	if !ok {
		abort(&causeNode{tag: tagDie, defect: fmt.Errorf("flux: no service bound for tag %q", o.tag.id)})
		return
	}
	resume(raw.(T))
}

// GetService requests the service bound under tag in the current fiber's
// [Environment]. The fiber dies (see [Cause.IsDie]) if no provider ever
// bound tag — a programmer error, not a recoverable [Fail].
func GetService[T any](tag Tag[T]) Effect[T] {
	return Perform(getServiceOp[T]{tag: tag})
}
