package untie

import (
	"errors"
	"fmt"
)

// Recur is the recursive-call hook handed to an untied function.
// Calling it recurses through the tied function, so every aspect in the
// pipeline sees the call, not just the top-level one.
type Recur[In, Out any] func(in In) (Out, error)

// Func is an untied computation: ordinary base-case/recursive-case logic
// that receives its own recursive call as an explicit parameter instead of
// referring to itself by name. A Func is not runnable on its own; it is a
// template that becomes recursive only once tied.
//
// Any state an aspect needs (a cache, a sink) is captured by closure when
// the aspect constructs its Func, never held globally.
type Func[In, Out any] func(recur Recur[In, Out], in In) (Out, error)

// Tie closes an untied function over itself, producing a genuine recursive
// function. The result f satisfies f(x) == u(f, x): whenever u recurses, it
// recurses through the same tied f, so behaviors composed onto u before
// tying are active at every recursion depth.
//
// Tie imposes no depth limit and adds no behavior of its own; errors from u
// propagate unchanged. Termination is the responsibility of u's base case;
// see TieWithLimit for a guarded variant.
func Tie[In, Out any](u Func[In, Out]) Recur[In, Out] {
	var self Recur[In, Out]
	self = func(in In) (Out, error) {
		return u(self, in)
	}
	return self
}

// ErrRecursionLimit reports that a tied function exceeded its configured
// maximum call depth. It signals a likely missing base case or unbounded
// input, not a data error; match it with errors.Is.
var ErrRecursionLimit = errors.New("recursion limit exceeded")

// TieWithLimit ties u like Tie but fails fast with ErrRecursionLimit once
// the nesting depth reaches limit, converting unbounded recursion into a
// reported error instead of uncontrolled stack growth. A non-positive limit
// is clamped to 1.
//
// The depth counter is owned by the returned function and assumes the
// strictly nested, single-goroutine call discipline of the core model.
func TieWithLimit[In, Out any](limit int, u Func[In, Out]) Recur[In, Out] {
	if limit <= 0 {
		limit = 1
	}
	depth := 0
	var self Recur[In, Out]
	self = func(in In) (Out, error) {
		if depth >= limit {
			var zero Out
			return zero, fmt.Errorf("%w: depth %d", ErrRecursionLimit, limit)
		}
		depth++
		defer func() { depth-- }()
		return u(self, in)
	}
	return self
}
