// Package untie provides open recursion for Go: recursive computations are
// written as non-recursive "untied" functions that receive their own
// recursive call as a parameter, then tied into real recursive functions by
// an explicit fixed point.
//
// # Why untie recursion?
//
// When the recursive call is a value rather than a name baked into the
// function body, cross-cutting behavior can be injected around it before
// tying — and the injection applies to every level of recursion:
//   - logging every logical call (aspects/logging)
//   - memoizing results, computing each input at most once (aspects/memo)
//   - switching to a terminal base function past a bound (aspects/fallback)
//   - correlating each call with the input that caused it (aspects/trace)
//
// # How does it work?
//
// Tie builds the fixed point lazily: the tied function is a closure that
// invokes the untied function with itself as the recursive hook. Aspects are
// plain Func -> Func wrappers composed with Pipe before tying; composition
// order is an explicit, ordered, observable part of the pipeline.
//
// Example:
//
//	fib := func(recur untie.Recur[int, int], n int) (int, error) {
//	    if n < 2 {
//	        return n, nil
//	    }
//	    a, err := recur(n - 1)
//	    if err != nil {
//	        return 0, err
//	    }
//	    b, err := recur(n - 2)
//	    if err != nil {
//	        return 0, err
//	    }
//	    return a + b, nil
//	}
//
//	f := untie.TiePipe(fib, memo.Wrap[int, int]())
//	v, _ := f(40) // each sub-input computed once
//
// The core is single-threaded and synchronous: aspects run strictly between
// receiving a call and delegating it, with no suspension points. State owned
// by an aspect (a cache, a recorder) is created once, at pipeline
// construction, and is private to that pipeline.
package untie
