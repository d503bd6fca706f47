package untie

// Aspect transforms one untied function into another of the same shape,
// injecting a cross-cutting behavior. Because an aspect wraps before tying
// and still forwards to the recur it is given, the injected behavior applies
// to every recursive call once tied, not just the outermost one.
type Aspect[In, Out any] func(Func[In, Out]) Func[In, Out]

// Pipe applies aspects to u left to right. Each aspect wraps the result of
// the previous ones, so the last aspect listed is outermost: it observes a
// call first and is skipped last. Order is observable: a memoizer applied
// after a logger suppresses the logger on cache hits, while the reverse
// order logs every call that reaches the tied function.
func Pipe[In, Out any](u Func[In, Out], aspects ...Aspect[In, Out]) Func[In, Out] {
	for _, aspect := range aspects {
		u = aspect(u)
	}
	return u
}

// TiePipe is shorthand for Tie(Pipe(u, aspects...)).
func TiePipe[In, Out any](u Func[In, Out], aspects ...Aspect[In, Out]) Recur[In, Out] {
	return Tie(Pipe(u, aspects...))
}
