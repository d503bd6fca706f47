package fallback

import (
	"cmp"

	"github.com/open-rec/untie_go/untie"
)

// Wrap returns an aspect that switches algorithms on a predicate: when
// pred(x) holds, the call returns base(x) directly, bypassing the wrapped
// function and all recursion below it for that call. Otherwise the call is
// delegated unchanged.
//
// base must be total and self-contained: it receives no recursive hook.
// It exists to terminate or approximate recursion once the input crosses a
// threshold.
func Wrap[In, Out any](pred func(In) bool, base func(In) Out) untie.Aspect[In, Out] {
	return func(u untie.Func[In, Out]) untie.Func[In, Out] {
		return func(recur untie.Recur[In, Out], in In) (Out, error) {
			if pred(in) {
				return base(in), nil
			}
			return u(recur, in)
		}
	}
}

// AtOrBelow fixes the predicate to "input at or below bound".
func AtOrBelow[In cmp.Ordered, Out any](bound In, base func(In) Out) untie.Aspect[In, Out] {
	return Wrap(func(in In) bool { return in <= bound }, base)
}

// Observed is Wrap with a diagnostic report: each time the fallback path is
// taken, sink observes the input before base runs. The returned value is
// unaffected.
func Observed[In, Out any](pred func(In) bool, base func(In) Out, sink func(In)) untie.Aspect[In, Out] {
	return Wrap(pred, func(in In) Out {
		sink(in)
		return base(in)
	})
}
