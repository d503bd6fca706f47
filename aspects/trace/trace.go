package trace

import (
	"github.com/google/uuid"

	"github.com/open-rec/untie_go/untie"
)

// Pair threads the input of the call that caused this one alongside the
// current input. An untied function written over Pair must advance the pair
// with Advance on every recursive call it makes, so the predecessor a deeper
// call sees is always the input of its direct caller.
type Pair[In any] struct {
	Prev In
	Cur  In
}

// Advance builds the pair for a deeper recursive call: next becomes the
// current input and the caller's current input becomes its predecessor.
func Advance[In any](p Pair[In], next In) Pair[In] {
	return Pair[In]{Prev: p.Cur, Cur: next}
}

// Record is one observed call transition, time-bounded so downstream
// consumers (a call-graph builder, an animation renderer) can place it on a
// real timeline. AspectId names the aspect application that produced the
// record, so transitions from several traced pipelines feeding one sink stay
// attributable.
type Record[In any] struct {
	Pair[In]
	TimeSpan
	AspectId string
}

// Wrap returns an aspect over pair-shaped untied functions that records each
// (prev, cur) transition reaching it, then delegates unchanged. Records are
// produced strictly nested in call order, so a sink that appends observes
// the depth-first call sequence. Each application of the aspect stamps its
// records with a fresh AspectId.
func Wrap[In, Out any](sink func(Record[In])) untie.Aspect[Pair[In], Out] {
	return func(u untie.Func[Pair[In], Out]) untie.Func[Pair[In], Out] {
		aspectId := uuid.New().String()

		return func(recur untie.Recur[Pair[In], Out], p Pair[In]) (Out, error) {
			sink(Record[In]{Pair: p, TimeSpan: Now(), AspectId: aspectId})
			return u(recur, p)
		}
	}
}

// Seed lifts a tied pair-shaped function into single-input form. The very
// first call has no real predecessor, so the input stands in as its own.
func Seed[In, Out any](f untie.Recur[Pair[In], Out]) untie.Recur[In, Out] {
	return func(in In) (Out, error) {
		return f(Pair[In]{Prev: in, Cur: in})
	}
}

// Recorder collects records in call order for consumption after the run.
// It is owned by one pipeline and must not be read while a call is active.
type Recorder[In any] struct {
	records []Record[In]
}

func NewRecorder[In any]() *Recorder[In] {
	return &Recorder[In]{}
}

// Sink returns the recording sink to hand to Wrap.
func (r *Recorder[In]) Sink() func(Record[In]) {
	return func(rec Record[In]) {
		r.records = append(r.records, rec)
	}
}

// Records returns the transitions observed so far, in call order.
func (r *Recorder[In]) Records() []Record[In] {
	return r.records
}

// Span returns the time span covering every collected record, from the start
// of the first to the end of the last. An empty recorder yields the zero
// TimeSpan.
func (r *Recorder[In]) Span() TimeSpan {
	if len(r.records) == 0 {
		return TimeSpan{}
	}
	first := r.records[0].TimeSpan
	last := r.records[len(r.records)-1].TimeSpan
	return NewTimeSpan(first.Start(), last.End())
}

// Reset discards collected records, keeping the recorder usable for the
// next run through the same pipeline.
func (r *Recorder[In]) Reset() {
	r.records = r.records[:0]
}
