package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/open-rec/untie_go/untie"
)

// Sink observes a call's input. The core makes no assumption about what the
// sink does with the value.
type Sink[In any] func(in In)

// Wrap returns an aspect that reports, via sink, every logical call reaching
// this aspect's position in the pipeline, then delegates unchanged.
//
// The sink fires exactly once per call that arrives here. Calls intercepted
// below this position — a fallback switch, a cache hit in a memoizer applied
// earlier — never reach the sink; a cache hit in a memoizer applied later
// still does. Pipeline order is therefore part of the observable contract.
//
// The sink fires before the wrapped computation runs, so a failed call is
// still recorded as an attempt.
func Wrap[In, Out any](sink Sink[In]) untie.Aspect[In, Out] {
	return func(u untie.Func[In, Out]) untie.Func[In, Out] {
		return func(recur untie.Recur[In, Out], in In) (Out, error) {
			sink(in)
			return u(recur, in)
		}
	}
}

// Level defines the severity a zap-backed sink logs at.
type Level string

const (
	// LevelInfo is used for general informational messages.
	LevelInfo Level = "info"

	// LevelWarn is used for potentially harmful situations.
	LevelWarn Level = "warn"

	// LevelError is used for error events.
	LevelError Level = "error"

	// LevelDebug is used for detailed internal information.
	LevelDebug Level = "debug"
)

// ZapSink adapts a zap.Logger into a Sink. Each observed call is logged at
// the given level with the input attached as a structured field. Every line
// also carries the sink's aspectId, so lines from several pipelines feeding
// one logger stay attributable.
func ZapSink[In any](logger *zap.Logger, level Level, msg string) Sink[In] {
	logger = logger.With(zap.String("aspectId", uuid.New().String()))

	return func(in In) {
		field := zap.Any("input", in)

		switch level {
		case LevelInfo:
			logger.Info(msg, field)
		case LevelWarn:
			logger.Warn(msg, field)
		case LevelError:
			logger.Error(msg, field)
		case LevelDebug:
			logger.Debug(msg, field)
		default:
			logger.Info(msg, field)
		}
	}
}
