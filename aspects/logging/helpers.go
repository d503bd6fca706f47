package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewTestSink returns a debug-level console sink for tests and demos.
func NewTestSink[In any](msg string) Sink[In] {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return ZapSink[In](zap.New(consoleCore), LevelDebug, msg)
}
