package logging_test

import (
	"errors"
	"testing"

	"github.com/open-rec/untie_go/aspects/logging"
	"github.com/open-rec/untie_go/aspects/memo"
	"github.com/open-rec/untie_go/untie"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fibUntied(recur untie.Recur[int, int], n int) (int, error) {
	if n < 2 {
		return n, nil
	}
	a, err := recur(n - 1)
	if err != nil {
		return 0, err
	}
	b, err := recur(n - 2)
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

func countingSink(count *int) logging.Sink[int] {
	return func(int) { *count++ }
}

func TestWrap_SinkFiresPerLogicalCall(t *testing.T) {
	count := 0
	f := untie.TiePipe(fibUntied, logging.Wrap[int, int](countingSink(&count)))

	got, err := f(5)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	// Naive fib(5) makes 15 calls; every one reaches the sink.
	assert.Equal(t, 15, count)
}

func TestWrap_SinkFiresBeforeFailure(t *testing.T) {
	errBoom := errors.New("boom")
	failing := func(recur untie.Recur[int, int], n int) (int, error) {
		return 0, errBoom
	}

	count := 0
	f := untie.TiePipe(failing, logging.Wrap[int, int](countingSink(&count)))

	_, err := f(1)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, count, "a failed call is still recorded as an attempt")
}

func TestOrderSensitivity_LoggerOutsideMemo(t *testing.T) {
	count := 0
	// Logger applied after the memoizer: the logger is outermost and sees
	// every logical call, including ones the memoizer resolves from cache.
	f := untie.TiePipe(fibUntied,
		memo.Wrap[int, int](),
		logging.Wrap[int, int](countingSink(&count)),
	)

	_, err := f(5)
	require.NoError(t, err)
	assert.Equal(t, 9, count, "6 misses plus 3 cache hits, all logged")

	_, err = f(5)
	require.NoError(t, err)
	assert.Equal(t, 10, count, "the outer call is logged even on a full cache hit")
}

func TestOrderSensitivity_MemoOutsideLogger(t *testing.T) {
	count := 0
	// Memoizer applied after the logger: cache hits short-circuit before the
	// logger ever sees the call.
	f := untie.TiePipe(fibUntied,
		logging.Wrap[int, int](countingSink(&count)),
		memo.Wrap[int, int](),
	)

	_, err := f(5)
	require.NoError(t, err)
	assert.Equal(t, 6, count, "only misses reach the sink")

	_, err = f(5)
	require.NoError(t, err)
	assert.Equal(t, 6, count, "a full cache hit logs nothing")
}

func TestZapSink_TagsEveryLineWithAspectId(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f := untie.TiePipe(fibUntied,
		logging.Wrap[int, int](logging.ZapSink[int](zap.New(core), logging.LevelInfo, "fib called")),
	)

	_, err := f(3)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 5)

	id, ok := entries[0].ContextMap()["aspectId"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "aspectId is a real uuid")

	// Every line from one sink carries the same id.
	for _, entry := range entries {
		assert.Equal(t, id, entry.ContextMap()["aspectId"])
	}

	// A second sink gets its own id.
	other := logging.ZapSink[int](zap.New(core), logging.LevelInfo, "other")
	other(1)
	last := logs.All()[len(logs.All())-1]
	assert.NotEqual(t, id, last.ContextMap()["aspectId"])
}

func TestZapSink_DoesNotAlterResults(t *testing.T) {
	f := untie.TiePipe(fibUntied,
		logging.Wrap[int, int](logging.NewTestSink[int]("fib called")),
	)

	got, err := f(8)
	require.NoError(t, err)
	assert.Equal(t, 21, got)
}
