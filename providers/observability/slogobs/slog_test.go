package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/zerocore/aistream/providers/observability"
)

func newTestObserver(level slog.Level) (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithFormat(FormatCompact), WithLevel(level), WithOutput(&buf)), &buf
}

func TestObserver_CounterAccumulates(t *testing.T) {
	observer, _ := newTestObserver(slog.LevelInfo)
	ctx := context.Background()

	observer.Counter("deltas").Add(ctx, 2)
	observer.Counter("deltas").Add(ctx, 3)

	if got := observer.CounterValue("deltas"); got != 5 {
		t.Errorf("CounterValue = %d, want 5", got)
	}
	if got := observer.CounterValue("unknown"); got != 0 {
		t.Errorf("unknown counter = %d, want 0", got)
	}
}

func TestObserver_SpanLifecycle(t *testing.T) {
	observer, buf := newTestObserver(slog.LevelDebug)

	ctx, span := observer.StartSpan(context.Background(), observability.SpanClientAsk,
		observability.String(observability.AttrLLMProvider, "claude"))
	if observability.SpanFromContext(ctx) != span {
		t.Error("StartSpan must attach the span to the returned context")
	}

	span.AddEvent(observability.EventRequestBuilt)
	span.SetStatus(observability.StatusError, "boom")
	span.RecordError(errors.New("boom"))
	span.End()

	output := buf.String()
	for _, want := range []string{"Span started", "Span event", "Span error", "Span ended", `"status":"error"`, `"llm.provider":"claude"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestObserver_LogLevels(t *testing.T) {
	observer, buf := newTestObserver(slog.LevelWarn)
	ctx := context.Background()

	observer.Trace(ctx, "trace-msg")
	observer.Debug(ctx, "debug-msg")
	observer.Info(ctx, "info-msg")
	observer.Warn(ctx, "warn-msg", observability.Int(observability.AttrStreamLines, 1))
	observer.Error(ctx, "error-msg")

	output := buf.String()
	for _, hidden := range []string{"trace-msg", "debug-msg", "info-msg"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q should be filtered at WARN", hidden)
		}
	}
	for _, shown := range []string{"warn-msg", "error-msg", `"stream.lines":1`} {
		if !strings.Contains(output, shown) {
			t.Errorf("expected %q in output", shown)
		}
	}
}
