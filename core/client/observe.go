package client

import (
	"context"
	"errors"
	"time"

	"github.com/zerocore/aistream/internal/utils"
	"github.com/zerocore/aistream/providers/ai"
	"github.com/zerocore/aistream/providers/observability"
)

// maxLoggedLineLength caps raw stream lines copied into log records.
const maxLoggedLineLength = 200

// tracker collects the observability state of one request: a span, the
// counters of the decode loop and the timing for the duration histogram.
type tracker struct {
	observer observability.Provider
	provider ai.Provider
	span     observability.Span
	model    string
	start    time.Time

	status      int
	lines       int
	deltas      int
	chunkErrors int
	end         string
}

// track starts the span of one request and returns ctx carrying it.
func (c *Client) track(ctx context.Context, spanName string, provider ai.Provider, profile ai.ProviderProfile, streaming bool, messageCount int) (context.Context, *tracker) {
	attrs := []observability.Attribute{
		observability.String(observability.AttrLLMProvider, string(provider.FormatType())),
		observability.String(observability.AttrLLMModel, profile.ModelName),
		observability.Bool(observability.AttrLLMStreaming, streaming),
		observability.String(observability.AttrProfileID, profile.ID),
		observability.String(observability.AttrProfileName, profile.Name),
	}
	ctx, span := c.observer.StartSpan(ctx, spanName, attrs...)
	ctx = observability.ContextWithObserver(ctx, c.observer)

	c.observer.Debug(ctx, "llm request",
		observability.String(observability.AttrLLMProvider, string(provider.FormatType())),
		observability.String(observability.AttrLLMModel, profile.ModelName),
		observability.Int(observability.AttrRequestMessagesCount, messageCount),
	)

	return ctx, &tracker{
		observer: c.observer,
		provider: provider,
		span:     span,
		model:    profile.ModelName,
		start:    time.Now(),
	}
}

// chunkError logs and counts a malformed stream line. The stream continues.
func (t *tracker) chunkError(ctx context.Context, line string, err error) {
	t.chunkErrors++
	t.span.AddEvent(observability.EventChunkSkipped, observability.Error(err))
	t.observer.Warn(ctx, "Skipping malformed stream chunk",
		observability.String(observability.AttrLLMProvider, string(t.provider.FormatType())),
		observability.String(observability.AttrStreamLine, utils.TruncateString(line, maxLoggedLineLength)),
		observability.Error(err),
	)
	t.observer.Counter(observability.MetricStreamChunkErrors).Add(ctx, 1,
		observability.String(observability.AttrLLMProvider, string(t.provider.FormatType())),
	)
}

// finish ends the span and records the outcome metrics. terminal is nil on
// success.
func (t *tracker) finish(ctx context.Context, terminal error) {
	duration := time.Since(t.start)
	format := string(t.provider.FormatType())
	outcome := outcomeOf(terminal)

	t.span.SetAttributes(
		observability.Int(observability.AttrStreamLines, t.lines),
		observability.Int(observability.AttrStreamDeltas, t.deltas),
		observability.Int(observability.AttrStreamChunkErrors, t.chunkErrors),
	)
	if t.end != "" {
		t.span.SetAttributes(observability.String(observability.AttrStreamEnd, t.end))
	}
	if t.status != 0 {
		t.span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, t.status))
	}

	if terminal != nil {
		t.span.RecordError(terminal)
		t.span.SetStatus(observability.StatusError, "llm request failed")
		t.observer.Error(ctx, "llm request failed",
			observability.String(observability.AttrLLMProvider, format),
			observability.String(observability.AttrErrorKind, outcome),
			observability.Error(terminal),
			observability.Duration(observability.AttrDuration, duration),
		)
	} else {
		t.span.SetStatus(observability.StatusOK, "llm request completed")
		t.observer.Debug(ctx, "llm request completed",
			observability.String(observability.AttrLLMProvider, format),
			observability.Int(observability.AttrStreamDeltas, t.deltas),
			observability.Duration(observability.AttrDuration, duration),
		)
	}
	t.span.End()

	t.observer.Counter(observability.MetricAskCount).Add(ctx, 1,
		observability.String(observability.AttrLLMProvider, format),
		observability.String(observability.AttrStatus, outcome),
	)
	if t.deltas > 0 {
		t.observer.Counter(observability.MetricStreamDeltas).Add(ctx, int64(t.deltas),
			observability.String(observability.AttrLLMProvider, format),
		)
	}
	t.observer.Histogram(observability.MetricAskDuration).Record(ctx, float64(duration.Milliseconds()),
		observability.String(observability.AttrLLMProvider, format),
		observability.String(observability.AttrStatus, outcome),
	)
}

// outcomeOf names the error kind of a terminal error, or "success".
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ai.ErrBuild):
		return "build"
	case errors.Is(err, ai.ErrNetwork):
		return "network"
	case errors.Is(err, ai.ErrHTTP):
		return "http"
	case errors.Is(err, ai.ErrResponseParse):
		return "response_parse"
	case errors.Is(err, ai.ErrData):
		return "data"
	default:
		return "unknown"
	}
}
