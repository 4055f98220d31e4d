package client

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/zerocore/aistream/internal/utils"
	"github.com/zerocore/aistream/providers/ai"
	"github.com/zerocore/aistream/providers/observability"
	"github.com/zerocore/aistream/providers/observability/slogobs"
)

// Client executes provider requests on one shared HTTP transport. It holds no
// per-request state and is safe for concurrent use; build it once and share it.
type Client struct {
	httpClient  *http.Client
	observer    observability.Provider
	eventBuffer int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared transport. The default is
// NewHTTPClient(DefaultTransportConfig()).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTransportConfig builds the shared transport from cfg.
func WithTransportConfig(cfg TransportConfig) Option {
	return func(c *Client) {
		c.httpClient = NewHTTPClient(cfg)
	}
}

// WithObserver sets the observability provider used for logs, spans and
// metrics. The default is a slogobs observer configured from the environment.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// WithEventBuffer sets how many events a Stream buffers ahead of its consumer.
func WithEventBuffer(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.eventBuffer = size
		}
	}
}

// New creates a Client.
//
//	c := client.New(client.WithObserver(slogobs.New()))
//	stream := c.Stream(ctx, registry.ForProfile(profile), profile, conversation, "")
func New(opts ...Option) *Client {
	c := &Client{eventBuffer: defaultEventBuffer}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(DefaultTransportConfig())
	}
	if c.observer == nil {
		c.observer = slogobs.New()
	}
	return c
}

// Stream starts a streamed request and returns immediately. The request is
// built synchronously, so the caller may reuse messages once Stream returns;
// the network call and the decode loop run on a new goroutine.
func (c *Client) Stream(ctx context.Context, provider ai.Provider, profile ai.ProviderProfile, messages []ai.Message, systemPrompt string) *Stream {
	stream := newStream(c.eventBuffer)
	wire, err := provider.BuildRequest(profile, messages, systemPrompt, true)
	if err != nil {
		go c.failBuild(ctx, stream, provider, profile, err)
		return stream
	}
	go c.run(ctx, stream, provider, profile, wire, len(messages))
	return stream
}

// Ask runs a streamed request and reports its outcome to listener. The
// returned channel is closed after listener.OnComplete has returned.
func (c *Client) Ask(ctx context.Context, provider ai.Provider, profile ai.ProviderProfile, messages []ai.Message, systemPrompt string, listener Listener) <-chan struct{} {
	stream := c.Stream(ctx, provider, profile, messages, systemPrompt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		dispatch(stream, listener)
	}()
	return done
}

// Complete runs a non-streamed request and returns the assistant's full text.
// It blocks the calling goroutine until the response has been read.
func (c *Client) Complete(ctx context.Context, provider ai.Provider, profile ai.ProviderProfile, messages []ai.Message, systemPrompt string) (string, error) {
	format := provider.FormatType()
	ctx, tracker := c.track(ctx, observability.SpanClientComplete, provider, profile, false, len(messages))

	wire, err := provider.BuildRequest(profile, messages, systemPrompt, false)
	if err != nil {
		failure := asBuildError(format, err)
		tracker.finish(ctx, failure)
		return "", failure
	}

	response, err := c.do(ctx, tracker, format, wire)
	if err != nil {
		tracker.finish(ctx, err)
		return "", err
	}
	defer utils.CloseWithLog(response.Body)

	body, err := utils.ReadBodyLimited(response.Body)
	if err != nil {
		failure := ai.NewDataError(format, err)
		tracker.finish(ctx, failure)
		return "", failure
	}

	text, err := provider.ParseResponse(body)
	if err != nil {
		tracker.finish(ctx, err)
		return "", err
	}

	tracker.finish(ctx, nil)
	return text, nil
}

// failBuild reports a build failure without touching the network.
func (c *Client) failBuild(ctx context.Context, stream *Stream, provider ai.Provider, profile ai.ProviderProfile, err error) {
	ctx, tracker := c.track(ctx, observability.SpanClientAsk, provider, profile, true, 0)
	failure := asBuildError(provider.FormatType(), err)
	tracker.finish(ctx, failure)
	stream.finish(ctx, failure)
}

// run is the worker side of Stream: send, check status, read lines until the
// sentinel, end of body or a terminal failure.
func (c *Client) run(ctx context.Context, stream *Stream, provider ai.Provider, profile ai.ProviderProfile, wire *ai.WireRequest, messageCount int) {
	ctx, tracker := c.track(ctx, observability.SpanClientAsk, provider, profile, true, messageCount)

	terminal := c.readStream(ctx, tracker, stream, provider, wire)
	tracker.finish(ctx, terminal)
	stream.finish(ctx, terminal)
}

func (c *Client) readStream(ctx context.Context, tracker *tracker, stream *Stream, provider ai.Provider, wire *ai.WireRequest) error {
	format := provider.FormatType()

	response, err := c.do(ctx, tracker, format, wire)
	if err != nil {
		return err
	}
	defer utils.CloseWithLog(response.Body)

	detector, _ := provider.(ai.StreamErrorDetector)
	reader := utils.NewLineReader(response.Body)

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			tracker.end = "eof"
			return nil
		}
		if err != nil {
			tracker.end = "error"
			return ai.NewDataError(format, err)
		}
		tracker.lines++

		if provider.IsStreamComplete(line) {
			tracker.end = "sentinel"
			tracker.span.AddEvent(observability.EventStreamSentinel)
			return nil
		}

		if detector != nil {
			if message, ok := detector.StreamError(line); ok {
				tracker.end = "error"
				return &ai.Error{Kind: ai.ErrData, Provider: format, Message: message}
			}
		}

		delta, ok, err := provider.ParseStreamChunk(line)
		if err != nil {
			tracker.chunkError(ctx, line, err)
			continue
		}
		if !ok {
			continue
		}

		if !stream.send(ctx, delta) {
			tracker.end = "cancelled"
			return ai.NewDataError(format, ctx.Err())
		}
		tracker.deltas++
	}
}

// do executes the wire request and maps transport and status failures.
// On success the caller owns the response body.
func (c *Client) do(ctx context.Context, tracker *tracker, format ai.FormatType, wire *ai.WireRequest) (*http.Response, error) {
	request, err := wire.HTTPRequest(ctx)
	if err != nil {
		return nil, ai.NewBuildError(format, err)
	}
	tracker.span.AddEvent(observability.EventRequestBuilt,
		observability.String(observability.AttrHTTPMethod, wire.Method),
		observability.Int(observability.AttrHTTPRequestBodySize, len(wire.Body)),
	)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, ai.NewNetworkError(format, err)
	}
	tracker.status = response.StatusCode
	tracker.span.AddEvent(observability.EventResponseHeaders,
		observability.Int(observability.AttrHTTPStatusCode, response.StatusCode),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		defer utils.CloseWithLog(response.Body)
		body, readErr := utils.ReadBodyLimited(response.Body)
		if readErr != nil {
			c.observer.Debug(ctx, "Failed to read error body", observability.Error(readErr))
		}
		return nil, ai.NewHTTPError(format, response.StatusCode, tracker.provider.ParseError(response.StatusCode, body))
	}

	return response, nil
}

// asBuildError keeps provider build errors as they are and wraps anything else.
func asBuildError(format ai.FormatType, err error) error {
	if errors.Is(err, ai.ErrBuild) {
		return err
	}
	return ai.NewBuildError(format, err)
}
