// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics and structured logging throughout aistream.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics]
// and [Logger] into a single injectable dependency. The streaming client takes
// one as an option; request-scoped values travel through a [context.Context]
// using [ContextWithObserver] and [ContextWithSpan] and are retrieved with
// [ObserverFromContext] and [SpanFromContext].
//
// The semconv.go file contains the attribute-key, span, event and metric name
// constants used when recording observations.
package observability
