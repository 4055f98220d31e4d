// Package slogobs provides an observability.Provider backed by log/slog.
// Spans and metrics are rendered as log records; there is no exporter.
// The handler writes compact, pretty or JSON lines and picks up its format
// and level from AISTREAM_LOG_FORMAT and AISTREAM_LOG_LEVEL unless
// [WithFormat], [WithLevel] or [WithLogger] say otherwise.
package slogobs
