// Package ai defines the vendor-agnostic vocabulary shared by every chat
// provider implementation: the [ProviderProfile] that identifies one configured
// endpoint, the [Message] conversation entries, the [Provider] capability set
// each vendor family implements, the [Registry] that maps a format identifier
// to a provider, and the [Error] taxonomy used across request building,
// transport and stream decoding.
//
// Providers never perform I/O. They turn a profile and a conversation into a
// [WireRequest] and decode the vendor's response body, either whole
// ([Provider.ParseResponse]) or one stream line at a time
// ([Provider.ParseStreamChunk] and [Provider.IsStreamComplete]). Executing the
// request and driving the line loop is the job of the streaming client in
// core/client.
package ai
