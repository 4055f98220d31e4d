// Package utils provides low-level helpers shared by the streaming client:
// a line-oriented reader for streamed response bodies ([LineReader]), bounded
// body reads for error responses ([ReadBodyLimited]), close-and-log cleanup
// ([CloseWithLog]) and string truncation for log output ([TruncateString]).
package utils
