package ai

import (
	"strings"

	"github.com/tidwall/gjson"
)

// DataPrefix is the SSE field prefix every supported vendor uses for payload lines.
const DataPrefix = "data: "

// DataPayload returns the JSON payload carried by an SSE data line. ok is false
// when the line has no "data: " prefix or its payload does not open a JSON
// object; such lines are framing and carry no content.
func DataPayload(line string) (payload string, ok bool) {
	if !strings.HasPrefix(line, DataPrefix) {
		return "", false
	}
	payload = line[len(DataPrefix):]
	if payload == "" || payload[0] != '{' {
		return "", false
	}
	return payload, true
}

// ErrorMessage extracts error.message from a JSON error body, the shape shared
// by all three vendors. ok is false when body is not JSON or has no error
// object. An error object without a message yields the raw body, matching
// what vendors expect users to see.
func ErrorMessage(body string) (message string, ok bool) {
	if !gjson.Valid(body) {
		return "", false
	}
	errorObject := gjson.Get(body, "error")
	if !errorObject.IsObject() {
		return "", false
	}
	if msg := errorObject.Get("message"); msg.Exists() {
		return msg.String(), true
	}
	return body, true
}
