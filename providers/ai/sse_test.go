package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataPayload(t *testing.T) {
	tests := []struct {
		line    string
		payload string
		ok      bool
	}{
		{`data: {"a":1}`, `{"a":1}`, true},
		{"data: [DONE]", "", false},
		{"data:{\"a\":1}", "", false},
		{"data: ", "", false},
		{"event: message_start", "", false},
		{": keep-alive", "", false},
		{"", "", false},
		{`{"a":1}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			payload, ok := DataPayload(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.payload, payload)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	message, ok := ErrorMessage(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	assert.True(t, ok)
	assert.Equal(t, "Incorrect API key provided", message)

	body := `{"error":{"code":429}}`
	message, ok = ErrorMessage(body)
	assert.True(t, ok)
	assert.Equal(t, body, message)

	for _, body := range []string{"", "Internal Server Error", `{"detail":"nope"}`, `{"error":"flat string"}`} {
		_, ok := ErrorMessage(body)
		assert.False(t, ok, body)
	}
}
