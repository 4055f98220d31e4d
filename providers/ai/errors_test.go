package ai

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindsAreDistinct(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"build", NewBuildError(FormatOpenAI, cause), ErrBuild, "Request error: cause"},
		{"network", NewNetworkError(FormatClaude, cause), ErrNetwork, "Network error: cause"},
		{"http", NewHTTPError(FormatGemini, 500, "Gemini Error 500: x"), ErrHTTP, "Gemini Error 500: x"},
		{"data", NewDataError(FormatOpenAI, cause), ErrData, "Data error: cause"},
		{"response", NewResponseParseError(FormatOpenAI, "OpenAI", cause), ErrResponseParse, "Failed to parse OpenAI response: cause"},
		{"chunk", NewChunkParseError(FormatClaude, "Claude", cause), ErrChunkParse, "Failed to parse Claude stream chunk: cause"},
	}

	kinds := []error{ErrBuild, ErrNetwork, ErrHTTP, ErrData, ErrResponseParse, ErrChunkParse}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			for _, kind := range kinds {
				assert.Equal(t, kind == tt.kind, errors.Is(tt.err, kind), "kind %v", kind)
			}
		})
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	err := NewDataError(FormatOpenAI, io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, ErrData)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestError_FallbackMessage(t *testing.T) {
	assert.Equal(t, "stream data failure", (&Error{Kind: ErrData}).Error())
	assert.Equal(t, "stream data failure: eof", (&Error{Kind: ErrData, Err: errors.New("eof")}).Error())
}

func TestError_HTTPStatus(t *testing.T) {
	var aiErr *Error
	assert.ErrorAs(t, error(NewHTTPError(FormatOpenAI, 429, "slow down")), &aiErr)
	assert.Equal(t, 429, aiErr.StatusCode)
	assert.Equal(t, FormatOpenAI, aiErr.Provider)
}
