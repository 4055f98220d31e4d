package anthropic

// messagesRequest is the Messages API request body. Field order matches the
// documented wire shape.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
	Stream    bool      `json:"stream"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the subset of a non-streamed response we read.
type messagesResponse struct {
	Content *[]contentBlock `json:"content"`
}

type contentBlock struct {
	Type *string `json:"type"`
	Text string  `json:"text"`
}

// streamEvent is the envelope shared by every SSE payload. Only the fields
// needed to extract text deltas and detect the end of the stream are decoded.
type streamEvent struct {
	Type  string `json:"type"`
	Delta *struct {
		Type string  `json:"type"`
		Text *string `json:"text"`
	} `json:"delta"`
}
