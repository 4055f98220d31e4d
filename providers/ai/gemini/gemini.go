package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zerocore/aistream/providers/ai"
)

const (
	displayName = "Google Gemini"

	actionGenerate       = "generateContent"
	actionStreamGenerate = "streamGenerateContent"

	roleModel = "model"
	roleUser  = "user"

	authHint = "Gemini API key is invalid or permission denied. Please check your API key."
)

// GeminiProvider implements the ai.Provider interface for Google's Gemini API.
type GeminiProvider struct{}

// Ensure GeminiProvider implements ai.Provider and ai.StreamErrorDetector
var (
	_ ai.Provider            = (*GeminiProvider)(nil)
	_ ai.StreamErrorDetector = (*GeminiProvider)(nil)
)

// New returns a GeminiProvider.
func New() *GeminiProvider {
	return &GeminiProvider{}
}

// FormatType returns [ai.FormatGemini].
func (p *GeminiProvider) FormatType() ai.FormatType {
	return ai.FormatGemini
}

// DisplayName returns "Google Gemini".
func (p *GeminiProvider) DisplayName() string {
	return displayName
}

// BuildURL returns
//
//	<base>/models/<model>:<action>?key=<key>[&alt=sse]
//
// where base is profile.APIURL without a trailing slash and action is
// streamGenerateContent or generateContent. The model is path-escaped and the
// key query-escaped.
func BuildURL(profile ai.ProviderProfile, stream bool) (string, error) {
	if _, err := ai.ValidateEndpoint(profile.APIURL); err != nil {
		return "", err
	}
	if strings.TrimSpace(profile.ModelName) == "" {
		return "", errors.New("model name is not set")
	}

	action := actionGenerate
	if stream {
		action = actionStreamGenerate
	}
	baseURL := strings.TrimSuffix(profile.APIURL, "/")
	requestURL := fmt.Sprintf("%s/models/%s:%s?key=%s", baseURL, url.PathEscape(profile.ModelName), action, url.QueryEscape(profile.APIKey))
	if stream {
		requestURL += "&alt=sse"
	}
	return requestURL, nil
}

// BuildRequest builds a generateContent (or streamGenerateContent) POST.
// System-role entries are dropped, assistant entries become role "model" and
// everything else "user". A non-empty systemPrompt becomes systemInstruction.
func (p *GeminiProvider) BuildRequest(profile ai.ProviderProfile, messages []ai.Message, systemPrompt string, stream bool) (*ai.WireRequest, error) {
	requestURL, err := BuildURL(profile, stream)
	if err != nil {
		return nil, ai.NewBuildError(ai.FormatGemini, err)
	}

	conversation := ai.WithoutSystem(messages)
	body := generateContentRequest{
		Contents: make([]content, 0, len(conversation)),
	}
	for _, message := range conversation {
		body.Contents = append(body.Contents, content{
			Role:  mapRole(message.Role),
			Parts: []part{{Text: message.Content}},
		})
	}
	if systemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, ai.NewBuildError(ai.FormatGemini, fmt.Errorf("error marshaling body: %w", err))
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if stream {
		header.Set("Accept", "text/event-stream")
	}

	return &ai.WireRequest{
		Method: http.MethodPost,
		URL:    requestURL,
		Header: header,
		Body:   jsonBody,
	}, nil
}

// mapRole converts a conversation role to Gemini's vocabulary.
func mapRole(role ai.Role) string {
	if role == ai.RoleAssistant {
		return roleModel
	}
	return roleUser
}

// ParseResponse concatenates the text of every part of the first candidate.
func (p *GeminiProvider) ParseResponse(body string) (string, error) {
	var response generateContentResponse
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		return "", ai.NewResponseParseError(ai.FormatGemini, "Gemini", err)
	}
	if len(response.Candidates) == 0 {
		return "", ai.NewResponseParseError(ai.FormatGemini, "Gemini", errors.New("response has no candidates"))
	}
	candidateContent := response.Candidates[0].Content
	if candidateContent == nil || candidateContent.Parts == nil {
		return "", ai.NewResponseParseError(ai.FormatGemini, "Gemini", errors.New("candidates[0].content.parts is missing"))
	}

	var result strings.Builder
	for _, candidatePart := range *candidateContent.Parts {
		if candidatePart.Text != nil {
			result.WriteString(*candidatePart.Text)
		}
	}
	return result.String(), nil
}

// ParseStreamChunk returns candidates[0].content.parts[0].text. Each chunk
// holds only the newly generated text, so it is forwarded as is.
func (p *GeminiProvider) ParseStreamChunk(line string) (string, bool, error) {
	payload, ok := ai.DataPayload(line)
	if !ok {
		return "", false, nil
	}

	var chunk generateContentResponse
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false, ai.NewChunkParseError(ai.FormatGemini, "Gemini", err)
	}
	if len(chunk.Candidates) == 0 {
		return "", false, nil
	}
	candidateContent := chunk.Candidates[0].Content
	if candidateContent == nil || candidateContent.Parts == nil || len(*candidateContent.Parts) == 0 {
		return "", false, nil
	}
	text := (*candidateContent.Parts)[0].Text
	if text == nil || *text == "" {
		return "", false, nil
	}
	return *text, true, nil
}

// IsStreamComplete always returns false: Gemini streams end when the
// transport closes the body.
func (p *GeminiProvider) IsStreamComplete(string) bool {
	return false
}

// StreamError reports a chunk that carries a top-level error object instead
// of candidates.
func (p *GeminiProvider) StreamError(line string) (string, bool) {
	payload, ok := ai.DataPayload(line)
	if !ok {
		return "", false
	}
	message, ok := ai.ErrorMessage(payload)
	if !ok {
		return "", false
	}
	return "Gemini stream error: " + message, true
}

// ParseError prefers error.message from the body, then the 403 hint, then
// "Gemini Error <status>: <body>".
func (p *GeminiProvider) ParseError(statusCode int, body string) string {
	if message, ok := ai.ErrorMessage(body); ok {
		return message
	}
	if statusCode == http.StatusForbidden {
		return authHint
	}
	return fmt.Sprintf("Gemini Error %d: %s", statusCode, body)
}
